package function

import "fmt"

// DuplicateNameError is returned when registering a function under a
// name that is already present in the registry. It is a registration
// time error and indicates programmer misconfiguration.
type DuplicateNameError struct {
	Name string
}

// Error returns a formatted error message including the duplicate name.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("function: already registered: %s", e.Name)
}

// RoleFilterError is returned when registering a function whose role
// filter is not a valid regular expression. Like schema errors it is
// reported at registration time.
type RoleFilterError struct {
	Name    string
	Pattern string
	Msg     string
}

// Error returns a formatted error message including the bad pattern.
func (e *RoleFilterError) Error() string {
	return fmt.Sprintf("function: %s: invalid role filter %q: %s", e.Name, e.Pattern, e.Msg)
}

// UnknownFunctionError is returned when resolving a name that has no
// registered function. During dispatch it is reported back to the model
// as a recoverable error descriptor rather than raised.
type UnknownFunctionError struct {
	Name string
}

// Error returns a formatted error message including the unknown name.
func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("function: not registered: %s", e.Name)
}
