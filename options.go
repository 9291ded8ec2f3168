package gptplayers

// Options contains configuration for a completion request.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float64
	// Functions are the callable-function descriptors offered to the model.
	Functions []Function
	// FunctionChoice controls whether the model may, must, or must not
	// call a function. Empty means provider default (auto).
	FunctionChoice FunctionChoice
}

// Option is a functional option for configuring completion requests.
type Option func(*Options)

// WithModel sets the model to use for the request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithFunctions offers function descriptors to the model.
func WithFunctions(functions []Function) Option {
	return func(o *Options) {
		o.Functions = functions
	}
}

// WithFunctionChoice controls how the model uses functions.
func WithFunctionChoice(choice FunctionChoice) Option {
	return func(o *Options) {
		o.FunctionChoice = choice
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
