package main

import (
	"context"
	"sync"
)

// Database is a tiny in-memory knowledge base the agent can page
// through one fact at a time.
type Database struct {
	mu     sync.Mutex
	facts  []string
	cursor int
}

// NewDatabase returns a database seeded with sample facts.
func NewDatabase() *Database {
	return &Database{
		facts: []string{
			"Alice is born in 1990.",
			"Bob is born in 1991.",
			"David is born in 1995.",
			"Alice is in Kansas.",
			"Bob is in New York.",
			"David is in California.",
			"Alice likes David.",
		},
	}
}

// ReviewInfoResult is returned by the review_info function.
type ReviewInfoResult struct {
	Info      string `json:"info"`
	Remaining int    `json:"remaining"`
}

// ReviewInfo returns the next fact from the database, cycling back to
// the start once all facts have been seen.
func (d *Database) ReviewInfo() ReviewInfoResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.facts) == 0 {
		return ReviewInfoResult{Info: "the database is empty"}
	}
	fact := d.facts[d.cursor]
	d.cursor = (d.cursor + 1) % len(d.facts)
	remaining := len(d.facts) - 1 - ((d.cursor - 1 + len(d.facts)) % len(d.facts))
	return ReviewInfoResult{Info: fact, Remaining: remaining}
}

type reviewInfoArgs struct{}

func reviewInfo(ctx context.Context, db *Database, args reviewInfoArgs) (any, error) {
	return db.ReviewInfo(), nil
}
