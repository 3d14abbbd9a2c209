// Package ident issues process-wide unique identifiers for entities and
// component instances.
package ident

import "sync/atomic"

// Allocator hands out strictly increasing identifiers. Zero is never issued,
// so it can be used as a "no id" value by callers.
type Allocator struct {
	last atomic.Uint64
}

// Next returns the next identifier. Identifiers are never reused.
func (a *Allocator) Next() uint64 {
	return a.last.Add(1)
}

// Last returns the most recently issued identifier, or 0 if none.
func (a *Allocator) Last() uint64 {
	return a.last.Load()
}

var process Allocator

// Next returns an identifier from the process-wide allocator shared by
// entities and components.
func Next() uint64 { return process.Next() }
