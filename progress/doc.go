// Package progress keeps aggregated counters for a single simulation run.
// The tracker travels in the context so that the scheduler can report its
// transitions without a global registry.
package progress
