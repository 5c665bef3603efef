// Package ui holds the small primitives every widget component shares:
// a non-owning window handle with a liveness probe, and the scheduling
// handoff that moves work from background goroutines onto the UI loop.
package ui
