// Package state keeps per-user conversation state in memory.
// Nothing is persisted: a restart puts every user back into the initial state.
package state
