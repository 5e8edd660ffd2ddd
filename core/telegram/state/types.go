package state

// State names a step of a conversation. Bots define their own values.
type State string

// Manager stores one State per user.
type Manager interface {
	// GetState returns the user's state, or the manager's initial state for unknown users.
	GetState(userID int64) State
	SetState(userID int64, st State)
	// Clear forgets the user entirely.
	Clear(userID int64)
}
