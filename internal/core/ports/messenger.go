package ports

import "context"

// Action is an actionable button attached to an outbound message, such as
// the "claim" affordance on a new-order notification. Data is the opaque
// callback payload the chat transport echoes back when the button is pressed.
type Action struct {
	Label string
	Data  string
}

// Messenger is the outbound chat transport. Sends are fire-and-forget from
// the core's point of view: implementations must bound the call with a
// timeout, and callers treat a failure as a delivery problem to record, never
// as a reason to fail the state transition that triggered the message.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, actions []Action) error
}
