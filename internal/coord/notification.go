package coord

// Notification is one push signal from the controller.
// Blank and Theme ask for an immediate clear; anything else means
// "something changed, fetch again".
type Notification struct {
	Blank bool
	Theme bool
}

// Refresh is the generic re-fetch notification.
func Refresh() Notification {
	return Notification{}
}

// IsOverride reports whether the notification bypasses the fetch.
func (n Notification) IsOverride() bool {
	return n.Blank || n.Theme
}

// State is the sync controller state.
type State int32

const (
	// Idle waits for notifications.
	Idle State = iota
	// PendingFetch has the debounce window armed.
	PendingFetch
	// Fetching has one item-list fetch in flight.
	Fetching
	// Clearing is held only while an override is reconciled.
	Clearing
)

func (s State) String() string {
	switch s {
	case PendingFetch:
		return "pending"
	case Fetching:
		return "fetching"
	case Clearing:
		return "clearing"
	default:
		return "idle"
	}
}
