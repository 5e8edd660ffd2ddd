// Package menu maps menu labels typed by a user to the action the bot runs.
//
// The menu looks like a small conversation but every path ends back in Root:
// it is a single state with three side-effecting actions.
package menu

// State identifies where a user is in the menu.
type State string

const (
	// StateRoot is the initial and terminal state.
	StateRoot State = "root"
	// StateQuickCount is kept for session compatibility; nothing transitions into it.
	StateQuickCount State = "quickcount"
	// StateCandidate is kept for session compatibility; nothing transitions into it.
	StateCandidate State = "candidate"
)

// Intent is what the user asked for, resolved once from the raw label.
type Intent int

const (
	IntentShowMenu Intent = iota
	IntentShowQuickCount
	IntentShowCandidates
)

// Action is the side effect the caller has to run.
type Action int

const (
	ActionShowMenu Action = iota
	ActionRenderQuickCount
	ActionRenderCandidates
)

// Menu labels shown on the reply keyboard. Matching is exact and case-sensitive.
const (
	LabelQuickCount = "Quick Count"
	LabelCandidate  = "Candidate"
)

// StartCommand resets the menu from any state.
const StartCommand = "/start"

// Labels returns the keyboard rows in display order.
func Labels() [][]string {
	return [][]string{{LabelQuickCount, LabelCandidate}}
}

// ResolveIntent turns free text into an Intent.
func ResolveIntent(label string) Intent {
	switch label {
	case LabelQuickCount:
		return IntentShowQuickCount
	case LabelCandidate:
		return IntentShowCandidates
	default:
		return IntentShowMenu
	}
}

// Dispatch returns the next state and the action for the given state and intent.
// Unknown states are treated as Root.
func Dispatch(current State, intent Intent) (State, Action) {
	switch current {
	case StateQuickCount, StateCandidate:
		return StateRoot, ActionShowMenu
	}
	switch intent {
	case IntentShowQuickCount:
		return StateRoot, ActionRenderQuickCount
	case IntentShowCandidates:
		return StateRoot, ActionRenderCandidates
	default:
		return StateRoot, ActionShowMenu
	}
}

// Start is the entry command transition.
func Start() (State, Action) {
	return StateRoot, ActionShowMenu
}

func (s State) String() string {
	if s == "" {
		return string(StateRoot)
	}
	return string(s)
}

func (i Intent) String() string {
	switch i {
	case IntentShowQuickCount:
		return "show_quickcount"
	case IntentShowCandidates:
		return "show_candidates"
	default:
		return "show_menu"
	}
}

func (a Action) String() string {
	switch a {
	case ActionRenderQuickCount:
		return "render_quickcount"
	case ActionRenderCandidates:
		return "render_candidates"
	default:
		return "show_menu"
	}
}
