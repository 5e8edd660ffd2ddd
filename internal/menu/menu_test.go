package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIntent(t *testing.T) {
	cases := map[string]Intent{
		"Quick Count":  IntentShowQuickCount,
		"Candidate":    IntentShowCandidates,
		"quick count":  IntentShowMenu,
		"Candidate ":   IntentShowMenu,
		"":             IntentShowMenu,
		"/start":       IntentShowMenu,
		"Quick  Count": IntentShowMenu,
	}
	for label, want := range cases {
		assert.Equal(t, want, ResolveIntent(label), "label %q", label)
	}
}

func TestDispatchFromRoot(t *testing.T) {
	next, action := Dispatch(StateRoot, ResolveIntent(LabelQuickCount))
	assert.Equal(t, StateRoot, next)
	assert.Equal(t, ActionRenderQuickCount, action)

	next, action = Dispatch(StateRoot, ResolveIntent(LabelCandidate))
	assert.Equal(t, StateRoot, next)
	assert.Equal(t, ActionRenderCandidates, action)
}

func TestDispatchUnknownLabelShowsMenu(t *testing.T) {
	for _, label := range []string{"hello", "QUICK COUNT", "candidates", "📢"} {
		next, action := Dispatch(StateRoot, ResolveIntent(label))
		assert.Equal(t, StateRoot, next, label)
		assert.Equal(t, ActionShowMenu, action, label)

		// applying it again changes nothing
		again, action2 := Dispatch(next, ResolveIntent(label))
		assert.Equal(t, StateRoot, again, label)
		assert.Equal(t, ActionShowMenu, action2, label)
	}
}

func TestDispatchNestedStatesReturnToRoot(t *testing.T) {
	for _, st := range []State{StateQuickCount, StateCandidate} {
		for _, in := range []Intent{IntentShowMenu, IntentShowQuickCount, IntentShowCandidates} {
			next, action := Dispatch(st, in)
			assert.Equal(t, StateRoot, next)
			assert.Equal(t, ActionShowMenu, action)
		}
	}
}

func TestDispatchEmptyStateIsRoot(t *testing.T) {
	next, action := Dispatch("", IntentShowCandidates)
	assert.Equal(t, StateRoot, next)
	assert.Equal(t, ActionRenderCandidates, action)
}

func TestStartAlwaysResets(t *testing.T) {
	next, action := Start()
	assert.Equal(t, StateRoot, next)
	assert.Equal(t, ActionShowMenu, action)
}

func TestLabelsMatchIntents(t *testing.T) {
	rows := Labels()
	if assert.Len(t, rows, 1) {
		assert.Equal(t, []string{"Quick Count", "Candidate"}, rows[0])
	}
}
