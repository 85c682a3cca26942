package tusclient

import (
	"testing"
	"time"

	"github.com/auriora/tusup/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var allStates = []State{Pending, Active, Paused, Cancelled, Completed, Failed}

// TestUT_SM_01_01_CanTransition_MatchesTransitionTable exhaustively checks
// all 36 ordered state pairs against the expected transition table.
func TestUT_SM_01_01_CanTransition_MatchesTransitionTable(t *testing.T) {
	want := map[State]map[State]bool{
		Pending:   {Pending: false, Active: true, Paused: false, Cancelled: true, Completed: false, Failed: false},
		Active:    {Pending: false, Active: false, Paused: true, Cancelled: true, Completed: true, Failed: true},
		Paused:    {Pending: false, Active: true, Paused: false, Cancelled: true, Completed: false, Failed: false},
		Cancelled: {Pending: false, Active: false, Paused: false, Cancelled: false, Completed: false, Failed: false},
		Completed: {Pending: false, Active: false, Paused: false, Cancelled: false, Completed: false, Failed: false},
		Failed:    {Pending: false, Active: false, Paused: false, Cancelled: false, Completed: false, Failed: false},
	}

	for _, from := range allStates {
		for _, to := range allStates {
			assert.Equal(t, want[from][to], canTransition(from, to), "from=%s to=%s", from, to)
		}
	}
}

func TestUT_SM_01_02_IsTerminal_OnlyTerminalStates(t *testing.T) {
	terminal := map[State]bool{
		Pending: false, Active: false, Paused: false,
		Cancelled: true, Completed: true, Failed: true,
	}
	for _, s := range allStates {
		assert.Equal(t, terminal[s], isTerminal(s), "state=%s", s)
	}
}

func TestUT_SM_02_01_TransitionTo_ForbiddenMove_ReturnsInvalidState(t *testing.T) {
	r := &UploadRecord{State: Completed}
	err := r.transitionTo(Active, time.Now())
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidStateError(err))
	assert.Equal(t, Completed, r.State)
}

func TestUT_SM_02_02_TransitionTo_AllowedMove_UpdatesStateAndTimestamp(t *testing.T) {
	r := &UploadRecord{State: Pending}
	before := r.UpdatedAt
	err := r.transitionTo(Active, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, Active, r.State)
	assert.NotEqual(t, before, r.UpdatedAt)
}

func TestUT_SM_03_01_Helpers_ReflectState(t *testing.T) {
	pending := &UploadRecord{State: Pending}
	assert.True(t, pending.canStart())
	assert.False(t, pending.isActive())
	assert.False(t, pending.isFinished())

	paused := &UploadRecord{State: Paused}
	assert.True(t, paused.canStart())

	active := &UploadRecord{State: Active}
	assert.False(t, active.canStart())
	assert.True(t, active.isActive())

	for _, s := range []State{Completed, Cancelled, Failed} {
		r := &UploadRecord{State: s}
		assert.True(t, r.isFinished())
		assert.False(t, r.canStart())
	}
}

func TestUT_SM_04_01_State_TextMarshalRoundTrips(t *testing.T) {
	for _, s := range allStates {
		text, err := s.MarshalText()
		assert.NoError(t, err)

		var got State
		assert.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}
}

func TestUT_SM_04_02_State_UnmarshalText_RejectsUnknownValue(t *testing.T) {
	var s State
	err := s.UnmarshalText([]byte("NotAState"))
	assert.Error(t, err)
	assert.True(t, errors.IsSerdeError(err))
}
