package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, Browsing, m.Phase())

	require.NoError(t, m.OpenOrder())
	assert.Equal(t, OrderOpen, m.Phase())

	require.NoError(t, m.MarkOrderValid())
	assert.Equal(t, OrderValid, m.Phase())

	require.NoError(t, m.OpenContacts())
	assert.Equal(t, ContactsOpen, m.Phase())

	require.NoError(t, m.BeginSubmit())
	assert.Equal(t, Submitting, m.Phase())

	require.NoError(t, m.CompleteSubmit())
	assert.Equal(t, Success, m.Phase())

	require.NoError(t, m.Finish())
	assert.Equal(t, Browsing, m.Phase())
}

func TestMachine_ContactsBeforeOrderValidRejected(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.OpenOrder())

	err := m.OpenContacts()

	require.Error(t, err)
	assert.True(t, IsTransitionError(err))
	assert.Equal(t, OrderOpen, m.Phase(), "rejected transition must not move the machine")
}

func TestMachine_SubmitBeforeContactsRejected(t *testing.T) {
	m := NewMachine()

	err := m.BeginSubmit()

	require.Error(t, err)
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, Browsing, te.From)
	assert.Equal(t, "begin-submit", te.Transition)
}

func TestMachine_DuplicateSubmitRejected(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.OpenOrder())
	require.NoError(t, m.MarkOrderValid())
	require.NoError(t, m.OpenContacts())
	require.NoError(t, m.BeginSubmit())

	err := m.BeginSubmit()

	require.Error(t, err)
	assert.True(t, IsTransitionError(err))
	assert.Equal(t, Submitting, m.Phase())
}

func TestMachine_FailedSubmitAllowsRetry(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.OpenOrder())
	require.NoError(t, m.MarkOrderValid())
	require.NoError(t, m.OpenContacts())
	require.NoError(t, m.BeginSubmit())

	require.NoError(t, m.FailSubmit())
	assert.Equal(t, ContactsOpen, m.Phase())

	require.NoError(t, m.BeginSubmit())
	require.NoError(t, m.CompleteSubmit())
	assert.Equal(t, Success, m.Phase())
}

func TestMachine_EditCanInvalidateOrder(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.OpenOrder())
	require.NoError(t, m.MarkOrderValid())

	require.NoError(t, m.MarkOrderInvalid())
	assert.Equal(t, OrderOpen, m.Phase())

	err := m.OpenContacts()
	require.Error(t, err)
}

func TestMachine_ReopenOrderFromContacts(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.OpenOrder())
	require.NoError(t, m.MarkOrderValid())
	require.NoError(t, m.OpenContacts())

	require.NoError(t, m.OpenOrder())
	assert.Equal(t, OrderOpen, m.Phase())
}

func TestMachine_Abandon(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.OpenOrder())

	require.NoError(t, m.Abandon())
	assert.Equal(t, Browsing, m.Phase())

	// Abandoning while browsing stays a no-op.
	require.NoError(t, m.Abandon())
	assert.Equal(t, Browsing, m.Phase())
}

func TestMachine_AbandonWhileSubmittingRejected(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.OpenOrder())
	require.NoError(t, m.MarkOrderValid())
	require.NoError(t, m.OpenContacts())
	require.NoError(t, m.BeginSubmit())

	err := m.Abandon()

	require.Error(t, err)
	assert.Equal(t, Submitting, m.Phase())
}

func TestPhase_Names(t *testing.T) {
	assert.Equal(t, "browsing", Browsing.String())
	assert.Equal(t, "submitting", Submitting.String())

	p, ok := PhaseByName("contacts-open")
	require.True(t, ok)
	assert.Equal(t, ContactsOpen, p)

	_, ok = PhaseByName("nope")
	assert.False(t, ok)
}
