package checkout

// Phase is one checkout workflow state.
type Phase int

const (
	// Browsing: no checkout in progress.
	Browsing Phase = iota
	// OrderOpen: payment/address form open, group not yet valid.
	OrderOpen
	// OrderValid: payment/address form open and currently valid.
	OrderValid
	// ContactsOpen: email/phone form open.
	ContactsOpen
	// Submitting: order request in flight.
	Submitting
	// Success: order confirmed, success view showing.
	Success
)

var phaseNames = map[Phase]string{
	Browsing:     "browsing",
	OrderOpen:    "order-open",
	OrderValid:   "order-valid",
	ContactsOpen: "contacts-open",
	Submitting:   "submitting",
	Success:      "success",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// PhaseByName resolves a phase from its string form.
// Used by scenario files; unknown names report ok=false.
func PhaseByName(name string) (Phase, bool) {
	for p, n := range phaseNames {
		if n == name {
			return p, true
		}
	}
	return Browsing, false
}

// Machine is the checkout state machine. Not safe for concurrent use;
// the application drives it from a single goroutine, like every other
// piece of mutable state.
type Machine struct {
	phase Phase
}

// NewMachine creates a machine in the Browsing phase.
func NewMachine() *Machine {
	return &Machine{phase: Browsing}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// OpenOrder starts a checkout attempt: Browsing → OrderOpen.
// Re-opening the order form from a later form phase is also legal, so a
// user can step back before anything was submitted.
func (m *Machine) OpenOrder() error {
	switch m.phase {
	case Browsing, OrderOpen, OrderValid, ContactsOpen:
		m.phase = OrderOpen
		return nil
	default:
		return m.illegal("open-order")
	}
}

// MarkOrderValid records that the payment/address group became valid:
// OrderOpen → OrderValid. Marking an already-valid order is a no-op.
func (m *Machine) MarkOrderValid() error {
	switch m.phase {
	case OrderOpen, OrderValid:
		m.phase = OrderValid
		return nil
	default:
		return m.illegal("mark-order-valid")
	}
}

// MarkOrderInvalid records that an edit broke the payment/address group:
// OrderValid → OrderOpen.
func (m *Machine) MarkOrderInvalid() error {
	switch m.phase {
	case OrderOpen, OrderValid:
		m.phase = OrderOpen
		return nil
	default:
		return m.illegal("mark-order-invalid")
	}
}

// OpenContacts advances to the contacts form: OrderValid → ContactsOpen.
// Rejected unless the order group was marked valid first.
func (m *Machine) OpenContacts() error {
	if m.phase != OrderValid {
		return m.illegal("open-contacts")
	}
	m.phase = ContactsOpen
	return nil
}

// BeginSubmit marks the order request in flight: ContactsOpen →
// Submitting. A second BeginSubmit while Submitting is rejected, which is
// the at-most-once guard for duplicate submissions.
func (m *Machine) BeginSubmit() error {
	if m.phase != ContactsOpen {
		return m.illegal("begin-submit")
	}
	m.phase = Submitting
	return nil
}

// CompleteSubmit records a confirmed order: Submitting → Success.
func (m *Machine) CompleteSubmit() error {
	if m.phase != Submitting {
		return m.illegal("complete-submit")
	}
	m.phase = Success
	return nil
}

// FailSubmit returns to the contacts form after a failed request:
// Submitting → ContactsOpen. The draft and basket are untouched, so the
// user can retry.
func (m *Machine) FailSubmit() error {
	if m.phase != Submitting {
		return m.illegal("fail-submit")
	}
	m.phase = ContactsOpen
	return nil
}

// Finish closes the success view and returns to Browsing.
func (m *Machine) Finish() error {
	if m.phase != Success {
		return m.illegal("finish")
	}
	m.phase = Browsing
	return nil
}

// Abandon aborts an in-progress checkout from any form phase, e.g. when
// the modal is closed. Abandoning while a request is in flight is
// rejected: the outcome must be recorded first.
func (m *Machine) Abandon() error {
	switch m.phase {
	case Browsing:
		return nil
	case OrderOpen, OrderValid, ContactsOpen, Success:
		m.phase = Browsing
		return nil
	default:
		return m.illegal("abandon")
	}
}

func (m *Machine) illegal(transition string) error {
	return &TransitionError{From: m.phase, Transition: transition}
}
