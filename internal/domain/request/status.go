package request

// Status is the lifecycle state of a print request.
type Status string

const (
	StatusRequested Status = "requested"
	StatusQuoted    Status = "quoted"
	StatusAccepted  Status = "accepted"
	StatusPrinting  Status = "printing"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusQuoted, StatusAccepted, StatusPrinting, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further action can move the request.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Action is a lifecycle operation requested by a customer or provider.
type Action string

const (
	ActionSubmitQuote Action = "submit_quote"
	ActionAcceptQuote Action = "accept_quote"
	ActionReject      Action = "reject"
	ActionStartPrint  Action = "start_print"
	ActionComplete    Action = "complete"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	switch a {
	case ActionSubmitQuote, ActionAcceptQuote, ActionReject, ActionStartPrint, ActionComplete:
		return true
	default:
		return false
	}
}

// Actor identifies who is invoking an action. The id is an opaque,
// already-authenticated identifier; the role flag is the only piece of
// authorization context the state machine needs.
type Actor struct {
	ID       ActorID
	Provider bool
}

type transition struct {
	next  Status
	guard func(r *PrintRequest, actor Actor) bool
}

// transitions is the single source of truth for legal status changes.
// A missing (status, action) pair is an invalid transition; a failing
// guard is a forbidden one.
var transitions = map[Status]map[Action]transition{
	StatusRequested: {
		ActionSubmitQuote: {
			next: StatusQuoted,
			guard: func(r *PrintRequest, actor Actor) bool {
				return actor.Provider && r.providerID == nil && actor.ID != r.customerID
			},
		},
		ActionReject: {
			next: StatusRejected,
			guard: func(r *PrintRequest, actor Actor) bool {
				// Either the owning customer cancelling, or a provider declining.
				return actor.ID == r.customerID || actor.Provider
			},
		},
	},
	StatusQuoted: {
		ActionAcceptQuote: {
			next: StatusAccepted,
			guard: func(r *PrintRequest, actor Actor) bool {
				return actor.ID == r.customerID
			},
		},
		ActionReject: {
			next: StatusRejected,
			guard: func(r *PrintRequest, actor Actor) bool {
				return actor.ID == r.customerID || r.isAssignedTo(actor.ID)
			},
		},
	},
	StatusAccepted: {
		ActionStartPrint: {
			next: StatusPrinting,
			guard: func(r *PrintRequest, actor Actor) bool {
				return r.isAssignedTo(actor.ID)
			},
		},
	},
	StatusPrinting: {
		ActionComplete: {
			next: StatusCompleted,
			guard: func(r *PrintRequest, actor Actor) bool {
				return r.isAssignedTo(actor.ID)
			},
		},
	},
}

// NextStatus resolves the transition table for (current, action).
func NextStatus(current Status, action Action) (Status, bool) {
	t, ok := transitions[current][action]
	if !ok {
		return "", false
	}
	return t.next, true
}
