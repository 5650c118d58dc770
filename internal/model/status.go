package model

// Status is an order lifecycle state. The zero value is not a valid status;
// orders are always created as StatusPending.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCanceled       Status = "canceled"
)

// transitions is the closed transition table. Terminal statuses map to an
// empty set; an unknown status maps to nothing.
var transitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCanceled},
	StatusConfirmed:      {StatusPreparing, StatusCanceled},
	StatusPreparing:      {StatusOutForDelivery, StatusCanceled},
	StatusOutForDelivery: {StatusDelivered, StatusCanceled},
	StatusDelivered:      {},
	StatusCanceled:       {},
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether s has no outgoing transitions.
func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether moving from s to next is a legal
// transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal successor statuses of s.
func (s Status) NextStatuses() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
