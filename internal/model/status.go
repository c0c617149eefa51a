package model

// Status represents the fulfilment state of an order.
type Status string

const (
	// StatusPending indicates the order has been submitted but not picked up yet.
	StatusPending Status = "PENDING"
	// StatusProcessing indicates an administrator has begun fulfilment.
	StatusProcessing Status = "PROCESSING"
	// StatusDelivered indicates the order reached the customer. Terminal.
	StatusDelivered Status = "DELIVERED"
	// StatusCancelled indicates the order was cancelled before fulfilment. Terminal.
	StatusCancelled Status = "CANCELLED"
)

// transitions holds the legal status transitions. A processing order cannot
// be cancelled; it can only complete.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}
