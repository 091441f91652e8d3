package domain

import "fmt"

// BidStatus is the lifecycle state of a marketplace bid
type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
	BidCompleted BidStatus = "completed"
)

// bidTransitions is the allowed state graph. Statuses without an entry are terminal.
var bidTransitions = map[BidStatus][]BidStatus{
	BidPending:  {BidAccepted, BidRejected, BidWithdrawn},
	BidAccepted: {BidCompleted, BidWithdrawn},
}

// Valid reports whether s is a known bid status
func (s BidStatus) Valid() bool {
	switch s {
	case BidPending, BidAccepted, BidRejected, BidWithdrawn, BidCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s
func (s BidStatus) Terminal() bool {
	return s.Valid() && len(bidTransitions[s]) == 0
}

// CanTransition reports whether a bid may move from s to next
func (s BidStatus) CanTransition(next BidStatus) bool {
	for _, allowed := range bidTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateBidTransition returns ErrInvalidBidStatus or ErrInvalidTransition when from->to is not allowed
func ValidateBidTransition(from, to BidStatus) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBidStatus, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBidStatus, to)
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
