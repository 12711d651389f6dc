package models

import (
	"fmt"
	"strings"
)

// Status is the stage of an order in the service pipeline.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusServed     Status = "served"
	StatusPaid       Status = "paid"
)

// Pipeline lists every status in the order an order moves through them.
var Pipeline = []Status{StatusPending, StatusInProgress, StatusServed, StatusPaid}

// Rank returns the position of s in the pipeline, or -1 for an unknown status.
func (s Status) Rank() int {
	for i, p := range Pipeline {
		if p == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the four pipeline statuses.
func (s Status) Valid() bool { return s.Rank() >= 0 }

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool { return s == StatusPaid }

func (s Status) String() string { return string(s) }

// ParseStatus converts a wire value into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.TrimSpace(v))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}

// NextStatus returns the stage that follows current.
// Paid is terminal: advancing it returns paid again.
func NextStatus(current Status) Status {
	switch current {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusServed
	case StatusServed, StatusPaid:
		return StatusPaid
	default:
		return current
	}
}

// CanTransition reports whether an order in status from may be moved to to.
// Only a one-step advance or a repeat of the current status is allowed.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return to == from || to == NextStatus(from)
}
