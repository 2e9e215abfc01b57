package models

import (
	"fmt"

	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
)

// Status is a rental's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ItemEffect is the change a transition makes to the rented item's status.
type ItemEffect int

const (
	// EffectNone leaves the item untouched.
	EffectNone ItemEffect = iota
	// EffectOccupy marks the item rented.
	EffectOccupy
	// EffectRelease marks the item available again.
	EffectRelease
)

// transitions is the complete rental state machine. Pairs not listed are refused.
var transitions = map[Status]map[Status]ItemEffect{
	StatusPending: {
		StatusApproved:  EffectNone,
		StatusCancelled: EffectNone,
	},
	StatusApproved: {
		StatusActive:    EffectOccupy,
		StatusCancelled: EffectRelease,
	},
	StatusActive: {
		StatusCompleted: EffectRelease,
	},
}

// ParseStatus converts s into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusActive, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown rental status %q", rentaldomain.ErrValidation, s)
	}
}

// String returns the underlying string value.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether s → to is in the transition table.
func (s Status) CanTransitionTo(to Status) bool {
	_, ok := transitions[s][to]
	return ok
}

// Effect returns the item side effect of s → to. Only meaningful when
// CanTransitionTo reports true.
func (s Status) Effect(to Status) ItemEffect {
	return transitions[s][to]
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Blocks reports whether a rental in status s reserves its dates.
func (s Status) Blocks() bool {
	return s == StatusApproved || s == StatusActive
}
