package model

import (
	"shareit/shared/failure"
	"slices"
	"strings"
)

// State is the temporal or status filter applied when listing bookings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

// ParseState resolves the query value case-insensitively. An empty value means ALL.
func ParseState(raw string) (State, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return StateAll, nil
	}

	state := State(strings.ToUpper(value))
	if !slices.Contains(states, state) {
		return "", UnsupportedState(raw)
	}

	return state, nil
}

func UnsupportedState(raw string) error {
	return failure.BadRequestf("Unknown state: %s", raw) //nolint:wrapcheck
}

// Role selects whose bookings are listed: the ones a user made or the ones on items they own.
type Role string

const (
	RoleBooker Role = "BOOKER"
	RoleOwner  Role = "OWNER"
)
