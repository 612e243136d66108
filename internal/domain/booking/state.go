package booking

import (
	"strings"

	"github.com/lendhub/service-lending/internal/apperrors"
)

// State is a query-time filter bucket for booking lists. It is distinct from
// Status: CURRENT, PAST and FUTURE select on the booking time window, while
// WAITING and REJECTED select on the persisted status.
type State string

const (
	StateAll      State = "ALL"
	StatePast     State = "PAST"
	StateCurrent  State = "CURRENT"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var knownStates = map[State]struct{}{
	StateAll:      {},
	StatePast:     {},
	StateCurrent:  {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState classifies a state token, case-insensitively. An unrecognized
// token is an internal error, not a validation error: the token set is part of
// the API contract and an unknown value means a broken client or gateway.
func ParseState(token string) (State, error) {
	state := State(strings.ToUpper(token))
	if _, ok := knownStates[state]; !ok {
		return "", apperrors.NewInternalError("Unknown state: " + token)
	}
	return state, nil
}
