// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package coordinator

// State is the phase of the coordinator.
type State int

const (
	Idle State = iota
	AwaitingLocation
	AwaitingConnectivity
	Fetching
	JoinedSuccess
	JoinedFailure
	LocationDisabled
	LocationUnavailable
)

var stateNames = map[State]string{
	Idle:                 "idle",
	AwaitingLocation:     "awaiting_location",
	AwaitingConnectivity: "awaiting_connectivity",
	Fetching:             "fetching",
	JoinedSuccess:        "joined_success",
	JoinedFailure:        "joined_failure",
	LocationDisabled:     "location_disabled",
	LocationUnavailable:  "location_unavailable",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Joined reports whether the state is the end of a fetch cycle.
func (s State) Joined() bool {
	return s == JoinedSuccess || s == JoinedFailure
}
