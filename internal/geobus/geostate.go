// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geobus

// GeolocationState tracks the last known geolocation coordinate of a provider, so that
// providers only emit on positional changes.
type GeolocationState struct {
	last     Coordinate
	haveLast bool
}

// Update stores the given coordinate as the last known position.
func (s *GeolocationState) Update(coord Coordinate) {
	s.last = coord
	s.haveLast = true
}

// HasChanged reports whether coord differs from the last known position. An empty state
// always reports a change.
func (s *GeolocationState) HasChanged(coord Coordinate) bool {
	if !s.haveLast {
		return true
	}
	return coord.Lat != s.last.Lat || coord.Lon != s.last.Lon
}
