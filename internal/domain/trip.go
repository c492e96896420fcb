// Package domain contains the core data types for the Footprint API.
// It is imported by every other internal package (emissions, repo, service,
// handler) and depends only on uuid and decimal.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransportMode is how a trip was travelled. Recognized modes use the
// constants below; any other value is kept verbatim and treated as unknown.
type TransportMode string

const (
	ModeCar      TransportMode = "Car"
	ModeBus      TransportMode = "Bus"
	ModeTrain    TransportMode = "Train"
	ModeAirplane TransportMode = "Airplane"
	ModeCycle    TransportMode = "Cycle"
	ModeWalk     TransportMode = "Walk"
)

// modeAliases maps lowercased input to a canonical mode.
var modeAliases = map[string]TransportMode{
	"car":      ModeCar,
	"bus":      ModeBus,
	"train":    ModeTrain,
	"airplane": ModeAirplane,
	"plane":    ModeAirplane,
	"flight":   ModeAirplane,
	"cycle":    ModeCycle,
	"bike":     ModeCycle,
	"bicycle":  ModeCycle,
	"walk":     ModeWalk,
	"walking":  ModeWalk,
}

// ParseTransportMode maps free-form client input to a TransportMode.
// Matching is case-insensitive. Unrecognized input is returned trimmed but
// otherwise unchanged, so it round-trips to storage as the user typed it.
func ParseTransportMode(s string) TransportMode {
	s = strings.TrimSpace(s)
	if m, ok := modeAliases[strings.ToLower(s)]; ok {
		return m
	}
	return TransportMode(s)
}

// Known reports whether m is one of the canonical modes.
func (m TransportMode) Known() bool {
	switch m {
	case ModeCar, ModeBus, ModeTrain, ModeAirplane, ModeCycle, ModeWalk:
		return true
	}
	return false
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Trip is a single journey logged by the user.
// EmissionsKg is computed once at write time and never recomputed.
// Trips are immutable after creation.
type Trip struct {
	ID          uuid.UUID     `json:"id"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	DistanceKm  float64       `json:"distance_km"`
	Mode        TransportMode `json:"mode"`
	EmissionsKg float64       `json:"emissions_kg"`
	Origin      *Coordinates  `json:"origin,omitempty"`
	Destination *Coordinates  `json:"destination,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
