package order

import (
	"buffet/internal/pkg/errs"
)

// Station identifies one of the two fulfillment stations an order is assigned
// to at checkout, and an operator is scoped to. An order in Cart status has
// no station yet.
type Station int

const (
	// NoStation means the order has not been submitted to a station.
	// It is the only valid station value for an order in Cart status.
	NoStation Station = iota

	// StationLeft is the left fulfillment station.
	StationLeft

	// StationRight is the right fulfillment station.
	StationRight
)

func getStationStrings() map[Station]string {
	return map[Station]string{
		NoStation:    "",
		StationLeft:  "left",
		StationRight: "right",
	}
}

// StationFromString parses a station from its persisted string form.
// Returns an error for anything other than "left" or "right".
func StationFromString(s string) (Station, error) {
	switch s {
	case "left":
		return StationLeft, nil
	case "right":
		return StationRight, nil
	default:
		return NoStation, errs.NewValueIsInvalidError("station")
	}
}

// Validate checks that the station is an assignable one (left or right).
// NoStation is not assignable.
func (s Station) Validate() error {
	if s != StationLeft && s != StationRight {
		return errs.NewValueIsInvalidError("station")
	}
	return nil
}

// String returns the persisted name of the station, or the empty string
// for NoStation.
func (s Station) String() string {
	if str, ok := getStationStrings()[s]; ok {
		return str
	}
	return ""
}
