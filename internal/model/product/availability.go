package product

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAvailability is returned for values that name no Availability.
var ErrInvalidAvailability = errors.New("invalid availability")

// Availability filters products by stock state.
type Availability int

const (
	Available Availability = iota
	UnAvailable
)

var availabilityNames = map[Availability]string{
	Available:   "Available",
	UnAvailable: "UnAvailable",
}

func (a Availability) String() string {
	if name, ok := availabilityNames[a]; ok {
		return name
	}

	return "Availability(" + strconv.Itoa(int(a)) + ")"
}

// ParseAvailability accepts a name (any case) or an ordinal.
func ParseAvailability(value string) (Availability, error) {
	value = strings.TrimSpace(value)

	for a, name := range availabilityNames {
		if strings.EqualFold(value, name) || value == strconv.Itoa(int(a)) {
			return a, nil
		}
	}

	return 0, fmt.Errorf("%w %q (must be one of: Available, UnAvailable)", ErrInvalidAvailability, value)
}

// UnmarshalParam lets Echo bind the enum from query parameters.
func (a *Availability) UnmarshalParam(param string) error {
	parsed, err := ParseAvailability(param)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

func (a Availability) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
