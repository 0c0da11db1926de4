package domain

import "strings"

// PlateLength is the exact length of a licence plate.
const PlateLength = 7

// Vehicle is a vehicle registered to the signed-in user.
type Vehicle struct {
	ID    string `json:"id" yaml:"id"`
	Plate string `json:"plate" yaml:"plate"`
}

// NormalizePlate validates a licence plate and returns it in upper case.
// A plate is required, exactly PlateLength characters long and alphanumeric.
func NormalizePlate(plate string) (string, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))

	var msg string
	switch {
	case plate == "":
		msg = "enter the plate"
	case !isAlphanumeric(plate):
		msg = "use letters and digits only"
	case len(plate) != PlateLength:
		msg = "invalid plate"
	}
	if msg != "" {
		return "", validationError([]FieldError{{Field: "plate", Message: msg}})
	}
	return plate, nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
