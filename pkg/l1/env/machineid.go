package env

import (
	"github.com/denisbrodbeck/machineid"
)

// MachineID retrieves the unique ID identifying the machine.
// The raw id is hashed with the application name so it is never
// published as is.
func MachineID() (string, error) {
	id, err := machineid.ProtectedID("rclink")
	if err != nil {
		return "", err
	}
	return id[:16], nil
}

// MachineIDOr returns MachineID or fallback when it is unavailable.
func MachineIDOr(fallback string) string {
	if id, err := MachineID(); err == nil {
		return id
	}
	return fallback
}
