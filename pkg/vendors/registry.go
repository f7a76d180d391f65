// Package vendors maps Bluetooth SIG company identifiers, the 16-bit prefix of
// manufacturer specific advertisement data, to display names.
package vendors

import "fmt"

const (
	// Apple is the company identifier carrying the Continuity protocol.
	Apple uint16 = 0x004C

	// Unknown is the placeholder identifier for devices that advertise no
	// manufacturer specific data at all.
	Unknown uint16 = 0xFFFF

	// UnknownName is the display name paired with Unknown.
	UnknownName = "Unknown"
)

// Lookup returns the registered name for id and whether it is registered.
func Lookup(id uint16) (string, bool) {
	name, ok := companyNames[id]
	return name, ok
}

// Resolve returns the registered name for id. Unregistered identifiers
// resolve to a placeholder carrying the raw value, e.g. "Unknown (ID: 0x9999)".
func Resolve(id uint16) string {
	if name, ok := companyNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (ID: 0x%04X)", id)
}

// Len returns the number of registered identifiers.
func Len() int {
	return len(companyNames)
}
