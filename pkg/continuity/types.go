package continuity

import "fmt"

// MessageType is the one byte type tag heading every Continuity TLV message.
type MessageType uint8

// Known message types.
// See: https://github.com/furiousMAC/continuity
const (
	TypeAirPrint         MessageType = 0x01
	TypeAirDropLegacy    MessageType = 0x02
	TypeHomeKitLegacy    MessageType = 0x03
	TypeAirDrop          MessageType = 0x05
	TypeHomeKit          MessageType = 0x06
	TypeProximityPairing MessageType = 0x07
	TypeHeySiri          MessageType = 0x08
	TypeAirPlayTarget    MessageType = 0x09
	TypeAirPlaySource    MessageType = 0x0A
	TypeMagicSwitch      MessageType = 0x0B
	TypeHandoff          MessageType = 0x0C
	TypeTetheringTarget  MessageType = 0x0D
	TypeTetheringSource  MessageType = 0x0E
	TypeNearbyAction     MessageType = 0x0F
	TypeNearbyInfo       MessageType = 0x10
	TypeFindMy           MessageType = 0x12
	TypeFindMyAccessory  MessageType = 0x13
	TypeFindMyLocation   MessageType = 0x14
	TypeAirPodsPairing   MessageType = 0x16
)

var typeNames = map[MessageType]string{
	TypeAirPrint:         "AirPrint",
	TypeAirDropLegacy:    "AirDrop",
	TypeHomeKitLegacy:    "HomeKit",
	TypeAirDrop:          "AirDrop",
	TypeHomeKit:          "HomeKit",
	TypeProximityPairing: "AirPods / Proximity Pairing",
	TypeHeySiri:          "Hey Siri",
	TypeAirPlayTarget:    "AirPlay Target",
	TypeAirPlaySource:    "AirPlay Source",
	TypeMagicSwitch:      "MagicSwitch",
	TypeHandoff:          "Handoff",
	TypeTetheringTarget:  "Tethering Target",
	TypeTetheringSource:  "Tethering Source",
	TypeNearbyAction:     "Nearby Action",
	TypeNearbyInfo:       "Nearby Info",
	TypeFindMy:           "FindMy (AirTag/Device)",
	TypeFindMyAccessory:  "FindMy Accessory",
	TypeFindMyLocation:   "FindMy Location",
	TypeAirPodsPairing:   "AirPods Pairing",
}

// Known reports whether t has an entry in the built-in type name table.
func (t MessageType) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// String returns the generic name of t, or "Unknown (0xNN)".
func (t MessageType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return unknownType(t)
}

func unknownType(t MessageType) string {
	return fmt.Sprintf("Unknown (0x%02X)", uint8(t))
}
