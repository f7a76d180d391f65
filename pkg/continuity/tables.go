package continuity

// FindMy status, taken from the top two bits of the first status byte.
var findMyStatus = [...]string{
	0x00: "Owned",
	0x01: "Shared",
	0x02: "Owned (maintained)",
	0x03: "Separated",
	0x04: "Unknown",
}

// Nearby Info activity level codes.
var activities = map[byte]string{
	0x01: "Off",
	0x03: "Idle",
	0x05: "Audio",
	0x07: "Screen On",
	0x09: "Screen On (video)",
	0x0A: "Watch On Wrist",
	0x0B: "Recent Call",
	0x0D: "Active Call",
	0x11: "Home Screen",
	0x13: "Using Device",
	0x17: "Driving",
	0x18: "Transportation",
	0x1A: "Navigation",
	0x1B: "Workout",
	0x1C: "Siri",
}

// Proximity Pairing device models, keyed by the big endian model id.
var deviceModels = map[uint16]string{
	0x0220: "AirPods",
	0x0320: "Powerbeats3",
	0x0520: "BeatsX",
	0x0620: "AirPods Pro",
	0x0A20: "AirPods Max",
	0x0E20: "AirPods Pro 2",
	0x1020: "Beats Fit Pro",
	0x1220: "AirPods 3",
	0x1420: "AirPods Pro 2 (USB-C)",
}

// Nearby Action subtypes.
var nearbyActions = map[byte]string{
	0x01: "Apple TV Setup",
	0x04: "Mobile Backup",
	0x05: "Watch Setup",
	0x06: "Apple TV Pairing",
	0x07: "Internet Tethering",
	0x08: "Wi-Fi Password",
	0x09: "iOS Setup",
	0x0A: "Repair",
	0x0B: "Speaker Setup",
	0x0C: "Apple Pay",
	0x0D: "Whole Home Audio Setup",
	0x0E: "Developer Tools",
	0x0F: "Answered Call",
	0x10: "Ended Call",
	0x11: "DD Ping",
	0x12: "DD Pong",
	0x13: "Remote Auto Fill",
	0x14: "Companion Link",
	0x15: "Remote Management",
	0x16: "Remote Auto Fill Pong",
	0x17: "Remote Display",
}
