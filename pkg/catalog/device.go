package catalog

import (
	"github.com/duckfullstop/blecat/pkg/continuity"
	"github.com/duckfullstop/blecat/pkg/vendors"
)

// UnknownName is displayed for devices that do not advertise a name.
const UnknownName = "Unknown"

// VendorPayload is the manufacturer specific data advertised under one
// company identifier.
type VendorPayload struct {
	ID   uint16 `cbor:"1,keyasint"`
	Data []byte `cbor:"2,keyasint"`
}

// Device is one discovered device as captured by a scan. Name and RSSI are nil
// when the device did not provide them. Vendors keeps the order in which the
// scanner first saw each company identifier.
type Device struct {
	Address  string          `cbor:"1,keyasint"`
	Name     *string         `cbor:"2,keyasint,omitempty"`
	RSSI     *int            `cbor:"3,keyasint,omitempty"`
	Vendors  []VendorPayload `cbor:"4,keyasint,omitempty"`
	Services []string        `cbor:"5,keyasint,omitempty"`
}

// DisplayName returns the advertised name, or UnknownName.
func (d Device) DisplayName() string {
	if d.Name == nil || *d.Name == "" {
		return UnknownName
	}
	return *d.Name
}

// Clone returns a deep copy of d.
func (d Device) Clone() Device {
	c := Device{Address: d.Address}
	if d.Name != nil {
		name := *d.Name
		c.Name = &name
	}
	if d.RSSI != nil {
		rssi := *d.RSSI
		c.RSSI = &rssi
	}
	if d.Vendors != nil {
		c.Vendors = make([]VendorPayload, len(d.Vendors))
		for i, v := range d.Vendors {
			c.Vendors[i] = VendorPayload{ID: v.ID, Data: append([]byte(nil), v.Data...)}
		}
	}
	if d.Services != nil {
		c.Services = append([]string(nil), d.Services...)
	}
	return c
}

// VendorInfo is a resolved vendor payload.
type VendorInfo struct {
	ID   uint16
	Name string
	Data []byte

	// Continuity holds the decoded Apple Continuity description. It is only
	// set for Apple payloads that produced at least one message.
	Continuity *string
}

// Entry is a device together with its resolved vendors.
type Entry struct {
	Device  Device
	Vendors []VendorInfo
}

// NewEntry resolves every vendor payload of d.
func NewEntry(d Device) Entry {
	e := Entry{Device: d}
	if len(d.Vendors) > 0 {
		e.Vendors = make([]VendorInfo, 0, len(d.Vendors))
	}
	for _, v := range d.Vendors {
		info := VendorInfo{
			ID:   v.ID,
			Name: vendors.Resolve(v.ID),
			Data: v.Data,
		}
		if v.ID == vendors.Apple {
			if desc, ok := continuity.Decode(v.Data); ok {
				info.Continuity = &desc
			}
		}
		e.Vendors = append(e.Vendors, info)
	}
	return e
}

// PrimaryVendor returns the id and name of the first advertised vendor, or
// vendors.Unknown and vendors.UnknownName for devices without any.
func (e Entry) PrimaryVendor() (uint16, string) {
	if len(e.Vendors) == 0 {
		return vendors.Unknown, vendors.UnknownName
	}
	return e.Vendors[0].ID, e.Vendors[0].Name
}

// VendorName returns the name of the primary vendor.
func (e Entry) VendorName() string {
	_, name := e.PrimaryVendor()
	return name
}
