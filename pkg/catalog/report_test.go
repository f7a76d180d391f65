package catalog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duckfullstop/blecat/pkg/vendors"
)

func TestWriteEntry(t *testing.T) {
	e := NewEntry(Device{
		Address: "AA:BB:CC:DD:EE:FF",
		Name:    str("iPhone"),
		RSSI:    dbm(-52),
		Vendors: []VendorPayload{
			{ID: vendors.Apple, Data: []byte{0x0c, 0x00, 0x0a, 0x00}},
			{ID: 0x9999, Data: []byte{0xde, 0xad}},
		},
		Services: []string{"0000fff0-0000-1000-8000-00805f9b34fb", "0000180f-0000-1000-8000-00805f9b34fb"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteEntry(&buf, e, true))

	want := "Device: iPhone\n" +
		"  Address: AA:BB:CC:DD:EE:FF\n" +
		"  RSSI: -52 dBm\n" +
		"  Manufacturer: Apple, Inc. (0x004C)\n" +
		"  Apple Type: Handoff Active | AirPlay Source\n" +
		"  Raw Data: 0c000a00\n" +
		"  Manufacturer: Unknown (ID: 0x9999) (0x9999)\n" +
		"  Raw Data: dead\n" +
		"  Services: 0000fff0-0000-1000-8000-00805f9b34fb, 0000180f-0000-1000-8000-00805f9b34fb\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteEntryMinimal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntry(&buf, NewEntry(Device{Address: "x"}), false))
	assert.Equal(t, "Device: Unknown\n  Address: x\n\n", buf.String())
}

func TestWriteReportGrouped(t *testing.T) {
	devices := []Device{
		{Address: "1", Name: str("Dotti"), RSSI: dbm(-60)},
		{Address: "2", RSSI: dbm(-40), Vendors: []VendorPayload{{ID: 0x00E0, Data: []byte{0x01}}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, Build(devices, Options{GroupByVendor: true}), false))

	want := "\nFound 2 device(s):\n\n" +
		banner + "\n Google (1 devices)\n" + banner + "\n" +
		"Device: Unknown\n  Address: 2\n  RSSI: -40 dBm\n  Manufacturer: Google (0x00E0)\n\n" +
		banner + "\n Unknown (1 devices)\n" + banner + "\n" +
		"Device: Dotti\n  Address: 1\n  RSSI: -60 dBm\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, Build(nil, Options{}), false))
	assert.Equal(t, "\nFound 0 device(s):\n\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteReportPropagatesError(t *testing.T) {
	err := WriteReport(failingWriter{}, Build([]Device{{Address: "a"}}, Options{}), false)
	assert.EqualError(t, err, "closed")
}

func TestSighting(t *testing.T) {
	assert.Equal(t, "  Found: Dotti                | 11:22 | RSSI: -61 dBm",
		Sighting(Device{Address: "11:22", Name: str("Dotti"), RSSI: dbm(-61)}))
	assert.Equal(t, "  Found: Unknown              | 11:22 | RSSI: n/a dBm",
		Sighting(Device{Address: "11:22"}))
}
