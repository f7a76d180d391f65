package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duckfullstop/blecat/pkg/vendors"
)

func str(s string) *string { return &s }

func dbm(v int) *int { return &v }

func addresses(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Device.Address)
	}
	return out
}

func entries(devices ...Device) []Entry {
	out := make([]Entry, 0, len(devices))
	for _, d := range devices {
		out = append(out, NewEntry(d))
	}
	return out
}

func TestFilter(t *testing.T) {
	devices := []Device{
		{Address: "a", Name: str("Dotti-42")},
		{Address: "b", Name: str("Sensor")},
		{Address: "c"},
		{Address: "d", Name: str("my DOTTI")},
	}

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"no filter", "", []string{"a", "b", "c", "d"}},
		{"case insensitive", "dot", []string{"a", "d"}},
		{"upper case filter", "SENS", []string{"b"}},
		{"unnamed device matches Unknown", "unkn", []string{"c"}},
		{"nothing matches", "xyz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(devices, tt.filter)
			gotAddrs := make([]string, 0, len(got))
			for _, d := range got {
				gotAddrs = append(gotAddrs, d.Address)
			}
			assert.Equal(t, tt.want, gotAddrs)
		})
	}
}

func TestSortBySignal(t *testing.T) {
	in := entries(
		Device{Address: "strong", RSSI: dbm(-40)},
		Device{Address: "absent"},
		Device{Address: "weak", RSSI: dbm(-60)},
		Device{Address: "weak-tie", RSSI: dbm(-60)},
		Device{Address: "at-sentinel", RSSI: dbm(-100)},
	)

	got := Sort(in, SortBySignal)
	want := []string{"strong", "weak", "weak-tie", "absent", "at-sentinel"}
	if diff := cmp.Diff(want, addresses(got)); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}

	// Input left untouched.
	assert.Equal(t, []string{"strong", "absent", "weak", "weak-tie", "at-sentinel"}, addresses(in))
}

func TestSortByName(t *testing.T) {
	in := entries(
		Device{Address: "1", Name: str("beta")},
		Device{Address: "2"},
		Device{Address: "3", Name: str("Alpha")},
		Device{Address: "4", Name: str("gamma")},
		Device{Address: "5", Name: str("")},
		Device{Address: "6", Name: str("ALPHA")},
	)

	got := Sort(in, SortByName)
	assert.Equal(t, []string{"3", "6", "1", "4", "2", "5"}, addresses(got))
}

func TestSortByVendor(t *testing.T) {
	in := entries(
		Device{Address: "apple", Vendors: []VendorPayload{{ID: vendors.Apple}}},
		Device{Address: "none"},
		Device{Address: "google", Vendors: []VendorPayload{{ID: 0x00E0}}},
		Device{Address: "bose", Vendors: []VendorPayload{{ID: 0x009E}, {ID: vendors.Apple}}},
		Device{Address: "unregistered", Vendors: []VendorPayload{{ID: 0x9999}}},
	)

	got := Sort(in, SortByVendor)
	// apple, inc. < bose corporation < google < unknown < unknown (id: ...)
	assert.Equal(t, []string{"apple", "bose", "google", "none", "unregistered"}, addresses(got))
}

func TestGroupByVendor(t *testing.T) {
	in := entries(
		Device{Address: "apple-weak", RSSI: dbm(-80), Vendors: []VendorPayload{{ID: vendors.Apple}}},
		Device{Address: "none-1", RSSI: dbm(-30)},
		Device{Address: "google", RSSI: dbm(-50), Vendors: []VendorPayload{{ID: 0x00E0}}},
		Device{Address: "apple-absent", Vendors: []VendorPayload{{ID: vendors.Apple}}},
		Device{Address: "apple-strong", RSSI: dbm(-45), Vendors: []VendorPayload{{ID: vendors.Apple}}},
		Device{Address: "none-2", RSSI: dbm(-90)},
	)

	groups := GroupByVendor(in)
	require.Len(t, groups, 3)

	names := []string{groups[0].Vendor, groups[1].Vendor, groups[2].Vendor}
	assert.Equal(t, []string{"Apple, Inc.", "Google", "Unknown"}, names)

	assert.Equal(t, []string{"apple-strong", "apple-weak", "apple-absent"}, addresses(groups[0].Entries))
	assert.Equal(t, []string{"google"}, addresses(groups[1].Entries))
	assert.Equal(t, []string{"none-1", "none-2"}, addresses(groups[2].Entries))
}

func TestGroupByVendorUnknownAlwaysLast(t *testing.T) {
	in := entries(
		Device{Address: "none"},
		Device{Address: "zeevo", Vendors: []VendorPayload{{ID: 0x0012}}},
		Device{Address: "unregistered", Vendors: []VendorPayload{{ID: 0x9999}}},
	)

	groups := GroupByVendor(in)
	var names []string
	for _, g := range groups {
		names = append(names, g.Vendor)
	}
	assert.Equal(t, []string{"Unknown (ID: 0x9999)", "Zeevo, Inc.", "Unknown"}, names)
}

func TestNewEntry(t *testing.T) {
	t.Run("apple payload decoded", func(t *testing.T) {
		e := NewEntry(Device{
			Address: "a",
			Vendors: []VendorPayload{
				{ID: vendors.Apple, Data: []byte{0x12, 0x01, 0xc0}},
				{ID: 0x0075, Data: []byte{0x12, 0x01, 0xc0}},
			},
		})
		require.Len(t, e.Vendors, 2)
		require.NotNil(t, e.Vendors[0].Continuity)
		assert.Equal(t, "FindMy Device (Separated)", *e.Vendors[0].Continuity)
		assert.Nil(t, e.Vendors[1].Continuity)
		assert.Equal(t, "Samsung Electronics Co. Ltd.", e.Vendors[1].Name)

		id, name := e.PrimaryVendor()
		assert.Equal(t, vendors.Apple, id)
		assert.Equal(t, "Apple, Inc.", name)
	})

	t.Run("undecodable apple payload", func(t *testing.T) {
		e := NewEntry(Device{Vendors: []VendorPayload{{ID: vendors.Apple, Data: []byte{0x10}}}})
		require.Len(t, e.Vendors, 1)
		assert.Nil(t, e.Vendors[0].Continuity)
	})

	t.Run("no payloads", func(t *testing.T) {
		id, name := NewEntry(Device{}).PrimaryVendor()
		assert.Equal(t, uint16(0xFFFF), id)
		assert.Equal(t, "Unknown", name)
	})
}

func TestBuild(t *testing.T) {
	devices := []Device{
		{Address: "1", Name: str("Dotti-42"), RSSI: dbm(-70)},
		{Address: "2", Name: str("Sensor"), RSSI: dbm(-20)},
		{Address: "3", Name: str("dotti-7"), RSSI: dbm(-50), Vendors: []VendorPayload{{ID: vendors.Apple}}},
	}

	r := Build(devices, Options{Filter: "dot", Sort: SortBySignal})
	assert.False(t, r.Grouped)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"3", "1"}, addresses(r.Entries()))

	r = Build(devices, Options{GroupByVendor: true, Sort: SortByName})
	assert.True(t, r.Grouped)
	require.Len(t, r.Groups, 2)
	assert.Equal(t, "Apple, Inc.", r.Groups[0].Vendor)
	assert.Equal(t, []string{"2", "1"}, addresses(r.Groups[1].Entries))

	assert.Equal(t, "1", devices[0].Address)
	assert.Equal(t, "3", devices[2].Address)
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"rssi", SortBySignal, false},
		{"", SortBySignal, false},
		{"Name", SortByName, false},
		{"manufacturer", SortByVendor, false},
		{"vendor", SortByVendor, false},
		{"address", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClone(t *testing.T) {
	d := Device{
		Address:  "a",
		Name:     str("n"),
		RSSI:     dbm(-1),
		Vendors:  []VendorPayload{{ID: 1, Data: []byte{1, 2}}},
		Services: []string{"s"},
	}
	c := d.Clone()
	require.Equal(t, d, c)

	*c.Name = "changed"
	*c.RSSI = 5
	c.Vendors[0].Data[0] = 9
	c.Services[0] = "x"

	assert.Equal(t, "n", *d.Name)
	assert.Equal(t, -1, *d.RSSI)
	assert.Equal(t, byte(1), d.Vendors[0].Data[0])
	assert.Equal(t, "s", d.Services[0])
}
