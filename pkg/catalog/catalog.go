// Package catalog filters, sorts and groups a batch of discovered devices and
// renders them as a text report.
//
// Every function here is pure: inputs are never reordered or modified, and
// results are freshly allocated slices.
package catalog

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/duckfullstop/blecat/pkg/vendors"
)

const (
	// missingRSSI stands in for absent signal strength when ordering.
	missingRSSI = -100
	// missingName sorts unnamed devices after named ones.
	missingName = "zzz"
)

// SortKey selects the order of an ungrouped report.
type SortKey int

const (
	SortBySignal SortKey = iota
	SortByName
	SortByVendor
)

func (k SortKey) String() string {
	switch k {
	case SortBySignal:
		return "rssi"
	case SortByName:
		return "name"
	case SortByVendor:
		return "manufacturer"
	default:
		return "invalid"
	}
}

// ParseSortKey parses the command line spelling of a sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rssi", "signal":
		return SortBySignal, nil
	case "name":
		return SortByName, nil
	case "manufacturer", "vendor":
		return SortByVendor, nil
	}
	return 0, errors.Errorf("invalid sort key %q (want rssi, name or manufacturer)", s)
}

// Options controls Build.
type Options struct {
	// Filter keeps devices whose display name contains it, ignoring case.
	Filter string
	Sort   SortKey
	// GroupByVendor partitions the report by primary vendor. Sort is ignored
	// when set; devices within a group are ordered by signal strength.
	GroupByVendor bool
}

// Group is a run of entries sharing a primary vendor name.
type Group struct {
	Vendor  string
	Entries []Entry
}

// Report is the ordered result of Build. An ungrouped report holds a single
// group with an empty Vendor.
type Report struct {
	Grouped bool
	Groups  []Group
}

// Len returns the number of entries across all groups.
func (r *Report) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Entries)
	}
	return n
}

// Entries returns all entries in report order.
func (r *Report) Entries() []Entry {
	out := make([]Entry, 0, r.Len())
	for _, g := range r.Groups {
		out = append(out, g.Entries...)
	}
	return out
}

// Build filters devices and orders the survivors as requested by opts.
func Build(devices []Device, opts Options) *Report {
	kept := Filter(devices, opts.Filter)
	entries := make([]Entry, 0, len(kept))
	for _, d := range kept {
		entries = append(entries, NewEntry(d))
	}

	if opts.GroupByVendor {
		return &Report{Grouped: true, Groups: GroupByVendor(entries)}
	}
	return &Report{Groups: []Group{{Entries: Sort(entries, opts.Sort)}}}
}

// Filter returns the devices whose display name contains filter, ignoring
// case. An empty filter keeps everything.
func Filter(devices []Device, filter string) []Device {
	out := make([]Device, 0, len(devices))
	needle := strings.ToLower(filter)
	for _, d := range devices {
		if needle != "" && !strings.Contains(strings.ToLower(d.DisplayName()), needle) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Sort returns entries ordered by key. Ties keep their input order.
func Sort(entries []Entry, key SortKey) []Entry {
	out := append([]Entry(nil), entries...)
	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return nameKey(out[i]) < nameKey(out[j])
		})
	case SortByVendor:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].VendorName()) < strings.ToLower(out[j].VendorName())
		})
	default:
		sortBySignal(out)
	}
	return out
}

// GroupByVendor partitions entries by primary vendor name. Groups are ordered
// by name with the Unknown group last; entries within a group are ordered by
// descending signal strength.
func GroupByVendor(entries []Entry) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, e := range entries {
		name := e.VendorName()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Vendor: name})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		ui, uj := groups[i].Vendor == vendors.UnknownName, groups[j].Vendor == vendors.UnknownName
		if ui != uj {
			return uj
		}
		return groups[i].Vendor < groups[j].Vendor
	})
	for i := range groups {
		sortBySignal(groups[i].Entries)
	}
	return groups
}

func sortBySignal(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return rssiKey(entries[i]) > rssiKey(entries[j])
	})
}

func rssiKey(e Entry) int {
	if e.Device.RSSI == nil {
		return missingRSSI
	}
	return *e.Device.RSSI
}

func nameKey(e Entry) string {
	if e.Device.Name == nil || *e.Device.Name == "" {
		return missingName
	}
	return strings.ToLower(*e.Device.Name)
}
