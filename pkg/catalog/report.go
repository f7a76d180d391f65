package catalog

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

var banner = strings.Repeat("=", 60)

// printer remembers the first write error so callers can format freely.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteReport renders r to w. Verbose adds the raw payload of every vendor.
func WriteReport(w io.Writer, r *Report, verbose bool) error {
	p := &printer{w: w}
	n := r.Len()
	p.printf("\nFound %d device(s):\n\n", n)

	for _, g := range r.Groups {
		if r.Grouped {
			p.printf("%s\n %s (%d devices)\n%s\n", banner, g.Vendor, len(g.Entries), banner)
		}
		for _, e := range g.Entries {
			writeEntry(p, e, verbose)
		}
	}
	return p.err
}

// WriteEntry renders a single device block followed by a blank line.
func WriteEntry(w io.Writer, e Entry, verbose bool) error {
	p := &printer{w: w}
	writeEntry(p, e, verbose)
	return p.err
}

func writeEntry(p *printer, e Entry, verbose bool) {
	d := e.Device
	p.printf("Device: %s\n", d.DisplayName())
	p.printf("  Address: %s\n", d.Address)
	if d.RSSI != nil {
		p.printf("  RSSI: %d dBm\n", *d.RSSI)
	}

	for _, v := range e.Vendors {
		p.printf("  Manufacturer: %s (0x%04X)\n", v.Name, v.ID)
		if v.Continuity != nil {
			p.printf("  Apple Type: %s\n", *v.Continuity)
		}
		if verbose {
			p.printf("  Raw Data: %s\n", hex.EncodeToString(v.Data))
		}
	}

	if len(d.Services) > 0 {
		p.printf("  Services: %s\n", strings.Join(d.Services, ", "))
	}
	p.printf("\n")
}

// Sighting formats the one line summary printed when a live scan first sees a
// device.
func Sighting(d Device) string {
	rssi := "n/a"
	if d.RSSI != nil {
		rssi = fmt.Sprintf("%d", *d.RSSI)
	}
	return fmt.Sprintf("  Found: %-20s | %s | RSSI: %s dBm", d.DisplayName(), d.Address, rssi)
}
