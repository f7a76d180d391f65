// Package scanner collects BLE advertisements into device snapshots for the
// catalog.
package scanner

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/duckfullstop/blecat/pkg/catalog"
)

// Adapter is the part of *bluetooth.Adapter the scanner drives.
type Adapter interface {
	Enable() error
	Scan(callback func(*bluetooth.Adapter, bluetooth.ScanResult)) error
	StopScan() error
}

// advertisement is the part of bluetooth.AdvertisementPayload the scanner
// reads.
type advertisement interface {
	LocalName() string
	Bytes() []byte
	ManufacturerData() []bluetooth.ManufacturerDataElement
}

// Scanner accumulates advertisements per device address. Every device handed
// out is a copy; callers never share memory with the scanner.
type Scanner struct {
	adapter    Adapter
	log        logrus.FieldLogger
	onDiscover func(catalog.Device)

	mu      sync.Mutex
	order   []string
	devices map[string]*catalog.Device
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger, logrus.StandardLogger() by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Scanner) {
		s.log = l
	}
}

// WithOnDiscover registers fn to be called once per address, the first time it
// is seen. fn runs on the radio callback goroutine.
func WithOnDiscover(fn func(catalog.Device)) Option {
	return func(s *Scanner) {
		s.onDiscover = fn
	}
}

// New returns a scanner driving adapter, usually bluetooth.DefaultAdapter.
func New(adapter Adapter, opts ...Option) *Scanner {
	s := &Scanner{
		adapter: adapter,
		log:     logrus.StandardLogger(),
		devices: make(map[string]*catalog.Device),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan enables the adapter and collects advertisements until duration elapses
// or ctx is done, then returns the devices in first seen order.
func (s *Scanner) Scan(ctx context.Context, duration time.Duration) ([]catalog.Device, error) {
	if err := s.adapter.Enable(); err != nil {
		return nil, errors.Wrap(err, "enable bluetooth adapter")
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	s.log.WithField("duration", duration).Info("🕵️ Scanning for devices...")
	done := make(chan error, 1)
	go func() {
		done <- s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			s.handle(result.Address.String(), result.RSSI, result)
		})
	}()

	select {
	case <-ctx.Done():
		s.log.WithField("reason", ctx.Err()).Debug("stopping scan")
		if err := s.adapter.StopScan(); err != nil {
			return nil, errors.Wrap(err, "stop scan")
		}
		if err := <-done; err != nil {
			return nil, errors.Wrap(err, "scan")
		}
	case err := <-done:
		if err != nil {
			return nil, errors.Wrap(err, "scan")
		}
	}

	devices := s.Snapshot()
	s.log.WithField("devices", len(devices)).Info("✅ Scan finished")
	return devices, nil
}

// Snapshot returns a copy of every device seen so far, in first seen order.
func (s *Scanner) Snapshot() []catalog.Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Device, 0, len(s.order))
	for _, addr := range s.order {
		out = append(out, s.devices[addr].Clone())
	}
	return out
}

func (s *Scanner) handle(addr string, rssi int16, adv advertisement) {
	d, first := s.record(addr, rssi, adv)
	if first {
		s.log.WithFields(logrus.Fields{
			"address": addr,
			"name":    d.DisplayName(),
		}).Debug("👀 Found device")
		if s.onDiscover != nil {
			s.onDiscover(d)
		}
	}
}

// record merges one advertisement into the device state for addr and returns
// a copy of the result.
func (s *Scanner) record(addr string, rssi int16, adv advertisement) (catalog.Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[addr]
	if !ok {
		d = &catalog.Device{Address: addr}
		s.devices[addr] = d
		s.order = append(s.order, addr)
	}

	if name := adv.LocalName(); name != "" {
		d.Name = &name
	}
	// The stack reports 0 when it has no reading.
	if rssi != 0 {
		v := int(rssi)
		d.RSSI = &v
	}

	for _, m := range adv.ManufacturerData() {
		data := append([]byte(nil), m.Data...)
		replaced := false
		for i := range d.Vendors {
			if d.Vendors[i].ID == m.CompanyID {
				d.Vendors[i].Data = data
				replaced = true
				break
			}
		}
		if !replaced {
			d.Vendors = append(d.Vendors, catalog.VendorPayload{ID: m.CompanyID, Data: data})
		}
	}

	for _, u := range serviceUUIDs(adv.Bytes()) {
		if !contains(d.Services, u) {
			d.Services = append(d.Services, u)
		}
	}

	return d.Clone(), !ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
