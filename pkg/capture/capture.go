// Package capture stores scan snapshots as CBOR so a catalog can be rebuilt
// later without a radio.
package capture

import (
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/duckfullstop/blecat/pkg/catalog"
)

// Version is the snapshot format version written by Save.
const Version = 1

// Snapshot is one scan as written to disk.
type Snapshot struct {
	Version    int              `cbor:"1,keyasint"`
	CapturedAt int64            `cbor:"2,keyasint"` // unix seconds
	Devices    []catalog.Device `cbor:"3,keyasint"`
}

// Time returns the capture time.
func (s *Snapshot) Time() time.Time {
	return time.Unix(s.CapturedAt, 0)
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Save writes devices to w as a snapshot taken at t.
func Save(w io.Writer, devices []catalog.Device, t time.Time) error {
	snap := Snapshot{
		Version:    Version,
		CapturedAt: t.Unix(),
		Devices:    devices,
	}
	if err := encMode.NewEncoder(w).Encode(&snap); err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	return nil
}

// Load reads a snapshot written by Save.
func Load(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := cbor.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if snap.Version != Version {
		return nil, errors.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}

// WriteFile saves devices to path, replacing any existing file.
func WriteFile(path string, devices []catalog.Device, t time.Time) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create snapshot file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close snapshot file")
		}
	}()
	return Save(f, devices, t)
}

// ReadFile loads the snapshot stored at path.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot file")
	}
	defer f.Close()
	return Load(f)
}
