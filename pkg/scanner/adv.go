package scanner

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// AD structure types carrying service class UUID lists.
const (
	adIncomplete16  = 0x02
	adComplete16    = 0x03
	adIncomplete32  = 0x04
	adComplete32    = 0x05
	adIncomplete128 = 0x06
	adComplete128   = 0x07
)

var baseUUID = uuid.MustParse("00000000-0000-1000-8000-00805f9b34fb")

// serviceUUIDs extracts the advertised service class UUIDs from raw
// advertising data, as canonical lower case 128-bit strings. Malformed
// structures end the walk.
func serviceUUIDs(raw []byte) []string {
	var out []string
	for i := 0; i < len(raw); {
		l := int(raw[i])
		if l == 0 || i+1+l > len(raw) {
			break
		}
		adType := raw[i+1]
		data := raw[i+2 : i+1+l]
		i += 1 + l

		switch adType {
		case adIncomplete16, adComplete16:
			for ; len(data) >= 2; data = data[2:] {
				out = append(out, shortUUID(uint32(binary.LittleEndian.Uint16(data))))
			}
		case adIncomplete32, adComplete32:
			for ; len(data) >= 4; data = data[4:] {
				out = append(out, shortUUID(binary.LittleEndian.Uint32(data)))
			}
		case adIncomplete128, adComplete128:
			for ; len(data) >= 16; data = data[16:] {
				var b [16]byte
				for j := range b {
					b[j] = data[15-j]
				}
				out = append(out, uuid.UUID(b).String())
			}
		}
	}
	return out
}

func shortUUID(v uint32) string {
	u := baseUUID
	binary.BigEndian.PutUint32(u[:4], v)
	return u.String()
}
