// Package continuity decodes Apple Continuity advertisements: the manufacturer
// specific data that Apple devices broadcast under company id 0x004C.
//
// A payload is a sequence of TLV messages, each a one byte type, a one byte
// length and exactly length bytes of data. Decoding is total: truncated or
// malformed input never produces an error, the walk stops at the first
// message that does not fit and keeps whatever came before it.
package continuity

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Separator joins the descriptions of consecutive messages.
const Separator = " | "

const headerLen = 2

// Message is one TLV unit of a Continuity payload.
type Message struct {
	Type MessageType
	Data []byte
}

// Len returns the declared length of the message body.
func (m Message) Len() int {
	return len(m.Data)
}

// Parse walks payload left to right and returns every complete message. The
// walk stops at a truncated header or a body running past the end of payload.
// Message data aliases payload but is capped so appends never write into it.
func Parse(payload []byte) []Message {
	if len(payload) < headerLen {
		return nil
	}

	var msgs []Message
	offset := 0
	for offset < len(payload) {
		if len(payload)-offset < headerLen {
			break
		}
		msgType := MessageType(payload[offset])
		msgLen := int(payload[offset+1])

		end := offset + headerLen + msgLen
		if end > len(payload) {
			break
		}

		msgs = append(msgs, Message{
			Type: msgType,
			Data: payload[offset+headerLen : end : end],
		})
		offset = end
	}
	return msgs
}

// Describer renders the data of one message type as text. It must not index
// data without checking its length.
type Describer func(data []byte) string

// Decoder turns payloads into text. The zero value is not usable, use
// NewDecoder.
type Decoder struct {
	names      map[MessageType]string
	describers map[MessageType]Describer
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithTypeName adds or overrides the generic label for a message type. The
// label is used when no dedicated describer handles the type.
func WithTypeName(t MessageType, name string) Option {
	return func(d *Decoder) {
		d.names[t] = name
	}
}

// WithDescriber registers fn for messages of type t, taking precedence over
// the built-in rendering of that type.
func WithDescriber(t MessageType, fn Describer) Option {
	return func(d *Decoder) {
		d.describers[t] = fn
	}
}

// NewDecoder returns a decoder using the built-in tables extended by opts.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		names:      make(map[MessageType]string, len(typeNames)),
		describers: make(map[MessageType]Describer),
	}
	for t, name := range typeNames {
		d.names[t] = name
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode decodes payload with the built-in tables.
func Decode(payload []byte) (string, bool) {
	return defaultDecoder.Decode(payload)
}

// Decode describes every complete message in payload and joins the
// descriptions with Separator. It reports false when not even one message
// could be read.
func (d *Decoder) Decode(payload []byte) (string, bool) {
	msgs := Parse(payload)
	if len(msgs) == 0 {
		return "", false
	}

	details := make([]string, 0, len(msgs))
	for _, m := range msgs {
		details = append(details, d.Describe(m))
	}
	return strings.Join(details, Separator), true
}

// Describe renders a single message.
func (d *Decoder) Describe(m Message) string {
	if fn, ok := d.describers[m.Type]; ok {
		return fn(m.Data)
	}

	switch m.Type {
	case TypeFindMy:
		return describeFindMy(m.Data)
	case TypeNearbyInfo:
		return describeNearbyInfo(m.Data)
	case TypeProximityPairing:
		return describeProximityPairing(m.Data)
	case TypeNearbyAction:
		return describeNearbyAction(m.Data)
	case TypeAirPlayTarget:
		return "AirPlay Target (Apple TV/HomePod)"
	case TypeHandoff:
		return "Handoff Active"
	case TypeAirPodsPairing:
		return "AirPods/Beats (Pairing Mode)"
	case TypeAirDrop, TypeAirDropLegacy:
		return "AirDrop"
	default:
		return d.typeName(m.Type)
	}
}

func (d *Decoder) typeName(t MessageType) string {
	if name, ok := d.names[t]; ok {
		return name
	}
	return unknownType(t)
}

func describeFindMy(data []byte) string {
	if len(data) < 1 {
		return "FindMy Device"
	}
	status := int(data[0] >> 6)
	name := "Unknown"
	if status < len(findMyStatus) {
		name = findMyStatus[status]
	}
	return fmt.Sprintf("FindMy Device (%s)", name)
}

func describeNearbyInfo(data []byte) string {
	if len(data) < 1 {
		return "Nearby Info"
	}
	activity, ok := activities[data[0]]
	if !ok {
		activity = fmt.Sprintf("0x%02X", data[0])
	}
	return fmt.Sprintf("Nearby Info - Activity: %s", activity)
}

func describeProximityPairing(data []byte) string {
	if len(data) < 2 {
		return "AirPods / Audio Device"
	}
	model := binary.BigEndian.Uint16(data[:2])
	if name, ok := deviceModels[model]; ok {
		return name
	}
	return fmt.Sprintf("Audio Device (0x%04X)", model)
}

func describeNearbyAction(data []byte) string {
	if len(data) < 1 {
		return "Nearby Action"
	}
	action, ok := nearbyActions[data[0]]
	if !ok {
		action = fmt.Sprintf("Action 0x%02X", data[0])
	}
	return fmt.Sprintf("Nearby Action: %s", action)
}
