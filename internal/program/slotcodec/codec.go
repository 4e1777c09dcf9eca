// Package slotcodec packs a state.Record into a fixed-size state account
// buffer and recovers it again.
//
// Slot layout (all integers little endian):
//
//	[0, 4)        uint32 L, length of the serialized record
//	[4, 4+L)      serialized record
//	[4+L, size)   stale bytes, never interpreted
//
// Serialized record:
//
//	online        1 byte
//	count         uint32
//	count times:  uint32 len, key bytes, uint32 len, value bytes
//
// Entries are written in ascending key order so a record always encodes to
// the same bytes.
package slotcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"

	"github.com/iulianbarbu/solana-social-dapp/internal/program/state"
)

const (
	// SlotSize is the physical size of every state account.
	SlotSize = 1_000_000
	// PrefixSize is the size of the payload length header.
	PrefixSize = 4
	// MaxPayloadSize is the largest payload that fits in a SlotSize slot.
	MaxPayloadSize = SlotSize - PrefixSize
)

var (
	ErrSlotTooShort     = errors.New("slot shorter than length prefix")
	ErrCapacityExceeded = errors.New("encoded record exceeds slot capacity")
	ErrCorruptPayload   = errors.New("corrupt record payload")
)

// Decode reads the record stored in slot.
//
// Only a slot shorter than the length prefix is an error. A prefix pointing
// past the end of the slot or a payload that does not parse yields
// state.New(), which is how a never-written slot reads as an empty, offline
// record.
func Decode(slot []byte) (*state.Record, error) {
	rec, _, err := TryDecode(slot)
	return rec, err
}

// TryDecode is Decode that also reports whether the payload parsed. When ok
// is false the returned record is the default one.
func TryDecode(slot []byte) (rec *state.Record, ok bool, err error) {
	payload, err := payloadSpan(slot)
	if err != nil {
		if errors.Is(err, ErrSlotTooShort) {
			return nil, false, err
		}
		return state.New(), false, nil
	}
	rec, err = UnmarshalRecord(payload)
	if err != nil {
		return state.New(), false, nil
	}
	return rec, true, nil
}

// Encode serializes rec into slot in place and returns the payload length.
// The slot is not modified when the payload does not fit.
func Encode(rec *state.Record, slot []byte) (int, error) {
	if len(slot) < PrefixSize {
		return 0, ErrSlotTooShort
	}
	if size := EncodedSize(rec); size > len(slot)-PrefixSize {
		return 0, fmt.Errorf("%w: payload %d bytes, room for %d", ErrCapacityExceeded, size, len(slot)-PrefixSize)
	}
	payload, err := MarshalRecord(rec)
	if err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint32(slot[:PrefixSize], uint32(len(payload)))
	copy(slot[PrefixSize:], payload)
	return len(payload), nil
}

// PayloadLen returns the length declared by the slot prefix.
func PayloadLen(slot []byte) (uint32, error) {
	if len(slot) < PrefixSize {
		return 0, ErrSlotTooShort
	}
	return binary.LittleEndian.Uint32(slot[:PrefixSize]), nil
}

// Span returns the prefix and the declared payload, i.e. the only bytes of
// the slot that carry meaning.
func Span(slot []byte) ([]byte, error) {
	payload, err := payloadSpan(slot)
	if err != nil {
		return nil, err
	}
	return slot[:PrefixSize+len(payload)], nil
}

func payloadSpan(slot []byte) ([]byte, error) {
	l, err := PayloadLen(slot)
	if err != nil {
		return nil, err
	}
	end := uint64(PrefixSize) + uint64(l)
	if end > uint64(len(slot)) {
		return nil, fmt.Errorf("%w: declared length %d past slot end", ErrCorruptPayload, l)
	}
	return slot[PrefixSize:end], nil
}

// EncodedSize returns the payload length MarshalRecord would produce.
func EncodedSize(rec *state.Record) int {
	n := 1 + 4
	for k, v := range rec.Friends {
		n += 4 + len(k) + 4 + len(v)
	}
	return n
}

// wireRecord is the Borsh shape of a record. A HashMap<String, String>
// and a Vec<(String, String)> share one layout, so entries are carried as
// a slice to fix their order.
type wireRecord struct {
	Online  uint8
	Friends []wireEntry
}

type wireEntry struct {
	Key   string
	Value string
}

// MarshalRecord serializes rec.
func MarshalRecord(rec *state.Record) ([]byte, error) {
	keys := make([]string, 0, len(rec.Friends))
	for k := range rec.Friends {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := wireRecord{Online: rec.Online, Friends: make([]wireEntry, len(keys))}
	for i, k := range keys {
		w.Friends[i] = wireEntry{Key: k, Value: rec.Friends[k]}
	}

	payload, err := bin.MarshalBorsh(&w)
	if err != nil {
		return nil, fmt.Errorf("serializing record: %w", err)
	}
	return payload, nil
}

// UnmarshalRecord parses a serialized record. The whole input must be
// consumed; strings must be valid UTF-8 and keys must be unique.
func UnmarshalRecord(payload []byte) (*state.Record, error) {
	if len(payload) < 1+4 {
		return nil, fmt.Errorf("%w: unexpected end of payload", ErrCorruptPayload)
	}
	// every entry needs at least two length headers
	count := binary.LittleEndian.Uint32(payload[1:5])
	if rest := uint64(len(payload) - 5); uint64(count)*8 > rest {
		return nil, fmt.Errorf("%w: %d entries cannot fit in %d bytes", ErrCorruptPayload, count, rest)
	}

	var w wireRecord
	dec := bin.NewBorshDecoder(payload)
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	if dec.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptPayload, dec.Remaining())
	}

	rec := &state.Record{Online: w.Online, Friends: make(map[string]string, len(w.Friends))}
	for _, e := range w.Friends {
		if !utf8.ValidString(e.Key) || !utf8.ValidString(e.Value) {
			return nil, fmt.Errorf("%w: invalid utf-8", ErrCorruptPayload)
		}
		if _, dup := rec.Friends[e.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrCorruptPayload, e.Key)
		}
		rec.Friends[e.Key] = e.Value
	}
	return rec, nil
}
