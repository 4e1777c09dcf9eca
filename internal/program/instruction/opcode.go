package instruction

import (
	"fmt"
	"strings"
)

// Opcode is the single byte carried by an instruction payload.
type Opcode uint8

const (
	AddFriend Opcode = iota
	RemoveFriend
	SetStatusOnline
	SetStatusOffline
	// ListOnlineFriends is reserved. Under the Extended set it decodes the
	// slot and changes nothing.
	ListOnlineFriends
)

func (o Opcode) String() string {
	switch o {
	case AddFriend:
		return "AddFriend"
	case RemoveFriend:
		return "RemoveFriend"
	case SetStatusOnline:
		return "SetStatusOnline"
	case SetStatusOffline:
		return "SetStatusOffline"
	case ListOnlineFriends:
		return "ListOnlineFriends"
	default:
		return fmt.Sprintf("Opcode(%d)", uint8(o))
	}
}

// Kind groups opcodes by the handler that serves them.
type Kind int

const (
	KindUnknown Kind = iota
	KindFriend
	KindStatus
	KindQuery
)

func (o Opcode) Kind() Kind {
	switch o {
	case AddFriend, RemoveFriend:
		return KindFriend
	case SetStatusOnline, SetStatusOffline:
		return KindStatus
	case ListOnlineFriends:
		return KindQuery
	default:
		return KindUnknown
	}
}

// Arity is the exact number of accounts the opcode expects, or 0 for an
// unknown opcode.
func (o Opcode) Arity() int {
	switch o.Kind() {
	case KindFriend:
		return 3
	case KindStatus, KindQuery:
		return 2
	default:
		return 0
	}
}

// OpcodeSet is the range of opcodes a processor accepts.
type OpcodeSet struct {
	name string
	last Opcode
}

var (
	// Current accepts AddFriend through SetStatusOffline.
	Current = OpcodeSet{name: "current", last: SetStatusOffline}
	// Extended additionally accepts the decode-only ListOnlineFriends.
	Extended = OpcodeSet{name: "extended", last: ListOnlineFriends}
)

func (s OpcodeSet) String() string { return s.name }

func (s OpcodeSet) Contains(o Opcode) bool { return o <= s.last }

// ParseOpcodeSet maps "current" or "extended" to its set.
func ParseOpcodeSet(name string) (OpcodeSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Current.name:
		return Current, nil
	case Extended.name:
		return Extended, nil
	default:
		return OpcodeSet{}, fmt.Errorf("unknown opcode set %q", name)
	}
}
