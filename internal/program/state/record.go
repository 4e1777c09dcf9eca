// Package state holds the logical per-user record kept in a state account:
// an online flag and a set of friend identities.
package state

import "sort"

const (
	Offline uint8 = 0
	Online  uint8 = 1
)

// Record is the decoded content of a state account.
//
// Friends maps a friend identity (base58 public key) to an annotation.
// Annotations are always written empty and otherwise opaque.
type Record struct {
	Online  uint8
	Friends map[string]string
}

// New returns the default record: offline, no friends.
func New() *Record {
	return &Record{Online: Offline, Friends: make(map[string]string)}
}

// IsOnline reports whether the online flag is set to Online.
func (r *Record) IsOnline() bool {
	return r.Online == Online
}

func (r *Record) HasFriend(id string) bool {
	_, ok := r.Friends[id]
	return ok
}

// AddFriend inserts id with an empty annotation. An existing entry keeps
// its annotation.
func (r *Record) AddFriend(id string) {
	if r.Friends == nil {
		r.Friends = make(map[string]string)
	}
	if _, ok := r.Friends[id]; ok {
		return
	}
	r.Friends[id] = ""
}

// RemoveFriend deletes id and reports whether it was present.
func (r *Record) RemoveFriend(id string) bool {
	if _, ok := r.Friends[id]; !ok {
		return false
	}
	delete(r.Friends, id)
	return true
}

// FriendIDs returns the friend identities in ascending order.
func (r *Record) FriendIDs() []string {
	ids := make([]string, 0, len(r.Friends))
	for id := range r.Friends {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := &Record{Online: r.Online, Friends: make(map[string]string, len(r.Friends))}
	for k, v := range r.Friends {
		c.Friends[k] = v
	}
	return c
}

// Equal reports whether r and o hold the same flag and friend entries.
// A nil friend map equals an empty one.
func (r *Record) Equal(o *Record) bool {
	if r.Online != o.Online || len(r.Friends) != len(o.Friends) {
		return false
	}
	for k, v := range r.Friends {
		if ov, ok := o.Friends[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
