package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	r := New()
	assert.Equal(t, Offline, r.Online)
	assert.False(t, r.IsOnline())
	require.NotNil(t, r.Friends)
	assert.Empty(t, r.Friends)
}

func TestFriends_AddHasRemove(t *testing.T) {
	r := New()

	assert.False(t, r.HasFriend("b"))
	r.AddFriend("b")
	assert.True(t, r.HasFriend("b"))
	assert.Equal(t, "", r.Friends["b"])

	assert.True(t, r.RemoveFriend("b"))
	assert.False(t, r.HasFriend("b"))
	assert.False(t, r.RemoveFriend("b"))
}

func TestAddFriend_KeepsExistingAnnotation(t *testing.T) {
	r := &Record{Friends: map[string]string{"b": "note"}}
	r.AddFriend("b")
	assert.Equal(t, "note", r.Friends["b"])
}

func TestAddFriend_NilMap(t *testing.T) {
	r := &Record{}
	r.AddFriend("x")
	assert.True(t, r.HasFriend("x"))
}

func TestFriendIDs_Sorted(t *testing.T) {
	r := New()
	for _, id := range []string{"c", "a", "b"} {
		r.AddFriend(id)
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.FriendIDs())
}

func TestCloneAndEqual(t *testing.T) {
	r := New()
	r.Online = Online
	r.AddFriend("a")

	c := r.Clone()
	assert.True(t, r.Equal(c))

	c.AddFriend("b")
	assert.False(t, r.Equal(c))
	assert.False(t, r.HasFriend("b"))

	assert.True(t, (&Record{}).Equal(New()))
}
