package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codesync/internal/app/user"
)

func TestRegistry_UsersInRoomKeepsInsertionOrder(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	require.NoError(t, r.Insert(user.New("c1", "r1", "carol")))
	require.NoError(t, r.Insert(user.New("c2", "r2", "dave")))
	require.NoError(t, r.Insert(user.New("c3", "r1", "alice")))
	require.NoError(t, r.Insert(user.New("c4", "r1", "bob")))

	var names []string
	for _, u := range r.UsersInRoom("r1") {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"carol", "alice", "bob"}, names)
	assert.Equal(t, 4, r.Len())
}

func TestRegistry_UsersInRoomEmptyIsNotNil(t *testing.T) {
	t.Parallel()
	users := NewRegistry().UsersInRoom("nowhere")
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestRegistry_InsertRejectsSecondRecordForConnection(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	require.NoError(t, r.Insert(user.New("c1", "r1", "alice")))
	assert.ErrorIs(t, r.Insert(user.New("c1", "r2", "alice")), ErrAlreadyJoined)

	roomID, ok := r.RoomOf("c1")
	assert.True(t, ok)
	assert.Equal(t, "r1", roomID)
}

func TestRegistry_Lookups(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	require.NoError(t, r.Insert(user.New("c1", "r1", "alice")))

	u, ok := r.UserOf("c1")
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, user.StatusOnline, u.Status)
	assert.Nil(t, u.CurrentFile)

	_, ok = r.UserOf("missing")
	assert.False(t, ok)
	_, ok = r.RoomOf("missing")
	assert.False(t, ok)
}

func TestRegistry_UsernameTakenIsPerRoom(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	require.NoError(t, r.Insert(user.New("c1", "r1", "alice")))

	assert.True(t, r.UsernameTaken("r1", "alice"))
	assert.False(t, r.UsernameTaken("r2", "alice"))
	assert.False(t, r.UsernameTaken("r1", "Alice"))
}

func TestRegistry_ReplaceKeepsRoomAndConnection(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	require.NoError(t, r.Insert(user.New("c1", "r1", "alice")))

	u, _ := r.UserOf("c1")
	u.Typing = true
	u.CursorPosition = 42
	u.RoomID = "elsewhere"
	u.SocketID = "other"
	assert.True(t, r.Replace("c1", u))

	got, _ := r.UserOf("c1")
	assert.True(t, got.Typing)
	assert.Equal(t, 42, got.CursorPosition)
	assert.Equal(t, "r1", got.RoomID)
	assert.Equal(t, "c1", got.SocketID)
	assert.Empty(t, r.UsersInRoom("elsewhere"))

	assert.False(t, r.Replace("missing", u))
}

func TestRegistry_Remove(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	require.NoError(t, r.Insert(user.New("c1", "r1", "alice")))
	require.NoError(t, r.Insert(user.New("c2", "r1", "bob")))

	removed, ok := r.Remove("c1")
	require.True(t, ok)
	assert.Equal(t, "alice", removed.Username)

	users := r.UsersInRoom("r1")
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)
	assert.False(t, r.UsernameTaken("r1", "alice"))

	_, ok = r.Remove("c1")
	assert.False(t, ok)
}
