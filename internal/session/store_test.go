package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rachitneema03/edufolio/internal/common"
	"github.com/Rachitneema03/edufolio/internal/logging"
	"github.com/Rachitneema03/edufolio/internal/storage"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*Store, *storage.MemoryBackend, *fakeClock) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := New(backend, testLogger(), 0, nil)
	s.nowFn = clock.Now
	return s, backend, clock
}

func TestLogin_ReturnsSessionWithTTL(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", sess.Identity)
	assert.Len(t, sess.Token, 16)
	assert.Equal(t, clock.Now().UnixMilli(), sess.CreatedAt)
	assert.Equal(t, clock.Now().Add(common.DefaultSessionTTL).UnixMilli(), sess.ExpiresAt)
}

func TestLogin_EmptyIdentity(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.Login(context.Background(), "")
	require.ErrorIs(t, err, common.ErrEmptyIdentity)
}

func TestLogin_ReplacesPriorSession(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "profile", map[string]string{"name": "Asha"}))

	second, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// Data written under the first token is soft-invalidated.
	var dest map[string]string
	found, err := s.Load(ctx, "profile", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCurrentSession_NoneWhenLoggedOut(t *testing.T) {
	s, _, _ := newTestStore(t)

	cur, err := s.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cur)
	assert.False(t, s.IsAuthenticated(context.Background()))
}

func TestCurrentSession_ExpiryIsLazy(t *testing.T) {
	s, backend, clock := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated(ctx))

	clock.Advance(common.DefaultSessionTTL + time.Minute)

	cur, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
	assert.False(t, s.IsAuthenticated(ctx))

	// The record still physically exists until explicit cleanup.
	raw, err := backend.Get(ctx, sessionKey("a@x.com"))
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestIsValid_BoundaryAndRecheck(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, s.IsValid(sess))

	// now == expiresAt is no longer valid (validity requires now < expiresAt).
	clock.Advance(common.DefaultSessionTTL)
	assert.False(t, s.IsValid(sess))
}

func TestStoreAndLoad_RoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)

	type profile struct {
		Name   string   `json:"name"`
		Year   int      `json:"year"`
		Skills []string `json:"skills"`
	}
	in := profile{Name: "Asha", Year: 3, Skills: []string{"go", "sql"}}
	require.NoError(t, s.Store(ctx, "profile", in))

	var out profile
	found, err := s.Load(ctx, "profile", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}

func TestStore_OverwritesSameKey(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, s.Store(ctx, "theme", "light"))
	require.NoError(t, s.Store(ctx, "theme", "dark"))

	var theme string
	found, err := s.Load(ctx, "theme", &theme)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "dark", theme)
}

func TestUnauthenticatedGuards(t *testing.T) {
	s, backend, _ := newTestStore(t)
	ctx := context.Background()

	err := s.Store(ctx, "k", "v")
	require.ErrorIs(t, err, common.ErrNotAuthenticated)

	err = s.Remove(ctx, "k")
	require.ErrorIs(t, err, common.ErrNotAuthenticated)

	_, err = s.ListKeys(ctx)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)

	// Load fails soft: it is speculative read access.
	var dest string
	found, err := s.Load(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	// No writes leaked through.
	keys, err := backend.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLogout_PurgesNamespace(t *testing.T) {
	s, backend, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "profile", map[string]int{"year": 2}))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated(ctx))

	// Data was purged, not merely hidden: a fresh login finds nothing.
	_, err = s.Login(ctx, "a@x.com")
	require.NoError(t, err)

	var dest map[string]int
	found, err := s.Load(ctx, "profile", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	raw, err := backend.Get(ctx, dataKey("a@x.com", "profile"))
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestLogout_WithoutSessionIsNoop(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Logout(context.Background()))
}

func TestCrossIdentityIsolation(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "x", 1))

	_, err = s.Login(ctx, "b@x.com")
	require.NoError(t, err)

	var dest int
	found, err := s.Load(ctx, "x", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCrossIdentityIsolation_SeparatorInIdentity(t *testing.T) {
	s, backend, _ := newTestStore(t)
	ctx := context.Background()

	// Identity "a" writes under key "b::x"; identity "a::b" writes under
	// key "x". Without escaping both would land on the same storage key.
	_, err := s.Login(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "b::x", "owned-by-a"))

	_, err = s.Login(ctx, "a::b")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "x", "owned-by-a-colon-b"))

	// Both records exist side by side.
	rawA, err := backend.Get(ctx, dataKey("a", "b::x"))
	require.NoError(t, err)
	require.NotNil(t, rawA)
	rawB, err := backend.Get(ctx, dataKey("a::b", "x"))
	require.NoError(t, err)
	require.NotNil(t, rawB)
	assert.NotEqual(t, rawA, rawB)

	// "a::b" only sees its own key, not "a"'s.
	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, keys)

	// Logging out "a::b" must not purge "a"'s record.
	require.NoError(t, s.Logout(ctx))
	rawA, err = backend.Get(ctx, dataKey("a", "b::x"))
	require.NoError(t, err)
	assert.NotNil(t, rawA)
}

func TestLogoutIdentity_PurgesNamedIdentityOnly(t *testing.T) {
	s, backend, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "notes", "a"))

	_, err = s.Login(ctx, "b@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "notes", "b"))

	require.NoError(t, s.LogoutIdentity(ctx, "a@x.com"))

	// a@x.com is gone: record and data.
	raw, err := backend.Get(ctx, sessionKey("a@x.com"))
	require.NoError(t, err)
	assert.Nil(t, raw)
	raw, err = backend.Get(ctx, dataKey("a@x.com", "notes"))
	require.NoError(t, err)
	assert.Nil(t, raw)

	// The current session (b@x.com) is untouched.
	cur, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "b@x.com", cur.Identity)

	var notes string
	found, err := s.Load(ctx, "notes", &notes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "b", notes)
}

func TestLogoutIdentity_CurrentIdentityClearsPointer(t *testing.T) {
	s, backend, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, s.LogoutIdentity(ctx, "a@x.com"))

	assert.False(t, s.IsAuthenticated(ctx))
	raw, err := backend.Get(ctx, currentPtrKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestLogoutIdentity_EmptyIdentity(t *testing.T) {
	s, _, _ := newTestStore(t)

	err := s.LogoutIdentity(context.Background(), "")
	require.ErrorIs(t, err, common.ErrEmptyIdentity)
}

func TestRemove_DeletesKey(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "k", "v"))
	require.NoError(t, s.Remove(ctx, "k"))

	var dest string
	found, err := s.Load(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an absent key stays a no-op.
	require.NoError(t, s.Remove(ctx, "k"))
}

func TestListKeys_OnlyOwnKeys(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "b@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "other", true))

	_, err = s.Login(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "profile", 1))
	require.NoError(t, s.Store(ctx, "settings", 2))

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"profile", "settings"}, keys)
}

func TestCleanupExpired_CountsAndPurges(t *testing.T) {
	s, backend, clock := newTestStore(t)
	ctx := context.Background()

	// Two sessions opened early, one late.
	_, err := s.Login(ctx, "old1@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "notes", "n1"))

	_, err = s.Login(ctx, "old2@x.com")
	require.NoError(t, err)

	clock.Advance(common.DefaultSessionTTL - time.Hour)
	_, err = s.Login(ctx, "fresh@x.com")
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "notes", "n3"))

	// Past the first two sessions' expiry, inside the third's.
	clock.Advance(2 * time.Hour)

	cleaned, err := s.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cleaned)

	// Purged identities behave as if never logged in.
	for _, identity := range []string{"old1@x.com", "old2@x.com"} {
		raw, err := backend.Get(ctx, sessionKey(identity))
		require.NoError(t, err)
		assert.Nil(t, raw)
	}
	raw, err := backend.Get(ctx, dataKey("old1@x.com", "notes"))
	require.NoError(t, err)
	assert.Nil(t, raw)

	// The fresh session is untouched.
	cur, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "fresh@x.com", cur.Identity)

	var notes string
	found, err := s.Load(ctx, "notes", &notes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "n3", notes)
}

func TestCleanupExpired_ClearsPointerOfExpiredCurrent(t *testing.T) {
	s, backend, clock := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)

	clock.Advance(common.DefaultSessionTTL + time.Minute)

	cleaned, err := s.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned)

	raw, err := backend.Get(ctx, currentPtrKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

// failingBackend simulates storage-layer failures (quota, I/O).
type failingBackend struct {
	err error
}

func (f *failingBackend) Get(ctx context.Context, key string) ([]byte, error) { return nil, f.err }
func (f *failingBackend) Set(ctx context.Context, key string, value []byte) error {
	return f.err
}
func (f *failingBackend) Delete(ctx context.Context, key string) error { return f.err }
func (f *failingBackend) Keys(ctx context.Context) ([]string, error)  { return nil, f.err }

func TestStorageFailuresPropagate(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := New(&failingBackend{err: boom}, testLogger(), 0, nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.ErrorIs(t, err, boom)

	_, err = s.CurrentSession(ctx)
	require.ErrorIs(t, err, boom)

	err = s.Logout(ctx)
	require.ErrorIs(t, err, boom)

	var dest string
	_, err = s.Load(ctx, "k", &dest)
	require.ErrorIs(t, err, boom)

	_, err = s.CleanupExpired(ctx)
	require.ErrorIs(t, err, boom)
}

func TestStore_WithCBORCodec_RoundTrip(t *testing.T) {
	backend := storage.NewMemoryBackend()
	s := New(backend, testLogger(), 0, CBORCodec{})
	ctx := context.Background()

	_, err := s.Login(ctx, "a@x.com")
	require.NoError(t, err)

	in := map[string]int{"credits": 120}
	require.NoError(t, s.Store(ctx, "transcript", in))

	var out map[string]int
	found, err := s.Load(ctx, "transcript", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}
