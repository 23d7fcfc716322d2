package session

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Rachitneema03/edufolio/internal/common"
	"github.com/Rachitneema03/edufolio/internal/logging"
	"github.com/Rachitneema03/edufolio/internal/storage"
)

// Storage key layout. Session records and namespaced data live in disjoint
// prefixes so identities can never collide with the current pointer or with
// each other's data.
const (
	currentPtrKey       = "session::current"
	sessionRecordPrefix = "session::id::"
	dataRecordPrefix    = "data::"
	keySeparator        = "::"
)

// escapeSegment makes an identity safe to embed between key separators.
// Identities are free-form strings and may themselves contain "::"; without
// escaping, dataKey("a", "b::x") and dataKey("a::b", "x") would collide.
func escapeSegment(s string) string {
	return url.QueryEscape(s)
}

func sessionKey(identity string) string {
	return sessionRecordPrefix + escapeSegment(identity)
}

func dataPrefix(identity string) string {
	return dataRecordPrefix + escapeSegment(identity) + keySeparator
}

func dataKey(identity, userKey string) string {
	return dataPrefix(identity) + userKey
}

// Store manages the lifecycle of the single current session and the
// per-identity data records layered on the injected backend. It is the sole
// mutator of the backend; callers never see raw storage keys.
//
// All operations are atomic from the caller's perspective: a single mutex
// covers every logical operation, so a concurrent read during logout sees
// either the pre-logout or the fully-cleared state.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	codec   Codec
	ttl     time.Duration
	log     logging.Logger

	// nowFn is a test seam for the clock.
	nowFn func() time.Time
}

// New constructs a Store over the given backend. A nil codec defaults to
// JSONCodec; a non-positive ttl defaults to common.DefaultSessionTTL.
func New(backend storage.Backend, log logging.Logger, ttl time.Duration, codec Codec) *Store {
	if codec == nil {
		codec = JSONCodec{}
	}
	if ttl <= 0 {
		ttl = common.DefaultSessionTTL
	}
	return &Store{
		backend: backend,
		codec:   codec,
		ttl:     ttl,
		log:     log,
		nowFn:   time.Now,
	}
}

// Login opens a new session for identity: generates a fresh token, persists
// the session record with CreatedAt = now and ExpiresAt = now + TTL, and
// points the current pointer at it. A prior session for the same identity is
// overwritten (last-login-wins); its data records become unreadable because
// their stored token no longer matches.
func (s *Store) Login(ctx context.Context, identity string) (*Session, error) {
	if identity == "" {
		return nil, common.ErrEmptyIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.nowFn()
	sess := &Session{
		Identity:  identity,
		Token:     token,
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(s.ttl).UnixMilli(),
	}

	if err := s.setRecord(ctx, sessionKey(identity), sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	ptr := &currentPointer{Identity: identity, Token: token}
	if err := s.setRecord(ctx, currentPtrKey, ptr); err != nil {
		return nil, fmt.Errorf("failed to persist current pointer: %w", err)
	}

	s.log.Info(ctx, "session opened", "identity", identity, "expiresAt", sess.ExpiresAt)
	return sess, nil
}

// CurrentSession returns the active session, or (nil, nil) when there is
// none or it has expired. Expired sessions are not deleted here; cleanup is
// explicit via Logout or CleanupExpired.
func (s *Store) CurrentSession(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked(ctx)
}

// IsValid reports whether sess is still within its TTL. Pure; the check is
// re-evaluated on every call.
func (s *Store) IsValid(sess *Session) bool {
	return sess != nil && !sess.expired(s.nowFn())
}

// IsAuthenticated reports whether a valid current session exists.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	cur, err := s.CurrentSession(ctx)
	return err == nil && cur != nil
}

// Logout tears down the current identity: every namespaced record is
// deleted, then the session record, then the pointer. The pointer is
// cleared last so an interrupted logout can never leave a cleared pointer
// with stale data still readable under the old token.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ptr, err := s.pointerLocked(ctx)
	if err != nil {
		return err
	}
	if ptr == nil {
		return nil
	}

	if err := s.purgeLocked(ctx, ptr.Identity); err != nil {
		return err
	}

	s.log.Info(ctx, "session closed", "identity", ptr.Identity)
	return nil
}

// LogoutIdentity tears down the named identity regardless of which session
// is current: its data records are deleted first, then its session record,
// and the pointer is cleared last when it names this identity. A different
// current session is left intact.
func (s *Store) LogoutIdentity(ctx context.Context, identity string) error {
	if identity == "" {
		return common.ErrEmptyIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.purgeLocked(ctx, identity); err != nil {
		return err
	}

	s.log.Info(ctx, "session closed", "identity", identity)
	return nil
}

// Store writes value under (current identity, key), tagged with the current
// token and write time. Requires a valid session; repeated calls with the
// same key overwrite.
func (s *Store) Store(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.currentLocked(ctx)
	if err != nil {
		return err
	}
	if cur == nil {
		return common.ErrNotAuthenticated
	}

	payload, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}

	rec := &namespacedRecord{
		Value:     payload,
		WrittenAt: s.nowFn().UnixMilli(),
		Token:     cur.Token,
	}
	if err := s.setRecord(ctx, dataKey(cur.Identity, key), rec); err != nil {
		return fmt.Errorf("failed to store key %q: %w", key, err)
	}
	return nil
}

// Load reads the record at (current identity, key) into dest and reports
// whether a value was found. Reads fail soft: no session, no record, or a
// record written under a different token all yield (false, nil). The token
// check fences off data from rotated or expired sessions; a stale record
// reads as a miss rather than risking cross-session leakage. Backend and
// decoding failures propagate.
func (s *Store) Load(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.currentLocked(ctx)
	if err != nil {
		return false, err
	}
	if cur == nil {
		return false, nil
	}

	raw, err := s.backend.Get(ctx, dataKey(cur.Identity, key))
	if err != nil {
		return false, fmt.Errorf("failed to load key %q: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}

	var rec namespacedRecord
	if err := s.codec.Unmarshal(raw, &rec); err != nil {
		return false, fmt.Errorf("failed to decode record for key %q: %w", key, err)
	}
	if rec.Token != cur.Token {
		// Written under an older session.
		return false, nil
	}

	if err := s.codec.Unmarshal(rec.Value, dest); err != nil {
		return false, fmt.Errorf("failed to decode value for key %q: %w", key, err)
	}
	return true, nil
}

// Remove deletes (current identity, key). Requires a valid session; removing
// an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.currentLocked(ctx)
	if err != nil {
		return err
	}
	if cur == nil {
		return common.ErrNotAuthenticated
	}

	if err := s.backend.Delete(ctx, dataKey(cur.Identity, key)); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

// ListKeys returns the user keys stored under the current identity, in
// unspecified order. Requires a valid session.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.currentLocked(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, common.ErrNotAuthenticated
	}

	all, err := s.backend.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	prefix := dataPrefix(cur.Identity)
	keys := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, strings.TrimPrefix(k, prefix))
		}
	}
	return keys, nil
}

// CleanupExpired scans every stored session record and tears down the ones
// past their TTL, purging their data records too. Records that fail to
// decode cannot be validated and are purged as well. Returns the number of
// sessions cleaned. Safe to call at any time.
func (s *Store) CleanupExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.backend.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list keys: %w", err)
	}

	now := s.nowFn()
	cleaned := 0
	for _, k := range all {
		if !strings.HasPrefix(k, sessionRecordPrefix) {
			continue
		}
		identity, err := url.QueryUnescape(strings.TrimPrefix(k, sessionRecordPrefix))
		if err != nil {
			// Not a key this store wrote; leave it alone.
			continue
		}

		raw, err := s.backend.Get(ctx, k)
		if err != nil {
			return cleaned, fmt.Errorf("failed to read session record %q: %w", identity, err)
		}
		if raw == nil {
			continue
		}

		var sess Session
		stale := false
		if err := s.codec.Unmarshal(raw, &sess); err != nil {
			s.log.Warn(ctx, "purging undecodable session record", "identity", identity)
			stale = true
		} else {
			stale = sess.expired(now)
		}
		if !stale {
			continue
		}

		if err := s.purgeLocked(ctx, identity); err != nil {
			return cleaned, err
		}
		cleaned++
	}

	if cleaned > 0 {
		s.log.Info(ctx, "expired sessions cleaned", "count", cleaned)
	}
	return cleaned, nil
}

// currentLocked resolves the pointer to a live session. Callers hold s.mu.
func (s *Store) currentLocked(ctx context.Context) (*Session, error) {
	ptr, err := s.pointerLocked(ctx)
	if err != nil {
		return nil, err
	}
	if ptr == nil {
		return nil, nil
	}

	raw, err := s.backend.Get(ctx, sessionKey(ptr.Identity))
	if err != nil {
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var sess Session
	if err := s.codec.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}
	if sess.expired(s.nowFn()) {
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) pointerLocked(ctx context.Context) (*currentPointer, error) {
	raw, err := s.backend.Get(ctx, currentPtrKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read current pointer: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var ptr currentPointer
	if err := s.codec.Unmarshal(raw, &ptr); err != nil {
		return nil, fmt.Errorf("failed to decode current pointer: %w", err)
	}
	return &ptr, nil
}

// purgeLocked removes every trace of identity: data records first, the
// session record next, and the pointer last (only when it still names this
// identity). Callers hold s.mu.
func (s *Store) purgeLocked(ctx context.Context, identity string) error {
	all, err := s.backend.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	prefix := dataPrefix(identity)
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			if err := s.backend.Delete(ctx, k); err != nil {
				return fmt.Errorf("failed to purge data record %q: %w", k, err)
			}
		}
	}

	if err := s.backend.Delete(ctx, sessionKey(identity)); err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}

	ptr, err := s.pointerLocked(ctx)
	if err != nil {
		return err
	}
	if ptr != nil && ptr.Identity == identity {
		if err := s.backend.Delete(ctx, currentPtrKey); err != nil {
			return fmt.Errorf("failed to clear current pointer: %w", err)
		}
	}
	return nil
}

func (s *Store) setRecord(ctx context.Context, key string, v any) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, key, data)
}
