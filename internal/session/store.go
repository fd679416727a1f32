package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/domain/repository"
)

// Keys of the session inside a client namespace.
const (
	KeyUser            = "user"
	KeyToken           = "token"
	KeyRefreshToken    = "refreshToken"
	KeyIsAuthenticated = "isAuthenticated"
)

var sessionKeys = []string{KeyUser, KeyToken, KeyRefreshToken, KeyIsAuthenticated}

// ErrMalformed marks persisted session data that could not be trusted.
var ErrMalformed = errors.New("malformed persisted session")

// Session is the in-memory identity of one client.
type Session struct {
	User            *entity.User
	IsAuthenticated bool
	IsLoading       bool
	Token           string
	RefreshToken    string
}

// Store owns the Session of one client and mirrors it into persisted storage.
// A Store starts in the loading state until Restore has run.
type Store struct {
	storage  repository.Storage
	clientID string
	prefix   string

	mu      sync.Mutex
	sess    Session
	loading int
}

func NewStore(storage repository.Storage, clientID string) *Store {
	return &Store{
		storage:  storage,
		clientID: clientID,
		prefix:   Namespace(clientID),
		sess:     Session{IsLoading: true},
		loading:  1,
	}
}

// Namespace is the storage key prefix of a client.
func Namespace(clientID string) string {
	return "client:" + clientID + ":"
}

func (s *Store) ClientID() string { return s.clientID }

func (s *Store) key(k string) string { return s.prefix + k }

// Snapshot returns a copy of the current Session.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.sess
	out.User = s.sess.User.Clone()
	return out
}

// BeginLoading raises the loading flag; the returned func lowers it again.
func (s *Store) BeginLoading() (done func()) {
	s.mu.Lock()
	s.loading++
	s.sess.IsLoading = true
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.loading--
			if s.loading <= 0 {
				s.loading = 0
				s.sess.IsLoading = false
			}
			s.mu.Unlock()
		})
	}
}

// Restore rehydrates the Session from storage. Missing keys leave it empty;
// partial or unparseable data is wiped so no half-populated session survives.
// The restored token is trusted as-is.
func (s *Store) Restore(ctx context.Context) error {
	defer s.finishRestore()

	vals := make(map[string]string, len(sessionKeys))
	for _, k := range sessionKeys {
		v, err := s.storage.Get(ctx, s.key(k))
		if errors.Is(err, repository.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			s.reset()
			return fmt.Errorf("restore session: %w", err)
		}
		vals[k] = v
	}
	if len(vals) == 0 {
		s.reset()
		return nil
	}

	sess, err := parse(vals)
	if err != nil {
		s.reset()
		if cErr := s.ClearPersisted(ctx); cErr != nil {
			return errors.Join(err, cErr)
		}
		return err
	}

	s.mu.Lock()
	sess.IsLoading = s.sess.IsLoading
	s.sess = sess
	s.mu.Unlock()
	return nil
}

func (s *Store) finishRestore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading > 0 {
		s.loading--
	}
	s.sess.IsLoading = s.loading > 0
}

func parse(vals map[string]string) (Session, error) {
	if vals[KeyIsAuthenticated] != "true" || vals[KeyToken] == "" || vals[KeyUser] == "" {
		return Session{}, ErrMalformed
	}
	var u entity.User
	if err := json.Unmarshal([]byte(vals[KeyUser]), &u); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if u.Email == "" || !u.Role.Valid() {
		return Session{}, ErrMalformed
	}
	return Session{
		User:            &u,
		IsAuthenticated: true,
		Token:           vals[KeyToken],
		RefreshToken:    vals[KeyRefreshToken],
	}, nil
}

// Persist writes user and tokens as one unit and only then updates memory.
// An empty refreshToken keeps the one already held.
func (s *Store) Persist(ctx context.Context, u *entity.User, token, refreshToken string) error {
	if u == nil || token == "" {
		return ErrMalformed
	}
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	entries := map[string]string{
		s.key(KeyUser):            string(b),
		s.key(KeyToken):           token,
		s.key(KeyIsAuthenticated): "true",
	}
	if refreshToken != "" {
		entries[s.key(KeyRefreshToken)] = refreshToken
	}
	if err := s.storage.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.User = u.Clone()
	s.sess.IsAuthenticated = true
	s.sess.Token = token
	if refreshToken != "" {
		s.sess.RefreshToken = refreshToken
	}
	return nil
}

// ClearPersisted removes every session key of the client.
func (s *Store) ClearPersisted(ctx context.Context) error {
	keys := make([]string, 0, len(sessionKeys))
	for _, k := range sessionKeys {
		keys = append(keys, s.key(k))
	}
	return s.storage.Delete(ctx, keys...)
}

// Clear empties memory unconditionally, then removes the persisted copy.
func (s *Store) Clear(ctx context.Context) error {
	s.reset()
	return s.ClearPersisted(ctx)
}

// PersistedRefreshToken reads the refresh token straight from storage.
func (s *Store) PersistedRefreshToken(ctx context.Context) (string, error) {
	return s.storage.Get(ctx, s.key(KeyRefreshToken))
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = Session{IsLoading: s.sess.IsLoading}
}
