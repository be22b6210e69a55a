// Package session keeps the client-side authentication state: the token
// pair and the signed-in profile, persisted under fixed keys in a single
// JSON file. Every read used to be an ad hoc storage lookup scattered
// through the views; AuthSession is the one owner now, and interested code
// subscribes to changes instead of polling.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys, fixed so an existing session file keeps working across
// releases.
type snapshotFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	DisplayName  string `json:"display_name,omitempty"`
	Email        string `json:"email,omitempty"`
}

// Snapshot is the immutable view handed to change subscribers.
type Snapshot struct {
	AccessToken  string
	RefreshToken string
	DisplayName  string
	Email        string
}

func (s Snapshot) Authenticated() bool {
	return s.AccessToken != ""
}

// AuthSession is safe for concurrent use. A zero path keeps the session in
// memory only.
type AuthSession struct {
	mu          sync.RWMutex
	path        string
	state       Snapshot
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// Load opens the session at path, reading any previously persisted state.
// A missing file starts an empty session; a corrupt one is an error so a
// caller can decide to discard it.
func Load(path string) (*AuthSession, error) {
	s := &AuthSession{
		path:        path,
		subscribers: make(map[int]func(Snapshot)),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var persisted snapshotFile
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}

	s.state = Snapshot(persisted)
	return s, nil
}

// Token returns the current access token, "" when signed out.
func (s *AuthSession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

func (s *AuthSession) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RefreshToken
}

// SetAccessToken stores a refreshed access token, keeping the refresh token
// as-is. This is the write-back half of the transport's 401 recovery.
func (s *AuthSession) SetAccessToken(token string) {
	s.update(func(st *Snapshot) { st.AccessToken = token })
}

// SetTokens stores a full token pair from a fresh login.
func (s *AuthSession) SetTokens(access, refresh string) {
	s.update(func(st *Snapshot) {
		st.AccessToken = access
		st.RefreshToken = refresh
	})
}

// SetProfile caches the display name and email shown in the header.
func (s *AuthSession) SetProfile(displayName, email string) {
	s.update(func(st *Snapshot) {
		st.DisplayName = displayName
		st.Email = email
	})
}

// Clear wipes tokens and profile, the logout / forced-logout path.
func (s *AuthSession) Clear() {
	s.update(func(st *Snapshot) { *st = Snapshot{} })
}

func (s *AuthSession) IsAuthenticated() bool {
	return s.Token() != ""
}

// Current returns a copy of the whole session state.
func (s *AuthSession) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnChange registers a subscriber called after every mutation with the new
// state. The returned function unsubscribes; call it when the consuming
// view goes away.
func (s *AuthSession) OnChange(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *AuthSession) update(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.state)
	state := s.state
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	// persistence is best effort; an unwritable session file must not
	// block the sign-in itself
	_ = s.persist(state)

	for _, fn := range subs {
		fn(state)
	}
}

func (s *AuthSession) persist(state Snapshot) error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(snapshotFile(state), "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o600)
}
