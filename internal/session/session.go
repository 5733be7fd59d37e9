// Package session persists the signed-in user's profile across restarts.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alumniconnect/client-go/internal/kvstore"
)

// ErrNotSignedIn is returned when no profile is stored.
var ErrNotSignedIn = errors.New("no user session")

// Profile is the locally cached identity of the signed-in user.
type Profile struct {
	UserID    string   `json:"userId"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles,omitempty"`
	ChapterID string   `json:"chapterId,omitempty"`
}

// Manager reads and writes the session profile in the key-value store.
type Manager struct {
	kv     kvstore.Store
	logger *slog.Logger
}

// NewManager creates a session manager over the given storage.
func NewManager(kv kvstore.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{kv: kv, logger: logger}
}

// Save stores the profile.
func (m *Manager) Save(ctx context.Context, profile Profile) error {
	if profile.UserID == "" {
		return errors.New("profile requires a user id")
	}
	if err := kvstore.SetJSON(ctx, m.kv, kvstore.KeySessionUser, profile); err != nil {
		return err
	}
	m.logger.Info("session saved", "user", profile.UserID)
	return nil
}

// Load returns the stored profile, or ErrNotSignedIn when absent.
func (m *Manager) Load(ctx context.Context) (Profile, error) {
	profile, found, err := kvstore.GetJSON[Profile](ctx, m.kv, kvstore.KeySessionUser)
	if err != nil {
		return Profile{}, err
	}
	if !found {
		return Profile{}, ErrNotSignedIn
	}
	return profile, nil
}

// Clear signs the user out.
func (m *Manager) Clear(ctx context.Context) error {
	return m.kv.Delete(ctx, kvstore.KeySessionUser)
}

// HasRole reports whether the profile carries the named role.
func (p Profile) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
