package store

import (
	"context"
	"sync"
	"time"

	"github.com/awais7012/lms-2/internal/models"
)

// MemoryStore is an in-memory Store for development and tests.
// Single instance only; nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*models.User // keyed by ID
	profiles map[string][]*models.Profile
	resets   []*models.PasswordReset
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		profiles: make(map[string][]*models.Profile),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u.PasswordHash = passwordHash
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrUserNotFound
}

// SetUserActive toggles the active flag directly. Test helper; the HTTP
// surface has no activation endpoint.
func (s *MemoryStore) SetUserActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		u.IsActive = active
	}
}

func (s *MemoryStore) CreateProfile(ctx context.Context, role string, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *profile
	s.profiles[role] = append(s.profiles[role], &cp)
	return nil
}

// ProfileCount returns the number of profiles stored for a role
func (s *MemoryStore) ProfileCount(role string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles[role])
}

func (s *MemoryStore) CreateReset(ctx context.Context, record *models.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.resets = append(s.resets, &cp)
	return nil
}

func (s *MemoryStore) DeleteResetsByEmail(ctx context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []*models.PasswordReset
	var deleted int64
	for _, r := range s.resets {
		if r.Email == email {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.resets = kept
	return deleted, nil
}

func (s *MemoryStore) VerifyReset(ctx context.Context, email, otp string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.resets {
		if r.Email == email && r.OTP == otp && r.ExpiresAt.After(now) {
			r.Verified = true
			return nil
		}
	}
	return ErrResetNotFound
}

func (s *MemoryStore) GetVerifiedReset(
	ctx context.Context,
	email string,
	now time.Time,
) (*models.PasswordReset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.resets {
		if r.Email == email && r.Verified && r.ExpiresAt.After(now) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrResetNotFound
}

func (s *MemoryStore) DeleteReset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.resets {
		if r.ID == id {
			s.resets = append(s.resets[:i], s.resets[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close(ctx context.Context) error { return nil }
