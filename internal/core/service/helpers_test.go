package service

import (
	"context"
	"strconv"
	"time"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User), byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	stored := cloneUser(u)
	if stored.ID == "" {
		r.nextID++
		stored.ID = "u-" + strconv.Itoa(r.nextID)
	}
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored
	return cloneUser(stored)
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	return r.add(user), nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string, mustChange bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.MustChangePassword = mustChange
	return nil
}

type sentMail struct {
	template string
	email    string
	payload  string
}

type stubMailer struct {
	sent []sentMail
	fail error
}

func (m *stubMailer) SendWelcome(_ context.Context, user *domain.User, tempPassword string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{template: "welcome", email: user.Email, payload: tempPassword})
	return nil
}

func (m *stubMailer) SendPasswordChanged(_ context.Context, user *domain.User) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{template: "password_changed", email: user.Email})
	return nil
}

func (m *stubMailer) SendResetCode(_ context.Context, user *domain.User, code string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{template: "reset_code", email: user.Email, payload: code})
	return nil
}

func (m *stubMailer) last() sentMail {
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

type stubResetStore struct {
	entries map[string]domain.ResetCode
	ttls    map[string]time.Duration
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{entries: make(map[string]domain.ResetCode), ttls: make(map[string]time.Duration)}
}

func (s *stubResetStore) Put(_ context.Context, email string, entry domain.ResetCode, ttl time.Duration) error {
	s.entries[email] = entry
	s.ttls[email] = ttl
	return nil
}

func (s *stubResetStore) Get(_ context.Context, email string) (*domain.ResetCode, error) {
	entry, ok := s.entries[email]
	if !ok {
		return nil, domain.ErrResetCodeNotFound
	}
	return &entry, nil
}

func (s *stubResetStore) Delete(_ context.Context, email string) error {
	delete(s.entries, email)
	delete(s.ttls, email)
	return nil
}
