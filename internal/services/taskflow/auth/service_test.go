package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	"github.com/louisbranch/taskflow/internal/services/taskflow/storage"
	"github.com/louisbranch/taskflow/internal/services/taskflow/user"
	"github.com/louisbranch/taskflow/internal/telemetry"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]user.User
	nextID  int64
	err     error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]user.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, u user.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if _, ok := s.byEmail[u.Email]; ok {
		return 0, storage.ErrDuplicateEmail
	}
	s.nextID++
	u.ID = s.nextID
	s.byEmail[u.Email] = u
	return u.ID, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return user.User{}, s.err
	}
	u, ok := s.byEmail[email]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

type fakeAuditStore struct {
	events []storage.AuditEvent
}

func (s *fakeAuditStore) AppendAuditEvent(_ context.Context, evt storage.AuditEvent) error {
	s.events = append(s.events, evt)
	return nil
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, newTestIssuer(t, nil)); err == nil {
		t.Fatal("expected missing store error")
	}
	if _, err := NewService(newFakeUserStore(), nil); err == nil {
		t.Fatal("expected missing issuer error")
	}
}

func TestRegisterStoresSaltedHash(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestService(t, users, nil)

	id, err := svc.Register(context.Background(), user.RegistrationInput{Name: " Ana ", Email: "Ana@X.com", Password: "123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
	stored := users.byEmail["ana@x.com"]
	if stored.Name != "Ana" {
		t.Fatalf("name = %q, want %q", stored.Name, "Ana")
	}
	if stored.PasswordHash == "123" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	audit := &fakeAuditStore{}
	svc := newTestService(t, newFakeUserStore(), audit)

	if _, err := svc.Register(context.Background(), user.RegistrationInput{Name: "Ana", Email: "ana@x.com", Password: "123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(context.Background(), user.RegistrationInput{Name: "Ana 2", Email: "ana@x.com", Password: "456"})
	if !apperrors.IsCode(err, apperrors.CodeDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	if len(audit.events) != 2 {
		t.Fatalf("audit events = %d, want 2", len(audit.events))
	}
	if audit.events[1].Type != storage.AuditRegisterFailed {
		t.Fatalf("audit type = %q, want %q", audit.events[1].Type, storage.AuditRegisterFailed)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t, newFakeUserStore(), nil)

	inputs := []user.RegistrationInput{
		{Name: "", Email: "ana@x.com", Password: "123"},
		{Name: "Ana", Email: "not-an-email", Password: "123"},
		{Name: "Ana", Email: "ana@x.com", Password: ""},
	}
	for _, input := range inputs {
		if _, err := svc.Register(context.Background(), input); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
			t.Fatalf("register(%+v): expected invalid input, got %v", input, err)
		}
	}
}

func TestRegisterWrapsStorageFailure(t *testing.T) {
	users := newFakeUserStore()
	users.err = errors.New("disk full")
	svc := newTestService(t, users, nil)

	_, err := svc.Register(context.Background(), user.RegistrationInput{Name: "Ana", Email: "ana@x.com", Password: "123"})
	if !apperrors.IsCode(err, apperrors.CodeStorageFailure) {
		t.Fatalf("expected storage failure, got %v", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	audit := &fakeAuditStore{}
	svc := newTestService(t, newFakeUserStore(), audit)
	id, err := svc.Register(context.Background(), user.RegistrationInput{Name: "Ana", Email: "ana@x.com", Password: "123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	session, err := svc.Login(context.Background(), "ANA@x.com", "123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Name != "Ana" || session.UserID != id {
		t.Fatalf("unexpected session: %+v", session)
	}
	subject, err := svc.Tokens().Verify(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject.UserID != id {
		t.Fatalf("subject id = %d, want %d", subject.UserID, id)
	}
	last := audit.events[len(audit.events)-1]
	if last.Type != storage.AuditLoginSucceeded || last.UserID != id {
		t.Fatalf("unexpected audit event: %+v", last)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, newFakeUserStore(), nil)
	if _, err := svc.Register(context.Background(), user.RegistrationInput{Name: "Ana", Email: "ana@x.com", Password: "123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(context.Background(), "ana@x.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	audit := &fakeAuditStore{}
	svc := newTestService(t, newFakeUserStore(), audit)

	_, err := svc.Login(context.Background(), "ghost@x.com", "123")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(audit.events) != 1 || audit.events[0].Type != storage.AuditLoginFailed {
		t.Fatalf("unexpected audit events: %+v", audit.events)
	}
}

func newTestService(t *testing.T, users storage.UserStore, audit storage.AuditStore) *Service {
	t.Helper()

	opts := []Option{
		WithBcryptCost(bcrypt.MinCost),
		WithClock(func() time.Time { return time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC) }),
	}
	if audit != nil {
		opts = append(opts, WithAudit(telemetry.NewEmitter(audit)))
	}
	svc, err := NewService(users, newTestIssuer(t, nil), opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}
