package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	platformotel "github.com/louisbranch/taskflow/internal/platform/otel"
	"github.com/louisbranch/taskflow/internal/services/taskflow/storage"
	"github.com/louisbranch/taskflow/internal/services/taskflow/user"
	"github.com/louisbranch/taskflow/internal/telemetry"
)

// DefaultBcryptCost is the work factor used for new password hashes.
const DefaultBcryptCost = 8

var (
	// ErrUserNotFound reports a login email with no identity. It carries its
	// own message key so clients can tell it from a wrong password.
	ErrUserNotFound = apperrors.WithMetadata(apperrors.CodeNotFound, "user not found", map[string]string{"MessageKey": "errors.user_not_found"})
	// ErrInvalidCredentials reports a password that does not match the stored hash.
	ErrInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "invalid credentials")
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	UserID    int64
	Name      string
	ExpiresAt time.Time
}

// Service registers identities and authenticates them.
type Service struct {
	users      storage.UserStore
	tokens     *TokenIssuer
	audit      *telemetry.Emitter
	bcryptCost int
	clock      func() time.Time
	tracer     trace.Tracer
}

// Option customizes a Service.
type Option func(*Service)

// WithBcryptCost overrides the password hash work factor.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithAudit records auth outcomes through emitter.
func WithAudit(emitter *telemetry.Emitter) Option {
	return func(s *Service) {
		s.audit = emitter
	}
}

// WithClock overrides the registration timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService builds an auth service over users and tokens.
func NewService(users storage.UserStore, tokens *TokenIssuer, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token issuer is required")
	}
	svc := &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: DefaultBcryptCost,
		clock:      time.Now,
		tracer:     platformotel.Tracer("auth"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Tokens returns the issuer used to sign and verify sessions.
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// Register validates input, hashes the password and stores a new identity.
func (s *Service) Register(ctx context.Context, input user.RegistrationInput) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Register")
	defer span.End()

	normalized, err := user.NormalizeRegistration(input)
	if err != nil {
		s.emit(ctx, storage.AuditEvent{Type: storage.AuditRegisterFailed, Email: input.Email, Detail: string(apperrors.GetCode(err))})
		return 0, recordSpanError(span, err)
	}
	span.SetAttributes(attribute.String("user.email", normalized.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), s.bcryptCost)
	if err != nil {
		return 0, recordSpanError(span, apperrors.Wrap(apperrors.CodeStorageFailure, "hash password", err))
	}

	id, err := s.users.CreateUser(ctx, user.User{
		Name:         normalized.Name,
		Email:        normalized.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock().UTC(),
	})
	if err != nil {
		s.emit(ctx, storage.AuditEvent{Type: storage.AuditRegisterFailed, Email: normalized.Email, Detail: string(apperrors.GetCode(err))})
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return 0, recordSpanError(span, err)
		}
		return 0, recordSpanError(span, apperrors.Wrap(apperrors.CodeStorageFailure, "create user", err))
	}

	span.SetAttributes(attribute.String("user.id", strconv.FormatInt(id, 10)))
	s.emit(ctx, storage.AuditEvent{Type: storage.AuditUserRegistered, UserID: id, Email: normalized.Email})
	return id, nil
}

// Login checks email and password and issues a session token.
func (s *Service) Login(ctx context.Context, email string, password string) (Session, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Login")
	defer span.End()

	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		s.emit(ctx, storage.AuditEvent{Type: storage.AuditLoginFailed, Email: email, Detail: string(apperrors.CodeNotFound)})
		return Session{}, recordSpanError(span, ErrUserNotFound)
	}

	found, err := s.users.GetUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.emit(ctx, storage.AuditEvent{Type: storage.AuditLoginFailed, Email: normalized, Detail: string(apperrors.CodeNotFound)})
			return Session{}, recordSpanError(span, ErrUserNotFound)
		}
		return Session{}, recordSpanError(span, apperrors.Wrap(apperrors.CodeStorageFailure, "load user", err))
	}

	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		s.emit(ctx, storage.AuditEvent{Type: storage.AuditLoginFailed, UserID: found.ID, Email: normalized, Detail: string(apperrors.CodeInvalidCredentials)})
		return Session{}, recordSpanError(span, ErrInvalidCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(found)
	if err != nil {
		return Session{}, recordSpanError(span, apperrors.Wrap(apperrors.CodeStorageFailure, "issue token", err))
	}

	span.SetAttributes(attribute.String("user.id", strconv.FormatInt(found.ID, 10)))
	s.emit(ctx, storage.AuditEvent{Type: storage.AuditLoginSucceeded, UserID: found.ID, Email: normalized})
	return Session{Token: token, UserID: found.ID, Name: found.Name, ExpiresAt: expiresAt}, nil
}

// emit records evt. Audit failures never fail the request.
func (s *Service) emit(ctx context.Context, evt storage.AuditEvent) {
	if err := s.audit.Emit(ctx, evt); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

func recordSpanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(apperrors.GetCode(err)))
	return err
}
