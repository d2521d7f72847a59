package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/cache"
	"github.com/mmjournal/mmjournal/pkg/logger"
	"github.com/mmjournal/mmjournal/pkg/ratelimiter"
	"github.com/mmjournal/mmjournal/pkg/tracing"
)

// LoginNamespace is the rate limiter namespace for password checks
const LoginNamespace = "login"

// SessionClaims is the payload of the session cookie
type SessionClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	repo        domain.UserRepository
	hasher      domain.PasswordHasher
	secret      []byte
	sessionTTL  time.Duration
	rateLimiter *ratelimiter.RateLimiter
	users       *cache.TTLCache[*domain.User]
	logger      logger.Logger
	tracer      tracing.Tracer
	now         func() time.Time
}

type AuthServiceConfig struct {
	Repository  domain.UserRepository
	Hasher      domain.PasswordHasher
	Secret      []byte
	SessionTTL  time.Duration
	RateLimiter *ratelimiter.RateLimiter
	// UserCache is optional, lookups go to the repository when nil
	UserCache *cache.TTLCache[*domain.User]
	Logger    logger.Logger
	Tracer    tracing.Tracer
}

func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.GetTracer()
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &AuthService{
		repo:        cfg.Repository,
		hasher:      cfg.Hasher,
		secret:      cfg.Secret,
		sessionTTL:  ttl,
		rateLimiter: cfg.RateLimiter,
		users:       cfg.UserCache,
		logger:      cfg.Logger,
		tracer:      tracer,
		now:         time.Now,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.Identity, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "AuthService", "Register")
	defer span.End()

	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.repo.CreateUser(ctx, email, hash)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		var exists *domain.ErrUserExists
		if errors.As(err, &exists) {
			s.logger.WithField("email", email).Info("Registration with existing email")
			return nil, err
		}
		s.logger.WithField("email", email).WithField("error", err.Error()).Error("Failed to create user")
		return nil, err
	}

	s.tracer.AddAttribute(ctx, "user.id", id)
	s.logger.WithField("user_id", id).Info("User registered")
	return &domain.Identity{UserID: id, Email: email}, nil
}

// Authenticate checks credentials and issues a session token
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "AuthService", "Authenticate")
	defer span.End()

	email = strings.TrimSpace(email)
	s.tracer.AddAttribute(ctx, "user.email", email)

	identity, err := s.verify(ctx, email, password)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return nil, err
	}

	token, expiresAt, err := s.issueToken(identity)
	if err != nil {
		s.logger.WithField("user_id", identity.UserID).WithField("error", err.Error()).Error("Failed to sign session token")
		return nil, err
	}

	s.logger.WithField("user_id", identity.UserID).Info("User logged in")
	return &domain.AuthResult{Identity: *identity, Token: token, ExpiresAt: expiresAt}, nil
}

// ResolveBasic authenticates per-request credentials without issuing a token
func (s *AuthService) ResolveBasic(ctx context.Context, email, password string) (*domain.Identity, error) {
	return s.verify(ctx, strings.TrimSpace(email), password)
}

// verify is the lookup and hash check shared by the cookie login and basic credentials
func (s *AuthService) verify(ctx context.Context, email, password string) (*domain.Identity, error) {
	if s.rateLimiter != nil && !s.rateLimiter.Allow(LoginNamespace, email) {
		s.logger.WithField("email", email).Warn("Login rate limit exceeded")
		s.tracer.AddAttribute(ctx, "error", "rate_limit_exceeded")
		return nil, &domain.ErrRateLimited{RetryAfter: s.rateLimiter.RetryAfter(LoginNamespace, email)}
	}

	user, err := s.lookup(ctx, email)
	if err != nil {
		var notFound *domain.ErrUserNotFound
		if errors.As(err, &notFound) {
			return nil, domain.ErrNotRegistered
		}
		s.logger.WithField("email", email).WithField("error", err.Error()).Error("Failed to look up user")
		return nil, err
	}

	if !s.hasher.Verify(password, user.Password) {
		s.logger.WithField("user_id", user.ID).Debug("Password mismatch")
		return nil, domain.ErrLoginFailed
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Reset(LoginNamespace, email)
	}
	return &domain.Identity{UserID: user.ID, Email: user.Email}, nil
}

// ResolveSession verifies a session token and checks the user still exists
func (s *AuthService) ResolveSession(ctx context.Context, tokenString string) (*domain.Identity, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		s.logger.WithField("error", err.Error()).Debug("Invalid session token")
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid || claims.Email == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.lookup(ctx, claims.Email)
	if err != nil {
		var notFound *domain.ErrUserNotFound
		if errors.As(err, &notFound) {
			return nil, domain.ErrUnauthorized
		}
		s.logger.WithField("email", claims.Email).WithField("error", err.Error()).Error("Failed to look up session user")
		return nil, err
	}
	if user.ID != claims.UserID {
		s.logger.WithField("user_id", claims.UserID).Warn("Session user id mismatch")
		return nil, domain.ErrUnauthorized
	}

	return &domain.Identity{UserID: user.ID, Email: user.Email}, nil
}

// lookup goes through the user cache. Concurrent misses share one load, which
// is detached from the first caller's cancellation so its disconnect does not
// fail the other waiters.
func (s *AuthService) lookup(ctx context.Context, email string) (*domain.User, error) {
	if s.users == nil {
		return s.repo.GetUserByEmail(ctx, email)
	}
	loadCtx := context.WithoutCancel(ctx)
	return s.users.GetOrLoad(email, func() (*domain.User, error) {
		return s.repo.GetUserByEmail(loadCtx, email)
	})
}

func (s *AuthService) issueToken(identity *domain.Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.sessionTTL)

	claims := SessionClaims{
		UserID: identity.UserID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   fmt.Sprintf("%d", identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
