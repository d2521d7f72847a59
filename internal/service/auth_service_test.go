package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/internal/domain/mocks"
	"github.com/mmjournal/mmjournal/pkg/cache"
	"github.com/mmjournal/mmjournal/pkg/logger"
	"github.com/mmjournal/mmjournal/pkg/ratelimiter"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func setupAuthTest(t *testing.T) (*mocks.MockUserRepository, *mocks.MockPasswordHasher, *AuthService) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockHasher := mocks.NewMockPasswordHasher(ctrl)

	limiter := ratelimiter.NewRateLimiter()
	limiter.SetPolicy(LoginNamespace, 3, time.Minute)
	t.Cleanup(limiter.Stop)

	svc, err := NewAuthService(AuthServiceConfig{
		Repository:  mockRepo,
		Hasher:      mockHasher,
		Secret:      testSecret,
		SessionTTL:  time.Hour,
		RateLimiter: limiter,
		Logger:      logger.NewMockLogger(t),
	})
	require.NoError(t, err)

	return mockRepo, mockHasher, svc
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(AuthServiceConfig{Logger: logger.NewMockLogger(t)})
	require.Error(t, err)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo, mockHasher, svc := setupAuthTest(t)

		mockHasher.EXPECT().Hash("secret").Return("hashed", nil)
		mockRepo.EXPECT().CreateUser(gomock.Any(), "player@example.com", "hashed").Return(int64(2), nil)

		identity, err := svc.Register(ctx, domain.RegisterInput{
			Email:           "  player@example.com ",
			Password:        "secret",
			ConfirmPassword: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), identity.UserID)
		assert.Equal(t, "player@example.com", identity.Email)
	})

	t.Run("passwords differ", func(t *testing.T) {
		_, _, svc := setupAuthTest(t)

		_, err := svc.Register(ctx, domain.RegisterInput{
			Email:           "player@example.com",
			Password:        "secret",
			ConfirmPassword: "secrat",
		})
		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
		assert.Equal(t, "Passwords didn't match", err.Error())
	})

	t.Run("missing email", func(t *testing.T) {
		_, _, svc := setupAuthTest(t)

		_, err := svc.Register(ctx, domain.RegisterInput{Password: "secret", ConfirmPassword: "secret"})
		assert.IsType(t, domain.ValidationError{}, err)
	})

	t.Run("email taken", func(t *testing.T) {
		mockRepo, mockHasher, svc := setupAuthTest(t)

		mockHasher.EXPECT().Hash("secret").Return("hashed", nil)
		mockRepo.EXPECT().CreateUser(gomock.Any(), "player@example.com", "hashed").
			Return(int64(0), &domain.ErrUserExists{Email: "player@example.com"})

		_, err := svc.Register(ctx, domain.RegisterInput{
			Email:           "player@example.com",
			Password:        "secret",
			ConfirmPassword: "secret",
		})
		var exists *domain.ErrUserExists
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "Email already registered", err.Error())
	})

	t.Run("hash failure", func(t *testing.T) {
		_, mockHasher, svc := setupAuthTest(t)

		mockHasher.EXPECT().Hash("secret").Return("", errors.New("too long"))

		_, err := svc.Register(ctx, domain.RegisterInput{
			Email:           "player@example.com",
			Password:        "secret",
			ConfirmPassword: "secret",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to hash password")
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 4, Email: "player@example.com", Password: "hashed"}

	t.Run("success issues a resolvable token", func(t *testing.T) {
		mockRepo, mockHasher, svc := setupAuthTest(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").Return(user, nil).Times(2)
		mockHasher.EXPECT().Verify("secret", "hashed").Return(true)

		result, err := svc.Authenticate(ctx, "player@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, int64(4), result.Identity.UserID)
		assert.NotEmpty(t, result.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)

		identity, err := svc.ResolveSession(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.Identity{UserID: 4, Email: "player@example.com"}, *identity)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo, _, svc := setupAuthTest(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, &domain.ErrUserNotFound{Message: "user not found"})

		_, err := svc.Authenticate(ctx, "nobody@example.com", "secret")
		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo, mockHasher, svc := setupAuthTest(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").Return(user, nil)
		mockHasher.EXPECT().Verify("wrong", "hashed").Return(false)

		_, err := svc.Authenticate(ctx, "player@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrLoginFailed)
		assert.Equal(t, "Login Failed!", err.Error())
	})

	t.Run("repository error is returned", func(t *testing.T) {
		mockRepo, _, svc := setupAuthTest(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").Return(nil, errors.New("db down"))

		_, err := svc.Authenticate(ctx, "player@example.com", "secret")
		require.Error(t, err)
		assert.Equal(t, "db down", err.Error())
	})

	t.Run("rate limited after repeated failures", func(t *testing.T) {
		mockRepo, mockHasher, svc := setupAuthTest(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").Return(user, nil).Times(3)
		mockHasher.EXPECT().Verify("wrong", "hashed").Return(false).Times(3)

		for i := 0; i < 3; i++ {
			_, err := svc.Authenticate(ctx, "player@example.com", "wrong")
			require.ErrorIs(t, err, domain.ErrLoginFailed)
		}

		_, err := svc.Authenticate(ctx, "player@example.com", "secret")
		assert.ErrorIs(t, err, domain.ErrTooManyAttempts)

		var limited *domain.ErrRateLimited
		require.ErrorAs(t, err, &limited)
		assert.Greater(t, limited.RetryAfter, time.Duration(0))
		assert.LessOrEqual(t, limited.RetryAfter, time.Minute)
	})

	t.Run("success resets the attempt budget", func(t *testing.T) {
		mockRepo, mockHasher, svc := setupAuthTest(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").Return(user, nil).AnyTimes()
		mockHasher.EXPECT().Verify("wrong", "hashed").Return(false).AnyTimes()
		mockHasher.EXPECT().Verify("secret", "hashed").Return(true).AnyTimes()

		for i := 0; i < 2; i++ {
			_, err := svc.Authenticate(ctx, "player@example.com", "wrong")
			require.ErrorIs(t, err, domain.ErrLoginFailed)
		}
		_, err := svc.Authenticate(ctx, "player@example.com", "secret")
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			_, err := svc.Authenticate(ctx, "player@example.com", "wrong")
			require.ErrorIs(t, err, domain.ErrLoginFailed)
		}
	})
}

func TestAuthService_ResolveSession(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 4, Email: "player@example.com", Password: "hashed"}

	sign := func(t *testing.T, claims SessionClaims, method jwt.SigningMethod, key interface{}) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	validClaims := func() SessionClaims {
		return SessionClaims{
			UserID: 4,
			Email:  "player@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	t.Run("garbage token", func(t *testing.T) {
		_, _, svc := setupAuthTest(t)

		_, err := svc.ResolveSession(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, _, svc := setupAuthTest(t)

		token := sign(t, validClaims(), jwt.SigningMethodHS256, []byte("another-secret"))
		_, err := svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unsigned token", func(t *testing.T) {
		_, _, svc := setupAuthTest(t)

		token := sign(t, validClaims(), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)
		_, err := svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		_, _, svc := setupAuthTest(t)

		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := sign(t, claims, jwt.SigningMethodHS256, testSecret)

		_, err := svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("user deleted", func(t *testing.T) {
		mockRepo, _, svc := setupAuthTest(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").
			Return(nil, &domain.ErrUserNotFound{Message: "user not found"})

		token := sign(t, validClaims(), jwt.SigningMethodHS256, testSecret)
		_, err := svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("email reused by another account", func(t *testing.T) {
		mockRepo, _, svc := setupAuthTest(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").
			Return(&domain.User{ID: 9, Email: "player@example.com"}, nil)

		token := sign(t, validClaims(), jwt.SigningMethodHS256, testSecret)
		_, err := svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("cached lookups hit the repository once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		users := cache.New[*domain.User](time.Minute, time.Minute)
		t.Cleanup(users.Stop)

		svc, err := NewAuthService(AuthServiceConfig{
			Repository: mockRepo,
			Hasher:     mocks.NewMockPasswordHasher(ctrl),
			Secret:     testSecret,
			UserCache:  users,
			Logger:     logger.NewMockLogger(t),
		})
		require.NoError(t, err)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").Return(user, nil).Times(1)

		token := sign(t, validClaims(), jwt.SigningMethodHS256, testSecret)
		for i := 0; i < 3; i++ {
			identity, err := svc.ResolveSession(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, int64(4), identity.UserID)
		}
	})

	t.Run("shared cache load ignores the caller's cancellation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		users := cache.New[*domain.User](time.Minute, time.Minute)
		t.Cleanup(users.Stop)

		svc, err := NewAuthService(AuthServiceConfig{
			Repository: mockRepo,
			Hasher:     mocks.NewMockPasswordHasher(ctrl),
			Secret:     testSecret,
			UserCache:  users,
			Logger:     logger.NewMockLogger(t),
		})
		require.NoError(t, err)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").
			DoAndReturn(func(ctx context.Context, email string) (*domain.User, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return user, nil
			})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		identity, err := svc.ResolveSession(cancelled, sign(t, validClaims(), jwt.SigningMethodHS256, testSecret))
		require.NoError(t, err)
		assert.Equal(t, int64(4), identity.UserID)
	})
}

func TestAuthService_ResolveBasic(t *testing.T) {
	ctx := context.Background()
	mockRepo, mockHasher, svc := setupAuthTest(t)

	mockRepo.EXPECT().GetUserByEmail(gomock.Any(), "player@example.com").
		Return(&domain.User{ID: 4, Email: "player@example.com", Password: "hashed"}, nil).Times(2)
	mockHasher.EXPECT().Verify("secret", "hashed").Return(true)
	mockHasher.EXPECT().Verify("wrong", "hashed").Return(false)

	identity, err := svc.ResolveBasic(ctx, "player@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(4), identity.UserID)

	_, err = svc.ResolveBasic(ctx, "player@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrLoginFailed)
}
