package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsers map[uint]*models.User

func (f fakeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	if user, ok := f[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (m *memoryRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = until
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok, nil
}

type fakeAccounts struct {
	users  map[string]*models.User
	admins map[uint]bool
}

func (f *fakeAccounts) Authenticate(_ context.Context, name, password string) (*models.User, error) {
	user, ok := f.users[name]
	if !ok || !CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (f *fakeAccounts) AuthenticateAdmin(ctx context.Context, name, password string) (*models.User, error) {
	user, err := f.Authenticate(ctx, name, password)
	if err != nil {
		return nil, err
	}
	if !f.admins[user.ID] {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func testConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret:  "test-signing-key",
		TokenTTL:   time.Hour,
		CookieName: "access_token",
		Issuer:     "powercup-test",
	}
}

func newTestService(t *testing.T) (*AuthService, *memoryRevocations) {
	store := &memoryRevocations{revoked: map[string]time.Time{}}
	service, err := NewAuthService(testConfig(), store)
	require.NoError(t, err)
	return service, store
}

func TestAuthConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, testConfig().ValidateConfig())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		config := testConfig()
		config.JWTSecret = ""
		err := config.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("non positive ttl", func(t *testing.T) {
		config := testConfig()
		config.TokenTTL = 0
		assert.Error(t, config.ValidateConfig())
	})

	t.Run("missing cookie name", func(t *testing.T) {
		config := testConfig()
		config.CookieName = ""
		assert.Error(t, config.ValidateConfig())
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))

	t.Run("passwords beyond the bcrypt input limit", func(t *testing.T) {
		long := strings.Repeat("a", 100)
		hash, err := HashPassword(long)
		require.NoError(t, err)
		assert.True(t, CheckPassword(hash, long))
		assert.False(t, CheckPassword(hash, strings.Repeat("a", 99)))

		// only the first 72 bytes would reach bcrypt without the digest
		assert.False(t, CheckPassword(hash, strings.Repeat("a", 72)))

		multibyte := strings.Repeat("пароль", 20)
		hash, err = HashPassword(multibyte)
		require.NoError(t, err)
		assert.True(t, CheckPassword(hash, multibyte))
	})
}

func TestJWTOperations(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	t.Run("round trip keeps user id and admin flag", func(t *testing.T) {
		token, err := service.GenerateJWT(42, true)
		require.NoError(t, err)

		claims, err := service.ValidateJWT(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.True(t, claims.IsAdmin)
		assert.NotEmpty(t, claims.ID)
		assert.Equal(t, "42", claims.Subject)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ValidateJWT(ctx, "invalid-token")
		assert.Error(t, err)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := testConfig()
		other.JWTSecret = "another-key"
		otherService, err := NewAuthService(other, nil)
		require.NoError(t, err)

		token, err := otherService.GenerateJWT(1, false)
		require.NoError(t, err)

		_, err = service.ValidateJWT(ctx, token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &AuthClaims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
		require.NoError(t, err)

		_, err = service.ValidateJWT(ctx, token)
		assert.Error(t, err)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &AuthClaims{UserID: 1}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateJWT(ctx, token)
		assert.Error(t, err)
	})
}

func TestRevocation(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	token, err := service.GenerateJWT(7, false)
	require.NoError(t, err)
	claims, err := service.ValidateJWT(ctx, token)
	require.NoError(t, err)

	require.NoError(t, service.Revoke(ctx, claims))
	assert.Contains(t, store.revoked, claims.ID)

	_, err = service.ValidateJWT(ctx, token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "revoked")
}

func TestNoopRevocationStore(t *testing.T) {
	store := NoopRevocationStore{}
	assert.NoError(t, store.Revoke(context.Background(), "id", time.Now().Add(time.Hour)))
	revoked, err := store.IsRevoked(context.Background(), "id")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service, _ := newTestService(t)
	users := fakeUsers{1: {BaseModel: models.BaseModel{ID: 1}, Name: "alice"}}
	middleware := NewAuthMiddleware(service, users)

	router := gin.New()
	whoAmI := func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		claims, _ := currentClaims(c)
		c.JSON(http.StatusOK, gin.H{"user": user.Name, "admin": claims.IsAdmin})
	}
	router.GET("/user", middleware.RequireUser(), whoAmI)
	router.GET("/optional", middleware.OptionalUser(), whoAmI)
	router.GET("/admin", middleware.RequireAdmin(), whoAmI)

	cookieFor := func(userID uint, admin bool) *http.Cookie {
		token, err := service.GenerateJWT(userID, admin)
		require.NoError(t, err)
		return &http.Cookie{Name: "access_token", Value: token}
	}
	do := func(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("RequireUser without cookie", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/user", nil).Code)
	})

	t.Run("RequireUser with invalid token", func(t *testing.T) {
		w := do("/user", &http.Cookie{Name: "access_token", Value: "garbage"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("RequireUser with valid token", func(t *testing.T) {
		w := do("/user", cookieFor(1, false))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
		assert.Contains(t, w.Body.String(), `"admin":false`)
	})

	t.Run("RequireUser for a deleted user", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/user", cookieFor(99, false)).Code)
	})

	t.Run("OptionalUser never rejects", func(t *testing.T) {
		w := do("/optional", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user":null`)

		w = do("/optional", cookieFor(99, false))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user":null`)

		w = do("/optional", cookieFor(1, false))
		assert.Contains(t, w.Body.String(), "alice")
	})

	t.Run("RequireAdmin without cookie is 401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/admin", nil).Code)
	})

	t.Run("RequireAdmin with user token is 403", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do("/admin", cookieFor(1, false)).Code)
	})

	t.Run("RequireAdmin with admin token of deleted user is 401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/admin", cookieFor(99, true)).Code)
	})

	t.Run("RequireAdmin with admin token", func(t *testing.T) {
		w := do("/admin", cookieFor(1, true))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"admin":true`)
	})
}

func TestAuthHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service, store := newTestService(t)

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	accounts := &fakeAccounts{
		users: map[string]*models.User{
			"alice": {BaseModel: models.BaseModel{ID: 1}, Name: "alice", Password: hash},
			"root":  {BaseModel: models.BaseModel{ID: 2}, Name: "root", Password: hash},
		},
		admins: map[uint]bool{2: true},
	}
	handler := NewAuthHandler(service, accounts)

	router := gin.New()
	router.POST("/auth/login", handler.Login)
	router.POST("/admin/login", handler.AdminLogin)
	router.POST("/auth/logout", handler.Logout)

	post := func(path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}
	sessionCookie := func(w *httptest.ResponseRecorder) *http.Cookie {
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == "access_token" {
				return cookie
			}
		}
		return nil
	}

	t.Run("login sets an HttpOnly cookie", func(t *testing.T) {
		w := post("/auth/login", LoginRequest{Name: "alice", Password: "secret"})
		assert.Equal(t, http.StatusNoContent, w.Code)

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, 3600, cookie.MaxAge)

		claims, err := service.ValidateJWT(context.Background(), cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := post("/auth/login", LoginRequest{Name: "alice", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Wrong login or password")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := post("/auth/login", map[string]string{"name": "alice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin login sets the admin flag", func(t *testing.T) {
		w := post("/admin/login", LoginRequest{Name: "root", Password: "secret"})
		assert.Equal(t, http.StatusNoContent, w.Code)

		claims, err := service.ValidateJWT(context.Background(), sessionCookie(w).Value)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("admin login of a regular user", func(t *testing.T) {
		w := post("/admin/login", LoginRequest{Name: "alice", Password: "secret"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout clears the cookie and revokes the token", func(t *testing.T) {
		login := post("/auth/login", LoginRequest{Name: "alice", Password: "secret"})
		cookie := sessionCookie(login)
		require.NotNil(t, cookie)

		w := post("/auth/logout", nil, cookie)
		assert.Equal(t, http.StatusNoContent, w.Code)

		cleared := sessionCookie(w)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.True(t, cleared.MaxAge < 0)

		_, err := service.ValidateJWT(context.Background(), cookie.Value)
		assert.Error(t, err)
		assert.NotEmpty(t, store.revoked)
	})
}
