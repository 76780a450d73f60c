package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cars-api/internal/domain/entity"
	"cars-api/pkg/helpers"
)

type loginOnlyRepo struct {
	users map[string]*entity.User
}

func (r *loginOnlyRepo) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	return r.users[login], nil
}

func (r *loginOnlyRepo) FindByID(context.Context, int64) (*entity.User, error) { return nil, nil }
func (r *loginOnlyRepo) FindByIDAndStatus(context.Context, int64, entity.UserStatus) (*entity.User, error) {
	return nil, nil
}
func (r *loginOnlyRepo) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (r *loginOnlyRepo) FindByStatus(context.Context, entity.UserStatus) ([]entity.User, error) {
	return nil, nil
}
func (r *loginOnlyRepo) Save(context.Context, *entity.User) error         { return nil }
func (r *loginOnlyRepo) SaveWithCars(context.Context, *entity.User) error { return nil }

func authTestRouter(jwt *helpers.JWTManager, repo *loginOnlyRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(jwt, repo))
	auth := r.Group("/")
	auth.Use(RequireAuth())
	auth.GET("/whoami", func(c *gin.Context) {
		u, err := LoggedUser(c)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, u.Login)
	})
	return r
}

func doGet(r *gin.Engine, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := authTestRouter(jwt, &loginOnlyRepo{users: map[string]*entity.User{}})

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := authTestRouter(jwt, &loginOnlyRepo{users: map[string]*entity.User{}})

	w := doGet(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := helpers.NewJWTManager("other", time.Hour)
	token, _, err := other.Generate("alice")
	require.NoError(t, err)
	w = doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsUnknownSubject(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := authTestRouter(jwt, &loginOnlyRepo{users: map[string]*entity.User{}})

	// Valid token whose user no longer exists.
	token, _, err := jwt.Generate("ghost")
	require.NoError(t, err)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentityResolvesUser(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	repo := &loginOnlyRepo{users: map[string]*entity.User{
		"alice": {ID: 1, Login: "alice", Status: entity.StatusActive},
	}}
	r := authTestRouter(jwt, repo)

	token, _, err := jwt.Generate("alice")
	require.NoError(t, err)
	w := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestBearerTokenParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, bearerToken(c), "header %q", tc.header)
	}
}
