package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/00001120-alt/refrigerante/internal/repo"
)

type fakeUser struct {
	id   int
	hash string
}

type fakeRepo struct {
	users map[string]fakeUser
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]fakeUser)}
}

func (f *fakeRepo) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	if _, ok := f.users[login]; ok {
		return 0, fmt.Errorf("duplicate login")
	}
	id := len(f.users) + 1
	f.users[login] = fakeUser{id: id, hash: password}
	return id, nil
}

func (f *fakeRepo) GetBylogin(ctx context.Context, login string) (int, string, error) {
	u, ok := f.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func (f *fakeRepo) SaveRun(ctx context.Context, userID int, run repo.Run) (int, error) {
	return 0, fmt.Errorf("not implemented")
}

func (f *fakeRepo) ListRuns(ctx context.Context, userID, limit int) ([]repo.Run, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeRepo) GetRun(ctx context.Context, userID, id int) (repo.Run, error) {
	return repo.Run{}, fmt.Errorf("not implemented")
}

func (f *fakeRepo) DeleteRun(ctx context.Context, userID, id int) error {
	return fmt.Errorf("not implemented")
}

func testEnv() *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: newFakeRepo()}
}

func TestRegisterValidation(t *testing.T) {
	env := testEnv()

	rr := httptest.NewRecorder()
	env.RegisterHandler(rr, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login": "ana", "email": "", "password": "secret1"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	env.RegisterHandler(rr, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login": "ana", "email": "a@b.c", "password": "abc12"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Password too short")
}

func TestRegisterAndLogin(t *testing.T) {
	env := testEnv()

	rr := httptest.NewRecorder()
	env.RegisterHandler(rr, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login": "ana", "email": "a@b.c", "password": "secret1"}`)))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.NotEmpty(t, rr.Result().Cookies())
	assert.Equal(t, "session_token", rr.Result().Cookies()[0].Name)

	rr = httptest.NewRecorder()
	env.AuthHandler(rr, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login": "ana", "password": "secret1"}`)))
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = httptest.NewRecorder()
	env.AuthHandler(rr, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login": "ana", "password": "wrong12"}`)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Unknown login hides behind the same answer as a bad password.
	rr = httptest.NewRecorder()
	env.AuthHandler(rr, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login": "boris", "password": "secret1"}`)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	env := testEnv()
	body := `{"login": "ana", "email": "a@b.c", "password": "secret1"}`

	rr := httptest.NewRecorder()
	env.RegisterHandler(rr, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	env.RegisterHandler(rr, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAuthMiddleware(t *testing.T) {
	env := testEnv()

	var gotID int
	var gotLogin string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value("userID").(int)
		gotLogin, _ = r.Context().Value("userLogin").(string)
		w.WriteHeader(http.StatusOK)
	})
	protected := env.AuthMiddleware(next)

	// No cookie.
	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/user/tubes", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Garbage token.
	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/tubes", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "not-a-jwt"})
	protected.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Real token minted by addCookie.
	mint := httptest.NewRecorder()
	env.addCookie(mint, 42, "ana")
	require.NotEmpty(t, mint.Result().Cookies())

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/user/tubes", nil)
	req.AddCookie(mint.Result().Cookies()[0])
	protected.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 42, gotID)
	assert.Equal(t, "ana", gotLogin)

	// Token signed with a different key.
	other := &Authenv{JWTkey: []byte("other-key")}
	mint = httptest.NewRecorder()
	other.addCookie(mint, 42, "ana")

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/user/tubes", nil)
	req.AddCookie(mint.Result().Cookies()[0])
	protected.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRateLimiterCutsOff(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	limited := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		limited.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := testEnv()
	rr := httptest.NewRecorder()
	env.LogoutHandler(rr, httptest.NewRequest(http.MethodPost, "/api/user/logout", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Result().Cookies())
	cookie := rr.Result().Cookies()[0]
	assert.Equal(t, "session_token", cookie.Name)
	assert.Less(t, cookie.MaxAge, 0)
}
