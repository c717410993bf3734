package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/logging"
	"github.com/taskhive/backend/internal/model"
	"github.com/taskhive/backend/internal/service"
	"github.com/taskhive/backend/internal/testutil"
)

type testEnv struct {
	router *gin.Engine
	tokens *service.TokenService
	users  *testutil.FakeUserStore
	tasks  *testutil.FakeTaskStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := service.NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	users := testutil.NewFakeUserStore()
	tasks := testutil.NewFakeTaskStore()

	cfg := config.Config{
		AppEnv:      "test",
		CORSOrigins: "http://localhost:3000",
	}
	svcs := Services{
		Accounts: service.NewAccountService(users, service.NewHasher(bcrypt.MinCost), tokens),
		Tasks:    service.NewTaskService(tasks),
		Tokens:   tokens,
	}

	return &testEnv{
		router: NewRouter(cfg, logging.New("test"), svcs, nil),
		tokens: tokens,
		users:  users,
		tasks:  tasks,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers an account over HTTP and returns its id and token.
func (e *testEnv) signup(t *testing.T, email, password string) (string, string) {
	t.Helper()
	w := e.do(t, "POST", "/api/auth/signup", `{"email":"`+email+`","password":"`+password+`"}`, "")
	if w.Code != 201 {
		t.Fatalf("signup failed with %d: %s", w.Code, w.Body.String())
	}
	var resp model.TokenResponse
	decodeBody(t, w, &resp)
	return resp.User.ID.String(), resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
}

func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp model.ErrorResponse
	decodeBody(t, w, &resp)
	return resp.Error.Kind
}
