package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/config"
	"github.com/stemsi/schoolcrm-backend/internal/handler"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/policy"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
	"github.com/stemsi/schoolcrm-backend/internal/service"
	"github.com/stemsi/schoolcrm-backend/internal/session"
	"github.com/stemsi/schoolcrm-backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const frontendOrigin = "http://localhost:3000"

type testApp struct {
	engine *gin.Engine
	store  *repository.MemoryStore
	hasher service.PasswordHasher
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	return newTestAppWithSessions(t, session.NewMemoryStore(), mutate...)
}

func newTestAppWithSessions(t *testing.T, sessions session.Store, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		AppEnv:              config.EnvDevelopment,
		GinMode:             gin.TestMode,
		SessionSecret:       "test_secret",
		SessionCookieName:   "sid",
		SessionTTL:          24 * time.Hour,
		AllowedOrigins:      []string{frontendOrigin},
		AuthRateLimit:       1000,
		CompressionMinBytes: 1024,
	}
	for _, m := range mutate {
		m(cfg)
	}

	log := zerolog.Nop()
	store := repository.NewMemoryStore()
	users := store.Users()
	classes := store.Classes()
	hasher := service.BcryptHasher{Cost: bcrypt.MinCost}

	authService := service.NewAuthService(users, sessions, session.NewTokenCodec(cfg.SessionSecret), hasher, cfg.SessionTTL, log)
	handlers := &Handlers{
		Auth: handler.NewAuthHandler(authService, handler.CookieSettings{
			Name:     cfg.SessionCookieName,
			SameSite: cfg.CookieSameSite(),
			Secure:   cfg.CookieSecure(),
		}, log),
		Teachers:  handler.NewUserHandler(service.NewUserService(model.RoleTeacher, users, hasher, log), "Teacher"),
		Students:  handler.NewUserHandler(service.NewUserService(model.RoleStudent, users, hasher, log), "Student"),
		Class:     handler.NewClassHandler(service.NewClassService(classes, users, log)),
		Financial: handler.NewFinancialHandler(service.NewFinancialService(users, classes)),
		Health:    handler.NewHealthHandler(log),
	}

	return &testApp{
		engine: SetupRouter(cfg, log, authService, users, handlers),
		store:  store,
		hasher: hasher,
	}
}

func (a *testApp) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// seedAdmin inserts an admin directly; admins cannot sign up.
func (a *testApp) seedAdmin(t *testing.T) {
	t.Helper()
	hash, err := a.hasher.Hash("admin123")
	require.NoError(t, err)
	require.NoError(t, a.store.Users().Create(context.Background(), &model.User{
		Name: "Admin", Email: "admin@school.com", Password: hash, Role: model.RoleAdmin,
	}))
}

func (a *testApp) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

func (a *testApp) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	a.seedAdmin(t)
	return a.login(t, "admin@school.com", "admin123")
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSignup(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Tina", "email": "tina@school.com", "password": "secret1", "role": "teacher", "salary": 1200,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotContains(t, body, "password")
	assert.Equal(t, "teacher", body["role"])
	assert.Equal(t, 1200.0, body["salary"])

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure)

	me := app.do(t, http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "tina@school.com", decode(t, me)["email"])
}

func TestSignupRejectsAdminRole(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Eve", "email": "eve@school.com", "password": "secret1", "role": "admin",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Role must be teacher or student", decode(t, w)["message"])
	assert.Empty(t, w.Result().Cookies())

	_, err := app.store.Users().GetByEmail(context.Background(), "eve@school.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"email": "a@school.com", "password": "secret1", "role": "student"}},
		{"bad email", gin.H{"name": "A", "email": "not-an-email", "password": "secret1", "role": "student"}},
		{"short password", gin.H{"name": "A", "email": "a@school.com", "password": "123", "role": "student"}},
		{"bad date", gin.H{"name": "A", "email": "a@school.com", "password": "secret1", "dateOfBirth": "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/api/auth/signup", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode(t, w)["message"])
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	payload := gin.H{"name": "Sam", "email": "sam@school.com", "password": "secret1", "role": "student"}

	w := app.do(t, http.MethodPost, "/api/auth/signup", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/signup", payload, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", decode(t, w)["message"])

	users, total, err := app.store.Users().List(context.Background(), repository.UserFilter{
		Role:       model.RoleStudent,
		ListParams: model.ListParams{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, users, 1)
}

func TestLoginLogout(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t)

	for _, creds := range []gin.H{
		{"email": "admin@school.com", "password": "wrong"},
		{"email": "nobody@school.com", "password": "admin123"},
	} {
		w := app.do(t, http.MethodPost, "/api/auth/login", creds, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decode(t, w)["message"])
		assert.Empty(t, w.Result().Cookies())
	}

	cookie := app.login(t, "admin@school.com", "admin123")
	w := app.do(t, http.MethodGet, "/api/teachers", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", decode(t, w)["message"])
	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)

	w = app.do(t, http.MethodGet, "/api/teachers", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, no session", decode(t, w)["message"])
}

// failingDestroyStore is a memory store whose Destroy always fails.
type failingDestroyStore struct {
	*session.MemoryStore
}

func (failingDestroyStore) Destroy(context.Context, string) error {
	return errors.New("session backend unavailable")
}

func TestLogoutStoreFailure(t *testing.T) {
	app := newTestAppWithSessions(t, failingDestroyStore{session.NewMemoryStore()})
	cookie := app.adminCookie(t)

	w := app.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Could not log out. Please try again.", decode(t, w)["message"])
	assert.Empty(t, w.Header().Values("Set-Cookie"))

	// The session is still live, so the client may retry.
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/auth/me", nil, cookie).Code)
}

func TestLoginRotatesSession(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t)

	first := app.login(t, "admin@school.com", "admin123")
	w := app.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@school.com", "password": "admin123"}, first)
	require.Equal(t, http.StatusOK, w.Code)
	second := sessionCookie(t, w)
	assert.NotEqual(t, first.Value, second.Value)

	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, "/api/auth/me", nil, first).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/auth/me", nil, second).Code)
}

func TestProductionCookieFlags(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.AppEnv = config.EnvProduction })
	cookie := app.adminCookie(t)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestForgedCookie(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/api/auth/me", nil, &http.Cookie{Name: "sid", Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeletedUserSession(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminCookie(t)

	w := app.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Tom", "email": "tom@school.com", "password": "secret1", "role": "teacher",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	teacherCookie := sessionCookie(t, w)
	id := decode(t, w)["id"].(string)

	require.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, "/api/teachers/"+id, nil, admin).Code)

	w = app.do(t, http.MethodGet, "/api/auth/me", nil, teacherCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized", decode(t, w)["message"])
}

func TestRoleGate(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Tim", "email": "tim@school.com", "password": "secret1", "role": "teacher",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	teacher := sessionCookie(t, w)

	w = app.do(t, http.MethodPost, "/api/teachers", gin.H{
		"name": "X", "email": "x@school.com", "password": "secret1",
	}, teacher)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User role 'teacher' is not authorized to access this route", decode(t, w)["message"])

	w = app.do(t, http.MethodGet, "/api/financial/analytics", nil, teacher)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/students", gin.H{
		"name": "Stu", "email": "stu@school.com", "password": "secret1",
	}, teacher)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Sia", "email": "sia@school.com", "password": "secret1", "role": "student",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	student := sessionCookie(t, w)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/classes", nil, student).Code)
	w = app.do(t, http.MethodGet, "/api/students", nil, student)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User role 'student' is not authorized to access this route", decode(t, w)["message"])
}

func TestUserCRUD(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminCookie(t)

	w := app.do(t, http.MethodPost, "/api/teachers", gin.H{
		"name": "Tara", "email": "tara@school.com", "password": "secret1",
		"gender": "Female", "contactNumber": "555-1000", "salary": 3000, "role": "admin",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.Equal(t, "teacher", created["role"])
	assert.NotContains(t, created, "password")

	w = app.do(t, http.MethodPost, "/api/students", gin.H{
		"name": "Dup", "email": "tara@school.com", "password": "secret1",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", decode(t, w)["message"])

	w = app.do(t, http.MethodPut, "/api/teachers/"+id, gin.H{"name": "", "salary": 0, "contactNumber": "555-2000"}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)
	assert.Equal(t, "Tara", updated["name"])
	assert.Equal(t, "tara@school.com", updated["email"])
	assert.Equal(t, "Female", updated["gender"])
	assert.Equal(t, 3000.0, updated["salary"])
	assert.Equal(t, "555-2000", updated["contactNumber"])

	w = app.do(t, http.MethodGet, "/api/students/"+id, nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found", decode(t, w)["message"])

	w = app.do(t, http.MethodGet, "/api/teachers/"+id, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tara", decode(t, w)["name"])

	w = app.do(t, http.MethodDelete, "/api/teachers/"+id, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Teacher removed", decode(t, w)["message"])

	w = app.do(t, http.MethodDelete, "/api/teachers/"+id, nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Teacher not found", decode(t, w)["message"])
}

func TestListPagination(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminCookie(t)

	for i := 0; i < 12; i++ {
		w := app.do(t, http.MethodPost, "/api/students", gin.H{
			"name":     fmt.Sprintf("Student %02d", i),
			"email":    fmt.Sprintf("student%02d@school.com", i),
			"password": "secret1",
		}, admin)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := app.do(t, http.MethodGet, "/api/students?page=1&limit=10", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.Len(t, page["data"], 10)
	assert.Equal(t, 1.0, page["currentPage"])
	assert.Equal(t, 2.0, page["totalPages"])

	w = app.do(t, http.MethodGet, "/api/students?page=2&limit=10", nil, admin)
	page = decode(t, w)
	assert.Len(t, page["data"], 2)
	assert.Equal(t, 2.0, page["currentPage"])

	w = app.do(t, http.MethodGet, "/api/students?page=922337203685477581&limit=100", nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page = decode(t, w)
	assert.Empty(t, page["data"])
	assert.NotNil(t, page["data"])
	assert.Equal(t, 1.0, page["totalPages"])

	w = app.do(t, http.MethodGet, "/api/students?search=STUDENT%2011&sortBy=name&order=desc", nil, admin)
	page = decode(t, w)
	require.Len(t, page["data"], 1)
	assert.Equal(t, "Student 11", page["data"].([]any)[0].(map[string]any)["name"])
}

func TestClassLifecycle(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminCookie(t)

	w := app.do(t, http.MethodPost, "/api/teachers", gin.H{"name": "Tess", "email": "tess@school.com", "password": "secret1"}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	teacherID := decode(t, w)["id"].(string)

	w = app.do(t, http.MethodPost, "/api/students", gin.H{"name": "Stan", "email": "stan@school.com", "password": "secret1"}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	studentID := decode(t, w)["id"].(string)

	w = app.do(t, http.MethodPost, "/api/classes", gin.H{"name": "Biology", "teacherId": studentID}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Teacher ID", decode(t, w)["message"])

	w = app.do(t, http.MethodPost, "/api/classes", gin.H{"name": "Biology"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name and Teacher ID are required", decode(t, w)["message"])

	w = app.do(t, http.MethodGet, "/api/classes", nil, admin)
	assert.Empty(t, decode(t, w)["data"])

	w = app.do(t, http.MethodPost, "/api/classes", gin.H{"name": "Biology", "teacherId": teacherID, "students": []string{studentID}}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	class := decode(t, w)
	classID := class["id"].(string)
	assert.Equal(t, 60.0, class["maxStudents"])
	assert.Equal(t, 1000.0, class["fee"])
	assert.Equal(t, "Tess", class["teacher"].(map[string]any)["name"])

	w = app.do(t, http.MethodPut, "/api/classes/"+classID, gin.H{"teacherId": studentID}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, "/api/classes/"+classID, gin.H{"fee": 1500, "name": ""}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	class = decode(t, w)
	assert.Equal(t, "Biology", class["name"])
	assert.Equal(t, 1500.0, class["fee"])
	assert.Equal(t, []any{studentID}, class["students"])

	w = app.do(t, http.MethodGet, "/api/classes", nil, admin)
	list := decode(t, w)
	require.Len(t, list["data"], 1)
	teacher := list["data"].([]any)[0].(map[string]any)["teacher"].(map[string]any)
	assert.Equal(t, "tess@school.com", teacher["email"])

	require.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, "/api/teachers/"+teacherID, nil, admin).Code)
	w = app.do(t, http.MethodGet, "/api/classes/"+classID, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["teacher"])

	w = app.do(t, http.MethodDelete, "/api/classes/"+classID, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Class removed", decode(t, w)["message"])

	w = app.do(t, http.MethodGet, "/api/classes/"+classID, nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Class not found", decode(t, w)["message"])
}

func TestFinancial(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminCookie(t)

	w := app.do(t, http.MethodGet, "/api/financial/analytics", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"salary":0,"feesCollected":0,"profit":0}}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/teachers", gin.H{"name": "T", "email": "t@school.com", "password": "secret1", "salary": 2000}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	teacherID := decode(t, w)["id"].(string)
	w = app.do(t, http.MethodPost, "/api/students", gin.H{"name": "S", "email": "s@school.com", "password": "secret1", "feesPaid": 2500}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(t, http.MethodPost, "/api/classes", gin.H{"name": "C", "teacherId": teacherID, "fee": 700}, admin)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/api/financial/analytics", nil, admin)
	assert.JSONEq(t, `{"data":{"salary":2000,"feesCollected":2500,"profit":500}}`, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/financial/expenses/teacher-salaries", nil, admin)
	assert.JSONEq(t, `{"totalExpenses":2000}`, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/financial/income/student-fees", nil, admin)
	assert.JSONEq(t, `{"totalIncome":700}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", frontendOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	assert.Equal(t, frontendOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthRateLimit(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.AuthRateLimit = 2 })
	creds := gin.H{"email": "nobody@school.com", "password": "secret1"}

	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodPost, "/api/auth/login", creds, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodPost, "/api/auth/login", creds, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, app.do(t, http.MethodPost, "/api/auth/login", creds, nil).Code)
}

func TestHealthAndNoRoute(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = app.do(t, http.MethodGet, "/api/nowhere", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, decode(t, w)["message"])
}

func TestEveryPolicyRouteIsRegistered(t *testing.T) {
	app := newTestApp(t)

	registered := make(map[policy.Route]bool)
	for _, r := range app.engine.Routes() {
		registered[policy.Route{Method: r.Method, Path: r.Path}] = true
	}
	for route := range policy.Matrix {
		assert.True(t, registered[route], "%s has a rule but no handler", route)
	}
}
