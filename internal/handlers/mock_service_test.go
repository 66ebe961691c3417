package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"

	"people_api/internal/models"
	"people_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser models.User
	signUpErr  error
	loginUser  models.User
	loginToken string
	loginErr   error
	parseName  string
	parseErr   error

	lastSignUpUsername string
	lastSignUpPassword string
	lastLoginUsername  string
	lastLoginPassword  string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (models.User, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, username, password string) (models.User, string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginUser, m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseName, m.parseErr
}

type mockPeople struct {
	mu      sync.Mutex // List is called from websocket goroutines
	list    []models.Person
	person  *models.Person
	err     error
	created models.Person

	lastOwner string
	lastID    string
	lastPatch models.PersonPatch
	lastInput models.Person
}

func (m *mockPeople) List(_ context.Context, owner string) ([]models.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastOwner = owner
	return m.list, m.err
}

func (m *mockPeople) listedFor() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOwner
}

func (m *mockPeople) Create(_ context.Context, owner string, p models.Person) (models.Person, error) {
	m.lastOwner = owner
	m.lastInput = p
	p.ID = m.created.ID
	p.Username = owner
	return p, m.err
}

func (m *mockPeople) Get(_ context.Context, id, owner string) (*models.Person, error) {
	m.lastID, m.lastOwner = id, owner
	return m.person, m.err
}

func (m *mockPeople) Update(_ context.Context, id, owner string, patch models.PersonPatch) (*models.Person, error) {
	m.lastID, m.lastOwner, m.lastPatch = id, owner, patch
	return m.person, m.err
}

func (m *mockPeople) Delete(_ context.Context, id, owner string) (*models.Person, error) {
	m.lastID, m.lastOwner = id, owner
	return m.person, m.err
}

type mockHealth struct{ err error }

func (m *mockHealth) Ping(context.Context) error { return m.err }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts)
	return h.InitRoutes()
}

func newRequestWithOrigin(method, path, origin string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Origin", origin)
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
