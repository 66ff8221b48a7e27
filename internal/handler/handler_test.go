package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paroquia_connect/internal/mailer"
	"paroquia_connect/internal/middleware"
	"paroquia_connect/internal/model"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	args := m.Called(req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockAuth) Verify(ctx context.Context, email, code string) error {
	return m.Called(email, code).Error(0)
}

func (m *mockAuth) ResendCode(ctx context.Context, email string) error {
	return m.Called(email).Error(0)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(email, password)
	u, _ := args.Get(0).(*model.User)
	return u, args.String(1), args.Error(2)
}

func (m *mockAuth) Logout(ctx context.Context, sessionID string) error {
	return m.Called(sessionID).Error(0)
}

// Authenticate maps the cookie value "user-<id>" or "admin-<id>" to a user
func (m *mockAuth) Authenticate(ctx context.Context, token string) (*model.User, *model.Session, error) {
	var id int
	if _, err := fmt.Sscanf(token, "admin-%d", &id); err == nil {
		return &model.User{ID: id, Name: "Padre", IsAdmin: true}, &model.Session{ID: token, UserID: id}, nil
	}
	if _, err := fmt.Sscanf(token, "user-%d", &id); err == nil {
		return &model.User{ID: id, Name: "Ana", Email: "ana@paroquia.org"}, &model.Session{ID: token, UserID: id}, nil
	}
	return nil, nil, service.ErrUnauthenticated
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called()
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *mockEvents) Get(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(id)
	e, _ := args.Get(0).(*model.Event)
	return e, args.Error(1)
}

func (m *mockEvents) Create(ctx context.Context, actor model.Actor, req model.EventRequest) (*model.Event, error) {
	args := m.Called(actor, req)
	e, _ := args.Get(0).(*model.Event)
	return e, args.Error(1)
}

func (m *mockEvents) Update(ctx context.Context, actor model.Actor, id int, req model.EventRequest) (*model.Event, error) {
	args := m.Called(actor, id, req)
	e, _ := args.Get(0).(*model.Event)
	return e, args.Error(1)
}

func (m *mockEvents) Delete(ctx context.Context, actor model.Actor, id int) error {
	return m.Called(actor, id).Error(0)
}

func (m *mockEvents) RegisterForEvent(ctx context.Context, eventID int, req model.RegistrationRequest) (*model.Registration, error) {
	args := m.Called(eventID, req)
	r, _ := args.Get(0).(*model.Registration)
	return r, args.Error(1)
}

func (m *mockEvents) ListRegistrations(ctx context.Context, eventID int) ([]model.Registration, error) {
	args := m.Called(eventID)
	regs, _ := args.Get(0).([]model.Registration)
	return regs, args.Error(1)
}

type mockAdmin struct{ mock.Mock }

func (m *mockAdmin) List(ctx context.Context) ([]model.AdminView, error) {
	args := m.Called()
	views, _ := args.Get(0).([]model.AdminView)
	return views, args.Error(1)
}

func (m *mockAdmin) Create(ctx context.Context, req model.CreateAccountRequest) (*model.User, error) {
	args := m.Called(req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockAdmin) Update(ctx context.Context, id int, req model.UpdateAccountRequest) (*model.User, error) {
	args := m.Called(id, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockAdmin) Delete(ctx context.Context, actor model.Actor, id int) error {
	return m.Called(actor, id).Error(0)
}

type stubMailer struct{ err error }

func (s stubMailer) Send(ctx context.Context, msg mailer.Message) error { return s.err }

type testServer struct {
	router *gin.Engine
	auth   *mockAuth
	events *mockEvents
	admin  *mockAdmin
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{auth: &mockAuth{}, events: &mockEvents{}, admin: &mockAdmin{}}
	router, err := NewRouter(Services{
		Auth:    ts.auth,
		Events:  ts.events,
		Admin:   ts.admin,
		Contact: service.NewContactService(stubMailer{}, "secretaria@paroquia.org", zerolog.Nop()),
	}, RouterConfig{
		FrontendURL: "http://localhost:5173",
		Cookie:      CookieConfig{TTL: time.Hour},
	}, zerolog.Nop())
	require.NoError(t, err)
	ts.router = router
	return ts
}

func (ts *testServer) do(method, path, cookie string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestHealth(t *testing.T) {
	w := newTestServer(t).do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"is_authenticated":false}`, w.Body.String())

	w = ts.do(http.MethodGet, "/api/v1/auth/me", "user-2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"is_authenticated":true,"user":{"id":2,"nome":"Ana","email":"ana@paroquia.org","is_admin":false,"role":"gestor"}}`, w.Body.String())
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.On("Login", "ana@paroquia.org", "errada").Return(nil, "", service.ErrInvalidCredentials)
	ts.auth.On("Login", "nova@paroquia.org", "segredo").Return(nil, "", service.ErrEmailNotVerified)
	ts.auth.On("Login", "ana@paroquia.org", "segredo").Return(&model.User{ID: 2, Name: "Ana"}, "signed-token", nil)

	w := ts.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ana@paroquia.org", "senha": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "nova@paroquia.org", "senha": "segredo"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ana@paroquia.org", "senha": "segredo"})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	w = ts.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ana@paroquia.org"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.On("Logout", "user-2").Return(nil)

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/api/v1/auth/logout", "", nil).Code)

	w := ts.do(http.MethodPost, "/api/v1/auth/logout", "user-2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)
	ok := model.RegisterRequest{Name: "Ana", Email: "ana@paroquia.org", Password: "segredo"}
	ts.auth.On("Register", ok).Return(&model.User{ID: 5}, nil).Once()

	w := ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"nome": "Ana", "email": "ana@paroquia.org", "senha": "segredo"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Usuário registrado! Verifique seu e-mail para ativar a conta.","id":5,"status":"pending_verification"}`, w.Body.String())

	ts.auth.On("Register", ok).Return(nil, service.ErrConflict).Once()
	w = ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"nome": "Ana", "email": "ana@paroquia.org", "senha": "segredo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ts.auth.On("Register", ok).Return(&model.User{ID: 6}, fmt.Errorf("%w: %w", service.ErrDelivery, errors.New("smtp down"))).Once()
	w = ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"nome": "Ana", "email": "ana@paroquia.org", "senha": "segredo"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, errorBody(t, w), "smtp")
}

func TestVerify_WrongCode(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.On("Verify", "ana@paroquia.org", "000000").Return(service.ErrInvalidCode)

	w := ts.do(http.MethodPost, "/api/v1/auth/verify", "", gin.H{"email": "ana@paroquia.org", "codigo": "000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrInvalidCode.Error(), errorBody(t, w))
}

func TestResendCode(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.On("ResendCode", "ana@paroquia.org").Return(nil).Once()
	ts.auth.On("ResendCode", "ana@paroquia.org").Return(fmt.Errorf("%w: %w", service.ErrDelivery, errors.New("smtp down"))).Once()
	ts.auth.On("ResendCode", "feita@paroquia.org").Return(fmt.Errorf("%w: e-mail já verificado", service.ErrValidation)).Once()

	w := ts.do(http.MethodPost, "/api/v1/auth/resend", "", gin.H{"email": "ana@paroquia.org"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/auth/resend", "", gin.H{"email": "ana@paroquia.org"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, errorBody(t, w), "smtp")

	w = ts.do(http.MethodPost, "/api/v1/auth/resend", "", gin.H{"email": "feita@paroquia.org"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/auth/resend", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ts.auth.AssertExpectations(t)
}

func TestEventRoutes(t *testing.T) {
	ts := newTestServer(t)
	manager := model.Actor{ID: 2}
	req := model.EventRequest{Title: "Retiro", Type: "retiro", Location: "Salão", Date: "2026-11-01", Time: "19:30"}
	body := gin.H{"titulo": "Retiro", "tipo": "retiro", "local": "Salão", "data": "2026-11-01", "horario": "19:30"}

	t.Run("create requires login", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/api/v1/eventos", "", body).Code)
	})

	t.Run("create", func(t *testing.T) {
		ts.events.On("Create", manager, req).Return(&model.Event{ID: 10}, nil).Once()
		w := ts.do(http.MethodPost, "/api/v1/eventos", "user-2", body)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"Evento criado com sucesso!","id":10}`, w.Body.String())
	})

	t.Run("bad date is rejected before the service", func(t *testing.T) {
		bad := gin.H{"titulo": "Retiro", "tipo": "retiro", "local": "Salão", "data": "01/11/2026", "horario": "19:30"}
		assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/v1/eventos", "user-2", bad).Code)
	})

	t.Run("bad capacity mode is rejected", func(t *testing.T) {
		bad := gin.H{"titulo": "Retiro", "tipo": "retiro", "local": "Salão", "data": "2026-11-01", "horario": "19:30", "tipo_vagas": "talvez"}
		assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/v1/eventos", "user-2", bad).Code)
	})

	t.Run("admin form payloads", func(t *testing.T) {
		form := func(mode, vagas string) gin.H {
			return gin.H{"titulo": "Retiro", "tipo": "retiro", "local": "Salão", "tipo_vagas": mode,
				"numero_vagas": vagas, "data": "2026-11-01", "horario": "19:30", "descricao": ""}
		}
		unlimited := req
		unlimited.CapacityMode = "aberta"
		unlimited.Description = strPtr("")
		limited := unlimited
		limited.CapacityMode = "limitada"
		limited.Capacity = model.FlexInt{Value: 50, Valid: true}

		ts.events.On("Create", manager, unlimited).Return(&model.Event{ID: 11}, nil).Once()
		w := ts.do(http.MethodPost, "/api/v1/eventos", "user-2", form("aberta", ""))
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		ts.events.On("Create", manager, limited).Return(&model.Event{ID: 12}, nil).Once()
		w = ts.do(http.MethodPost, "/api/v1/eventos", "user-2", form("limitada", "50"))
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		ts.events.On("Update", manager, 12, limited).Return(&model.Event{ID: 12}, nil).Once()
		w = ts.do(http.MethodPut, "/api/v1/eventos/12", "user-2", form("limitada", "50"))
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = ts.do(http.MethodPost, "/api/v1/eventos", "user-2", form("limitada", "cinquenta"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update someone else's event", func(t *testing.T) {
		ts.events.On("Update", manager, 5, req).Return(nil, service.ErrForbidden).Once()
		w := ts.do(http.MethodPut, "/api/v1/eventos/5", "user-2", body)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodDelete, "/api/v1/eventos/abc", "user-2", nil).Code)
	})

	t.Run("registration when full", func(t *testing.T) {
		reg := model.RegistrationRequest{Name: "Maria", Phone: "11999990000"}
		ts.events.On("RegisterForEvent", 4, reg).Return(nil, service.ErrCapacityExceeded).Once()

		w := ts.do(http.MethodPost, "/api/v1/eventos/4/inscricao", "", gin.H{"nome": "Maria", "telefone": "11999990000"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, service.ErrCapacityExceeded.Error(), errorBody(t, w))
	})

	t.Run("registration for missing event", func(t *testing.T) {
		reg := model.RegistrationRequest{Name: "Maria", Phone: "1"}
		ts.events.On("RegisterForEvent", 99, reg).Return(nil, fmt.Errorf("evento %w", service.ErrNotFound)).Once()

		w := ts.do(http.MethodPost, "/api/v1/eventos/99/inscricao", "", gin.H{"nome": "Maria", "telefone": "1"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		ts.events.On("List").Return([]model.Event{}, nil).Once()
		w := ts.do(http.MethodGet, "/api/v1/eventos", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t)
	admin := model.Actor{ID: 1, IsAdmin: true}
	ts.admin.On("Delete", admin, 1).Return(service.ErrSelfDelete)
	ts.admin.On("Delete", admin, 2).Return(nil)

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/v1/admin_management/admins", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/v1/admin_management/admins", "user-2", nil).Code)

	w := ts.do(http.MethodDelete, "/api/v1/admin_management/admins/1", "admin-1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, service.ErrSelfDelete.Error(), errorBody(t, w))

	w = ts.do(http.MethodDelete, "/api/v1/admin_management/admins/2", "admin-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	ts.admin.AssertExpectations(t)
}

func TestContact(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/enviar-email", "", gin.H{"nome": "José", "email": "jose@example.org", "mensagem": "Olá"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/enviar-email", "", gin.H{
		"nome": "José", "email": "jose@example.org", "assunto": "Dúvida", "mensagem": "Olá",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOversizedFieldsAreRejected(t *testing.T) {
	ts := newTestServer(t)
	long := strings.Repeat("a", 151)

	tests := []struct {
		name   string
		method string
		path   string
		cookie string
		body   gin.H
	}{
		{"register name", http.MethodPost, "/api/v1/auth/register", "",
			gin.H{"nome": long, "email": "ana@paroquia.org", "senha": "segredo"}},
		{"register phone", http.MethodPost, "/api/v1/auth/register", "",
			gin.H{"nome": "Ana", "email": "ana@paroquia.org", "senha": "segredo", "telefone": "+55119999900001"}},
		{"admin create email", http.MethodPost, "/api/v1/admin_management/admins", "admin-1",
			gin.H{"name": "Ana", "email": long + "@paroquia.org", "password": "segredo"}},
		{"admin update phone", http.MethodPut, "/api/v1/admin_management/admins/2", "admin-1",
			gin.H{"phone": "+55119999900001"}},
		{"contact email", http.MethodPost, "/api/v1/enviar-email", "",
			gin.H{"nome": "José", "email": "não-é-email", "assunto": "Dúvida", "mensagem": "Olá"}},
		{"contact subject", http.MethodPost, "/api/v1/enviar-email", "",
			gin.H{"nome": "José", "email": "jose@example.org", "assunto": long, "mensagem": "Olá"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(tt.method, tt.path, tt.cookie, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorBody(t, w), "dados inválidos")
		})
	}
	ts.auth.AssertNotCalled(t, "Register", mock.Anything)
	ts.admin.AssertNotCalled(t, "Create", mock.Anything)
	ts.admin.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: nome", service.ErrValidation), http.StatusBadRequest},
		{service.ErrConflict, http.StatusBadRequest},
		{service.ErrInvalidCode, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrUnauthenticated, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrEmailNotVerified, http.StatusForbidden},
		{service.ErrSelfDelete, http.StatusForbidden},
		{service.ErrCapacityExceeded, http.StatusForbidden},
		{fmt.Errorf("aviso %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: %w", service.ErrDelivery, errors.New("smtp")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		status, _ := errorStatus(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
	}

	_, msg := errorStatus(fmt.Errorf("%w: %w", service.ErrDelivery, errors.New("535 auth failed")))
	assert.Equal(t, service.ErrDelivery.Error(), msg)
}
