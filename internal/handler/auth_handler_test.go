package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/service"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

type authServiceStub struct {
	loginReq  models.LoginRequest
	loginErr  error
	confirmed *bool
	logoutErr error
	session   *service.SessionToken
}

func (s *authServiceStub) Login(_ context.Context, req models.LoginRequest) (*service.SessionToken, error) {
	s.loginReq = req
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &service.SessionToken{Token: "signed", ExpiresAt: time.Now().Add(time.Hour), User: models.User{Email: req.Email}}, nil
}

func (s *authServiceStub) Logout(_ context.Context, confirmed bool) error {
	s.confirmed = &confirmed
	return s.logoutErr
}

func (s *authServiceStub) CurrentSession(context.Context) (*service.SessionToken, error) {
	if s.session == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return s.session, nil
}

func TestAuthHandlerLogin(t *testing.T) {
	stub := &authServiceStub{}
	h := NewAuthHandler(stub)

	c, w := newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":"admin@example.com","password":"secret"}`))
	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", stub.loginReq.Email)
	assert.Contains(t, w.Body.String(), `"signed"`)

	c, w = newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":`))
	h.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stub.loginErr = appErrors.Clone(appErrors.ErrInvalidCredentials, "ইমেইল বা পাসওয়ার্ড ভুল")
	c, w = newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":"admin@example.com","password":"bad"}`))
	h.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ইমেইল বা পাসওয়ার্ড ভুল", env.Error.Message)
}

func TestAuthHandlerLogout(t *testing.T) {
	stub := &authServiceStub{logoutErr: appErrors.ErrConfirmation}
	h := NewAuthHandler(stub)

	c, w := newGinContext(http.MethodPost, "/auth/logout", []byte(`{}`))
	h.Logout(c)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	require.NotNil(t, stub.confirmed)
	assert.False(t, *stub.confirmed)

	stub.logoutErr = nil
	c, w = newGinContext(http.MethodPost, "/auth/logout", []byte(`{"confirm":true}`))
	h.Logout(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, *stub.confirmed)
}

func TestAuthHandlerSession(t *testing.T) {
	stub := &authServiceStub{}
	h := NewAuthHandler(stub)

	c, w := newGinContext(http.MethodGet, "/auth/session", nil)
	h.Session(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	stub.session = &service.SessionToken{Token: "restored"}
	c, w = newGinContext(http.MethodGet, "/auth/session", nil)
	h.Session(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "restored")
}
