package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/pkg/config"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

const sessionIssuer = "student-records"

type sessionRepository interface {
	Get(ctx context.Context, key string) (*models.Session, error)
	Set(ctx context.Context, key string, session models.Session, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SessionToken is handed to the operator UI after login or restore.
type SessionToken struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// SessionService persists the operator session under a fixed key and signs its tokens.
type SessionService struct {
	repo   sessionRepository
	key    string
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService constructs the session service.
func NewSessionService(repo sessionRepository, cfg config.SessionConfig, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := cfg.Key
	if key == "" {
		key = "user_session"
	}
	return &SessionService{
		repo:   repo,
		key:    key,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		logger: logger,
		now:    time.Now,
	}
}

// Create persists a new session for user and returns its token.
func (s *SessionService) Create(ctx context.Context, user models.User) (*SessionToken, error) {
	session := models.Session{ID: uuid.NewString(), User: user, CreatedAt: s.now().UTC()}
	if err := s.repo.Set(ctx, s.key, session, s.ttl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}
	return s.Issue(session)
}

// Load returns the persisted session, or nil when there is none.
func (s *SessionService) Load(ctx context.Context) (*models.Session, error) {
	session, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

// Delete removes the persisted session.
func (s *SessionService) Delete(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove session")
	}
	return nil
}

// Issue signs a token for an existing session.
func (s *SessionService) Issue(session models.Session) (*SessionToken, error) {
	issuedAt := s.now().UTC()
	claims := &models.SessionClaims{
		SessionID: session.ID,
		Email:     session.User.Email,
		Name:      session.User.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   session.User.Email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = issuedAt.Add(s.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return &SessionToken{Token: signed, ExpiresAt: expiresAt, User: session.User}, nil
}

// ValidateToken checks the signature and that the token belongs to the persisted session.
func (s *SessionService) ValidateToken(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	session, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || session.ID != claims.SessionID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session ended")
	}
	return claims, nil
}
