// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"lecturelama-be/internal/dto"
	"lecturelama-be/internal/pkg/logger"
	"lecturelama-be/internal/repository/memory"
	"lecturelama-be/pkg/store"
)

// IAuthService is the session gate. The credential check is a deliberate
// placeholder (any non-empty pair passes); keep real identity providers
// behind this interface instead of strengthening the check here.
type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrBusy            = errors.New("another request is still in progress")
)

type authService struct {
	sessionRepo *memory.SessionRepository
	jwtSecret   string
	sysLogger   logger.ILogger
}

func NewAuthService(sessionRepo *memory.SessionRepository, jwtSecret string, sysLogger logger.ILogger) IAuthService {
	return &authService{
		sessionRepo: sessionRepo,
		jwtSecret:   jwtSecret,
		sysLogger:   sysLogger,
	}
}

// Login creates a fresh session with an empty transcript. Fails iff either
// field is empty; no side effects on failure.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("please enter both username and password")
	}

	session := store.NewSession(uuid.New().String(), req.Username)
	s.sessionRepo.Save(session)

	claims := jwt.MapClaims{
		"session_id": session.ID,
		"username":   session.Username,
		"exp":        time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.sessionRepo.Delete(session.ID)
		return nil, err
	}

	s.sysLogger.Info("auth", "session created", map[string]interface{}{
		"session_id": session.ID,
		"username":   session.Username,
	})

	return &dto.LoginResponse{
		AccessToken: signedToken,
		Username:    session.Username,
	}, nil
}

// Logout discards the session and its transcript. The only refusal is a
// model call still in flight for the session.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if session, found := s.sessionRepo.Get(sessionID); found {
		if !session.Begin() {
			return ErrBusy
		}
		defer session.End()
	}
	s.sessionRepo.Delete(sessionID)
	s.sysLogger.Info("auth", "session destroyed", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}
