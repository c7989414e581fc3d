// FILE: internal/service/tutor_service.go
package service

import (
	"context"
	"errors"
	"time"

	"lecturelama-be/internal/dto"
	"lecturelama-be/internal/entity"
	"lecturelama-be/internal/pkg/logger"
	"lecturelama-be/internal/repository/memory"
	"lecturelama-be/pkg/pages"
	"lecturelama-be/pkg/store"
	"lecturelama-be/pkg/tutor"
)

// ITutorService orchestrates upload normalization, the model call, and the
// transcript for one session.
type ITutorService interface {
	Upload(ctx context.Context, sessionID string, doc pages.Document) (*dto.UploadResponse, error)
	Page(ctx context.Context, sessionID string, index int) (*pages.PageImage, error)
	Ask(ctx context.Context, sessionID string, req *dto.AskRequest) (*dto.AskResponse, error)
	History(ctx context.Context, sessionID string) (*dto.HistoryResponse, error)
	Clear(ctx context.Context, sessionID string) error
}

var (
	ErrNoQuestion = errors.New("please ask a question")
	ErrNoPages    = errors.New("please upload an image or PDF first")
	ErrNoSuchPage = errors.New("page index out of range")
)

type tutorService struct {
	sessionRepo *memory.SessionRepository
	generator   tutor.Generator
	sysLogger   logger.ILogger
}

func NewTutorService(sessionRepo *memory.SessionRepository, generator tutor.Generator, sysLogger logger.ILogger) ITutorService {
	return &tutorService{
		sessionRepo: sessionRepo,
		generator:   generator,
		sysLogger:   sysLogger,
	}
}

func (s *tutorService) session(sessionID string) (*store.Session, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Upload runs the page extractor and replaces the session's current page
// set. The transcript is untouched, even when extraction fails.
func (s *tutorService) Upload(ctx context.Context, sessionID string, doc pages.Document) (*dto.UploadResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Begin() {
		return nil, ErrBusy
	}
	defer session.End()

	extracted, err := pages.Extract(doc)
	if err != nil {
		return nil, err
	}
	session.Pages = extracted
	s.sessionRepo.Save(session)

	s.sysLogger.Info("tutor", "document converted", map[string]interface{}{
		"session_id": session.ID,
		"kind":       string(doc.Kind),
		"pages":      len(extracted),
	})

	res := &dto.UploadResponse{Pages: len(extracted)}
	if len(extracted) > 0 {
		res.FirstWidth = extracted[0].Width
		res.FirstHeight = extracted[0].Height
	}
	return res, nil
}

// Page returns one extracted page for preview.
func (s *tutorService) Page(ctx context.Context, sessionID string, index int) (*pages.PageImage, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.Pages) {
		return nil, ErrNoSuchPage
	}
	return &session.Pages[index], nil
}

// Ask validates before calling the model so invalid requests never cost a
// round trip, then appends the (user, tutor) turn pair atomically on
// success. On any generation failure the transcript is left untouched.
func (s *tutorService) Ask(ctx context.Context, sessionID string, req *dto.AskRequest) (*dto.AskResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if req.Question == "" {
		return nil, ErrNoQuestion
	}
	if len(session.Pages) == 0 {
		return nil, ErrNoPages
	}
	if !session.Begin() {
		return nil, ErrBusy
	}
	defer session.End()

	answer, err := s.generator.Generate(ctx, req.Question, session.Pages)
	if err != nil {
		s.sysLogger.Error("tutor", "generation failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	now := time.Now()
	sent := entity.Turn{Role: entity.TurnRoleUser, Text: req.Question, CreatedAt: now}
	reply := entity.Turn{Role: entity.TurnRoleTutor, Text: answer, CreatedAt: now}
	session.Append(sent, reply)
	s.sessionRepo.Save(session)

	return &dto.AskResponse{
		Sent:  toTurnDTO(sent),
		Reply: toTurnDTO(reply),
	}, nil
}

// History returns the transcript, oldest first.
func (s *tutorService) History(ctx context.Context, sessionID string) (*dto.HistoryResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	turns := session.All()
	res := &dto.HistoryResponse{Turns: make([]dto.TurnDTO, 0, len(turns))}
	for _, turn := range turns {
		res.Turns = append(res.Turns, toTurnDTO(turn))
	}
	return res, nil
}

// Clear empties the transcript without touching sign-in state or pages.
func (s *tutorService) Clear(ctx context.Context, sessionID string) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	if !session.Begin() {
		return ErrBusy
	}
	defer session.End()

	session.ClearTranscript()
	s.sessionRepo.Save(session)
	return nil
}

func toTurnDTO(turn entity.Turn) dto.TurnDTO {
	return dto.TurnDTO{
		Role:      string(turn.Role),
		Text:      turn.Text,
		CreatedAt: turn.CreatedAt,
	}
}
