package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"lecturelama-be/internal/dto"
	"lecturelama-be/internal/entity"
	"lecturelama-be/internal/repository/memory"
	"lecturelama-be/pkg/pages"
	"lecturelama-be/pkg/store"
	"lecturelama-be/pkg/tutor"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubGenerator records calls and returns a canned answer or error.
type stubGenerator struct {
	calls  int
	answer string
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context, question string, pageImages []pages.PageImage) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func seedSession(repo *memory.SessionRepository, pageCount int) *store.Session {
	session := store.NewSession("s1", "alice")
	for i := 0; i < pageCount; i++ {
		session.Pages = append(session.Pages, pages.PageImage{Number: i, Width: 10, Height: 10, PNG: []byte{1}})
	}
	repo.Save(session)
	return session
}

func TestAskAppendsTurnPair(t *testing.T) {
	repo := memory.NewSessionRepository()
	session := seedSession(repo, 3)
	gen := &stubGenerator{answer: "It is a flowchart."}
	svc := NewTutorService(repo, gen, nopLogger{})

	res, err := svc.Ask(context.Background(), "s1", &dto.AskRequest{Question: "What is this diagram?"})

	assert.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "What is this diagram?", res.Sent.Text)
	assert.Equal(t, "It is a flowchart.", res.Reply.Text)

	turns := session.All()
	assert.Len(t, turns, 2)
	assert.Equal(t, entity.TurnRoleUser, turns[0].Role)
	assert.Equal(t, "What is this diagram?", turns[0].Text)
	assert.Equal(t, entity.TurnRoleTutor, turns[1].Role)
	assert.Equal(t, "It is a flowchart.", turns[1].Text)
}

func TestAskFailureLeavesTranscriptUntouched(t *testing.T) {
	repo := memory.NewSessionRepository()
	session := seedSession(repo, 1)
	gen := &stubGenerator{err: &tutor.GenerationError{Message: "quota exceeded"}}
	svc := NewTutorService(repo, gen, nopLogger{})

	_, err := svc.Ask(context.Background(), "s1", &dto.AskRequest{Question: "Why?"})

	assert.Error(t, err)
	assert.Equal(t, 0, session.TranscriptLen())
}

func TestAskEmptyQuestionNeverCallsModel(t *testing.T) {
	repo := memory.NewSessionRepository()
	seedSession(repo, 1)
	gen := &stubGenerator{answer: "unused"}
	svc := NewTutorService(repo, gen, nopLogger{})

	_, err := svc.Ask(context.Background(), "s1", &dto.AskRequest{Question: ""})

	assert.ErrorIs(t, err, ErrNoQuestion)
	assert.Equal(t, 0, gen.calls)
}

func TestAskWithoutPagesNeverCallsModel(t *testing.T) {
	repo := memory.NewSessionRepository()
	seedSession(repo, 0)
	gen := &stubGenerator{answer: "unused"}
	svc := NewTutorService(repo, gen, nopLogger{})

	_, err := svc.Ask(context.Background(), "s1", &dto.AskRequest{Question: "What?"})

	assert.ErrorIs(t, err, ErrNoPages)
	assert.Equal(t, 0, gen.calls)
}

func TestAskWhileBusyIsRejected(t *testing.T) {
	repo := memory.NewSessionRepository()
	session := seedSession(repo, 1)
	gen := &stubGenerator{answer: "ok"}
	svc := NewTutorService(repo, gen, nopLogger{})

	assert.True(t, session.Begin())
	defer session.End()

	_, err := svc.Ask(context.Background(), "s1", &dto.AskRequest{Question: "What?"})

	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 0, gen.calls)
}

func TestAskUnknownSession(t *testing.T) {
	repo := memory.NewSessionRepository()
	svc := NewTutorService(repo, &stubGenerator{}, nopLogger{})

	_, err := svc.Ask(context.Background(), "missing", &dto.AskRequest{Question: "What?"})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUploadReplacesPages(t *testing.T) {
	repo := memory.NewSessionRepository()
	session := seedSession(repo, 2)
	svc := NewTutorService(repo, &stubGenerator{}, nopLogger{})

	res, err := svc.Upload(context.Background(), "s1", pages.Document{Kind: pages.KindImage, Data: testPNG(t)})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
	assert.Len(t, session.Pages, 1)
	assert.Equal(t, res.FirstWidth, session.Pages[0].Width)
}

func TestUploadDecodeFailureKeepsOldPages(t *testing.T) {
	repo := memory.NewSessionRepository()
	session := seedSession(repo, 2)
	svc := NewTutorService(repo, &stubGenerator{}, nopLogger{})

	_, err := svc.Upload(context.Background(), "s1", pages.Document{Kind: pages.KindImage, Data: []byte("junk")})

	assert.Error(t, err)
	assert.Len(t, session.Pages, 2)
}

func TestPagePreview(t *testing.T) {
	repo := memory.NewSessionRepository()
	seedSession(repo, 2)
	svc := NewTutorService(repo, &stubGenerator{}, nopLogger{})

	page, err := svc.Page(context.Background(), "s1", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Number)

	_, err = svc.Page(context.Background(), "s1", 5)
	assert.ErrorIs(t, err, ErrNoSuchPage)
}

func TestClearEmptiesTranscriptOnly(t *testing.T) {
	repo := memory.NewSessionRepository()
	session := seedSession(repo, 1)
	session.Append(
		entity.Turn{Role: entity.TurnRoleUser, Text: "q"},
		entity.Turn{Role: entity.TurnRoleTutor, Text: "a"},
	)
	svc := NewTutorService(repo, &stubGenerator{}, nopLogger{})

	err := svc.Clear(context.Background(), "s1")

	assert.NoError(t, err)
	assert.Equal(t, 0, session.TranscriptLen())
	assert.Len(t, session.Pages, 1)
}
