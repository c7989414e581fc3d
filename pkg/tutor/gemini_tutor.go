package tutor

import (
	"context"

	"google.golang.org/genai"

	"lecturelama-be/internal/constant"
	"lecturelama-be/pkg/pages"
)

type GeminiTutor struct {
	client *genai.Client
	model  string
}

// NewGeminiTutor creates a Gemini-backed Generator. The API key must be
// present; the container treats a missing key as a fatal startup error before
// this is ever reached.
func NewGeminiTutor(ctx context.Context, apiKey, model string) (*GeminiTutor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiTutor{client: client, model: model}, nil
}

// Generate sends one request: the tutor preamble and the literal question as
// text, followed by the page images in document order. The response text is
// returned verbatim.
func (g *GeminiTutor) Generate(ctx context.Context, question string, pageImages []pages.PageImage) (string, error) {
	// The caller validates this already; kept because a degenerate call
	// without pages would still cost a round trip.
	if len(pageImages) == 0 {
		return "", &GenerationError{Message: "no pages to read"}
	}

	parts := make([]*genai.Part, 0, len(pageImages)+1)
	parts = append(parts, genai.NewPartFromText(constant.TutorPreambleV1+question))
	for _, page := range pageImages {
		parts = append(parts, genai.NewPartFromBytes(page.PNG, "image/png"))
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &GenerationError{Message: "model request failed", Err: err}
	}

	text := res.Text()
	if text == "" {
		return "", &GenerationError{Message: "model returned an empty response"}
	}
	return text, nil
}
