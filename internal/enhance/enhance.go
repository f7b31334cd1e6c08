// Package enhance rewrites résumé text with Gemini. Each request targets
// one field; the prompt varies by which kind of field is being improved.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// MinTextLength is the minimum trimmed input length worth sending to the
// model. Shorter fragments produce useless rewrites.
const MinTextLength = 10

// DefaultModel is the Gemini model used for rewrites.
const DefaultModel = "gemini-2.5-flash"

var (
	// ErrTextTooShort rejects inputs below MinTextLength.
	ErrTextTooShort = errors.New("please provide at least 10 characters of text to enhance")
	// ErrNotConfigured is returned when no API key is available.
	ErrNotConfigured = errors.New("ai service is not configured")
)

// Kind selects the prompt shape for a rewrite.
type Kind string

const (
	// KindSummary rewrites profile summaries.
	KindSummary Kind = "summary"
	// KindExperience rewrites job descriptions into bullet points.
	KindExperience Kind = "experience"
	// KindGeneric is the fallback for any other field.
	KindGeneric Kind = ""
)

// Request is one field rewrite.
type Request struct {
	Text     string `json:"text"`
	Kind     Kind   `json:"type,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
}

// ValidateText checks that the input is long enough to enhance.
func ValidateText(text string) error {
	if len(strings.TrimSpace(text)) < MinTextLength {
		return ErrTextTooShort
	}
	return nil
}

// BuildPrompt assembles the rewrite prompt for a request.
func BuildPrompt(req Request) string {
	switch req.Kind {
	case KindSummary:
		role := ""
		if req.JobTitle != "" {
			role = fmt.Sprintf("\n- The person's job title/role is: %s", req.JobTitle)
		}
		return fmt.Sprintf(`You are a professional resume writer. Rewrite the following text as a polished, professional resume summary/profile section. Requirements:
- Fix all grammar and spelling mistakes
- Make it concise (2-4 sentences max)
- Use professional, action-oriented language
- Highlight key strengths and value proposition
- Write in first person without using "I" (e.g., "Experienced developer with..." not "I am an experienced developer")%s

Original text:
"%s"

Return ONLY the improved summary text, nothing else. No quotes, no explanations.`, role, req.Text)

	case KindExperience:
		role := ""
		if req.JobTitle != "" {
			role = fmt.Sprintf("\n- The role is: %s", req.JobTitle)
		}
		return fmt.Sprintf(`You are a professional resume writer. Rewrite the following job description for a resume. Requirements:
- Fix all grammar and spelling mistakes
- Use bullet-point style (each point on a new line starting with •)
- Start each bullet with a strong action verb
- Include metrics/numbers where possible
- Keep it concise and impactful%s

Original text:
"%s"

Return ONLY the improved description text, nothing else. No quotes, no explanations.`, role, req.Text)

	default:
		return fmt.Sprintf(`You are a professional resume writer. Improve the following text for use in a professional resume. Fix grammar, improve clarity, and make it sound professional and impactful.

Original text:
"%s"

Return ONLY the improved text, nothing else. No quotes, no explanations.`, req.Text)
	}
}

// Enhancer is the Gemini-backed text rewriter.
type Enhancer struct {
	client *genai.Client
	model  string
}

// New creates an Enhancer. An empty API key means the service is not
// configured and every rewrite would fail, so it is rejected up front.
func New(ctx context.Context, apiKey string) (*Enhancer, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Enhancer{client: client, model: DefaultModel}, nil
}

// Enhance validates the request, sends the prompt, and returns the
// rewritten text.
func (e *Enhancer) Enhance(ctx context.Context, req Request) (string, error) {
	if err := ValidateText(req.Text); err != nil {
		return "", err
	}

	model := e.client.GenerativeModel(e.model)
	resp, err := model.GenerateContent(ctx, genai.Text(BuildPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("failed to enhance text: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Close releases the underlying client.
func (e *Enhancer) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
