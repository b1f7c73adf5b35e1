// Package gemini implements the LLM-backed pipeline stages using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/figreact"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Relabeler implements figreact.Relabeler at compile time.
var _ figreact.Relabeler = (*Relabeler)(nil)

// Relabeler implements figreact.Relabeler using Google Gemini.
type Relabeler struct {
	client *genai.Client
	model  string
}

// NewRelabeler creates a new Relabeler. An empty model selects DefaultModel.
func NewRelabeler(client *genai.Client, model string) *Relabeler {
	if model == "" {
		model = DefaultModel
	}
	return &Relabeler{client: client, model: model}
}

// Relabel asks the model to rewrite code for the target UI framework.
func (r *Relabeler) Relabel(ctx context.Context, code, target string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", figreact.Errorf(figreact.EINVALID, "code required")
	}
	if target == "" {
		return "", figreact.Errorf(figreact.EINVALID, "target required")
	}

	result, err := r.client.Models.GenerateContent(ctx, r.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(code, target)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", figreact.Errorf(figreact.EINTERNAL, "gemini returned nil result")
	}

	out := StripFences(result.Text())
	if strings.TrimSpace(out) == "" {
		return "", figreact.Errorf(figreact.EINTERNAL, "gemini returned empty code")
	}
	return out, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a front-end engineer cleaning up generated React components. " +
					"Rewrite the module for the requested UI framework and styling conventions. " +
					"Keep the component structure, component names and text content unchanged. " +
					"Reply with the complete TSX module only, without explanations.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the module and target.
func BuildUserPrompt(code, target string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<target>%s</target>\n", target)
	sb.WriteString("<module>\n")
	sb.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("</module>\n\n")
	fmt.Fprintf(&sb, "Rewrite the module for %s.", target)
	return sb.String()
}

// StripFences removes a surrounding markdown code fence from a model reply.
func StripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	// Drop the opening fence line, which may carry a language tag.
	nl := strings.IndexByte(trimmed, '\n')
	if nl < 0 {
		return ""
	}
	body := trimmed[nl+1:]
	body = strings.TrimSuffix(strings.TrimRight(body, " \t\n"), "```")
	return strings.TrimRight(body, " \t\n") + "\n"
}
