package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Responder answers a free-form visitor question.
type Responder interface {
	Answer(ctx context.Context, question string) (string, error)
}

const (
	answerTimeout  = 15 * time.Second
	contextChunks  = 4
	responderModel = "models/gemini-1.5-flash"
)

// GeminiResponder answers questions with Gemini, grounded on chunks retrieved
// from the museum knowledge base.
type GeminiResponder struct {
	model *genai.GenerativeModel
	docs  *DocStore
}

func NewGeminiResponder(apiKey string, docs *DocStore) (*GeminiResponder, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiResponder{
		model: client.GenerativeModel(responderModel),
		docs:  docs,
	}, nil
}

func (g *GeminiResponder) Answer(ctx context.Context, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	prompt := buildPrompt(question, g.docs.Retrieve(question, contextChunks))
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func buildPrompt(question string, chunks []string) string {
	var sb strings.Builder
	sb.WriteString("You are the assistant of a museum visitor center. ")
	sb.WriteString("Answer the question using the context below. ")
	sb.WriteString("If the context does not contain the answer, say you don't know. ")
	sb.WriteString("Keep the answer to at most three sentences.\n\n")
	if len(chunks) > 0 {
		sb.WriteString("Context:\n")
		sb.WriteString(strings.Join(chunks, "\n\n"))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	return sb.String()
}
