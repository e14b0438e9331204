package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// AIService drafts clause prose and classifies contract risk using OpenAI.
type AIService struct {
	client *openai.Client
}

// RiskAssessment is the structured result of a risk analysis.
type RiskAssessment struct {
	Level  string `json:"level"`
	Reason string `json:"reason"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateClause drafts clause text for a section title given surrounding
// agreement context.
func (s *AIService) GenerateClause(ctx context.Context, sectionTitle, contextText string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a contract drafting assistant. Draft the text of one contract clause.

Clause title: %s

Agreement context:
%s

Return only the clause text in plain professional legal English. Do not include the clause title, numbering, or any commentary.`, sectionTitle, contextText)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// AnalyzeRisk classifies the risk of agreement text.
func (s *AIService) AnalyzeRisk(ctx context.Context, text string) (*RiskAssessment, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a contract risk analyst. Classify the overall risk of the following agreement text.

Text:
%s

Respond with JSON only, in this exact shape:
{
  "level": "low" | "medium" | "high",
  "reason": "one or two sentences explaining the classification"
}`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var assessment RiskAssessment
	if err := json.Unmarshal([]byte(content), &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &assessment, nil
}
