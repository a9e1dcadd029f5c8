package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// LangchainProvider talks to an OpenAI-compatible completion endpoint through
// langchain abstractions, falling back across an ordered model list when a
// model errors or returns empty output.
type LangchainProvider struct {
	llm         llms.Model
	models      []string
	temperature float64
	logger      *zap.Logger
}

// NewLangchainProvider builds a provider against the configured endpoint.
func NewLangchainProvider(apiKey, baseURL string, models []string, logger *zap.Logger) (*LangchainProvider, error) {
	if apiKey == "" {
		return nil, errors.New("generation API key is missing")
	}
	if len(models) == 0 {
		return nil, errors.New("no generation models configured")
	}

	opts := []openai.Option{openai.WithToken(apiKey), openai.WithModel(models[0])}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}

	return &LangchainProvider{
		llm:         llm,
		models:      models,
		temperature: 0.7,
		logger:      logger,
	}, nil
}

func (p *LangchainProvider) GenerateNotes(ctx context.Context, req NotesRequest) (*Generation, error) {
	prompt := fmt.Sprintf(`You are an expert educator. Generate comprehensive notes for:
Topic: %s
Subject: %s
Course: %s
Year/Sem: %s
%s
Provide a deep explanation with clear sections.
`, req.Query, req.Subject, req.Course, req.YearSem, formattingInstructions)

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	return p.generate(ctx, messages, req.RequestedModel)
}

func (p *LangchainProvider) GenerateTutorReply(ctx context.Context, req TutorRequest) (*Generation, error) {
	basePrompt := fmt.Sprintf("You are a friendly AI tutor for %s. Topic: %s. %s", req.Subject, req.Topic, formattingInstructions)

	var prompt string
	switch req.RequestType {
	case TutorSummary:
		prompt = fmt.Sprintf("%s Summarize key points for %q using [IMPORTANT].", basePrompt, req.Topic)
	case TutorKeyConcepts:
		prompt = fmt.Sprintf("%s Explain key concepts for %q using [TOPIC] for each.", basePrompt, req.Topic)
	case TutorFormulas:
		prompt = fmt.Sprintf("%s List essential formulas for %q using [FORMULA].", basePrompt, req.Topic)
	case TutorExamPrep:
		prompt = fmt.Sprintf("%s Create an exam guide for %q using [QUESTION] and [IMPORTANT].", basePrompt, req.Topic)
	default:
		prompt = fmt.Sprintf("%s Student says: %q. Respond as a tutor, use [QUESTION] to check understanding.", basePrompt, req.UserQuery)
	}

	if req.UserQuery != "" {
		prompt = fmt.Sprintf("Context: %s\n\nStudent's Question: %s", prompt, req.UserQuery)
	}

	messages := make([]llms.MessageContent, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := schema.ChatMessageTypeAI
		if turn.Role == "user" {
			role = schema.ChatMessageTypeHuman
		}
		messages = append(messages, llms.TextParts(role, turn.Content))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, prompt))

	return p.generate(ctx, messages, req.RequestedModel)
}

// generate tries each model in order until one returns non-empty content.
func (p *LangchainProvider) generate(ctx context.Context, messages []llms.MessageContent, requestedModel string) (*Generation, error) {
	var lastErr error
	for _, modelName := range p.modelOrder(requestedModel) {
		resp, err := p.llm.GenerateContent(ctx, messages,
			llms.WithModel(modelName),
			llms.WithTemperature(p.temperature),
		)
		if err != nil {
			p.logger.Warn("model failed, trying next",
				zap.String("model", modelName),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
			lastErr = fmt.Errorf("model %s returned empty content", modelName)
			continue
		}
		return &Generation{Text: resp.Choices[0].Content, Model: modelName}, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return nil, fmt.Errorf("all models failed: %w", lastErr)
}

// modelOrder moves a known requested model to the front of the fallback list.
func (p *LangchainProvider) modelOrder(requested string) []string {
	if requested == "" {
		return p.models
	}
	known := false
	for _, m := range p.models {
		if m == requested {
			known = true
			break
		}
	}
	if !known {
		return p.models
	}

	order := make([]string, 0, len(p.models))
	order = append(order, requested)
	for _, m := range p.models {
		if m != requested {
			order = append(order, m)
		}
	}
	return order
}
