package ai

import "context"

// Provider generates study content. Implementations try an ordered list of
// models and report which one served the request.
type Provider interface {
	GenerateNotes(ctx context.Context, req NotesRequest) (*Generation, error)
	GenerateTutorReply(ctx context.Context, req TutorRequest) (*Generation, error)
}

// Generation is a completed generation and the model that produced it.
type Generation struct {
	Text  string `json:"data"`
	Model string `json:"modelUsed"`
}

// NotesRequest asks for comprehensive notes on a topic.
type NotesRequest struct {
	Query          string `json:"query"`
	Subject        string `json:"subject"`
	Course         string `json:"course"`
	ClassLevel     string `json:"classLevel"`
	YearSem        string `json:"yearSem"`
	RequestedModel string `json:"requestedModel"`
}

// Tutor request kinds
const (
	TutorSummary     = "summary"
	TutorKeyConcepts = "key_concepts"
	TutorFormulas    = "formulas"
	TutorExamPrep    = "exam_prep"
)

// TutorTurn is one prior exchange in a tutoring conversation.
type TutorTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// TutorRequest asks for a tutor reply, optionally continuing a conversation.
type TutorRequest struct {
	Topic          string      `json:"topic"`
	Subject        string      `json:"subject"`
	RequestType    string      `json:"requestType"`
	UserQuery      string      `json:"userQuery"`
	History        []TutorTurn `json:"history"`
	RequestedModel string      `json:"requestedModel"`
}

// formattingInstructions keep the client-side parser contract: generated
// content wraps special sections in bracket markers.
const formattingInstructions = `
### Formatting Instructions:
When you generate content, please use the following markers for special formatting:

- For main topics, wrap text in [TOPIC]...[/TOPIC].
- For examples, wrap in [EXAMPLE]...[/EXAMPLE].
- For key points or summaries, wrap in [IMPORTANT]...[/IMPORTANT].
- For formulas, wrap in [FORMULA]...[/FORMULA].
- For questions, wrap in [QUESTION]...[/QUESTION].
`
