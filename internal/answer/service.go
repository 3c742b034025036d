package answer

import (
	"context"
	"fmt"
	"strings"
)

// promptTemplate wraps the extracted screen text in fixed instruction
// rules so the model returns one short answer instead of a restated
// question.
const promptTemplate = `Follow these rules STRICTLY:
- Question → short clear answer
- MCQs → ONLY correct option
- Code → ONLY correct code
- Math → FINAL answer only

SCREEN TEXT:
%s
`

// Completer obtains one completion for a prompt from an inference provider
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service builds constrained prompts from extracted text and converts any
// provider failure into a displayable diagnostic string. Callers always
// receive a renderable answer, never an error.
type Service struct {
	completer Completer
}

// NewService creates an answer synthesis service over a completion provider
func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// BuildPrompt embeds the extracted text verbatim in the instruction rules
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

// Synthesize returns a short answer for the extracted screen text
func (s *Service) Synthesize(ctx context.Context, text string) string {
	out, err := s.completer.Complete(ctx, BuildPrompt(text))
	if err != nil {
		return fmt.Sprintf("AI error: %v", err)
	}
	return strings.TrimSpace(out)
}
