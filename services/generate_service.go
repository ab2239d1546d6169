package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"vitamed/domain"
	apperrors "vitamed/errors"
	"vitamed/infrastructure/gemini"
	"vitamed/safety"
)

// DefaultPersona constrains the model to information-only answers. It is
// configuration data: the mapping below never depends on its wording.
const DefaultPersona = "You are 'Vita Med', a specialized medical AI assistant. " +
	"Your knowledge is based on the 'wiki_medical_terms' dataset. " +
	"You are professional, empathetic, and clear. " +
	"Provide accurate medical information and definitions only. " +
	"Do NOT give diagnoses, treatment plans, or medical advice. " +
	"Always end responses by advising the user to consult a qualified healthcare professional."

type GenerateCommand struct {
	Prompt  string
	History []domain.Turn
}

type IGenerateService interface {
	Generate(ctx context.Context, cmd GenerateCommand) (string, error)
}

// GenerateService maps one relay request onto one upstream call: history
// roles are translated, the prompt becomes the final user turn, and the
// persona rides along as the system instruction. Stateless across calls.
type GenerateService struct {
	log       *slog.Logger
	generator gemini.IGenerator
	screener  *safety.Screener
	persona   string
}

func NewGenerateService(log *slog.Logger, generator gemini.IGenerator,
	screener *safety.Screener, persona string) *GenerateService {
	if persona == "" {
		persona = DefaultPersona
	}
	return &GenerateService{log: log, generator: generator, screener: screener, persona: persona}
}

func (s *GenerateService) Generate(ctx context.Context, cmd GenerateCommand) (string, error) {
	prompt := strings.TrimSpace(cmd.Prompt)
	if prompt == "" {
		return "", apperrors.ErrEmptyPrompt
	}

	assessment := s.screener.Screen(prompt)
	s.log.Info("Forwarding prompt to Gemini API",
		"preview", preview(prompt), "language", assessment.Language)
	if assessment.Flagged {
		s.log.Warn("Prompt matched emergency terms", "terms", assessment.Matches)
	}

	contents := lo.Map(cmd.History, func(turn domain.Turn, _ int) gemini.Content {
		return gemini.Content{
			Role:  toGeminiRole(turn.Role),
			Parts: []gemini.Part{{Text: turn.Content}},
		}
	})
	contents = append(contents, gemini.Content{
		Role:  gemini.RoleUser,
		Parts: []gemini.Part{{Text: prompt}},
	})

	text, err := s.generator.Generate(ctx, s.persona, contents)
	if err != nil {
		return "", err
	}

	if assessment.Flagged {
		text = fmt.Sprintf("%s\n\n%s", safety.EmergencyNotice, text)
	}
	return text, nil
}

// toGeminiRole maps the chat vocabulary onto the upstream one: assistant
// turns are spelled "model", user turns pass through unchanged.
func toGeminiRole(role domain.Role) string {
	if role == domain.RoleAssistant {
		return gemini.RoleModel
	}
	return gemini.RoleUser
}

func preview(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= 30 {
		return prompt
	}
	return string(runes[:30]) + "..."
}
