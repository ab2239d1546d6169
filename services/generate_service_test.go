package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"vitamed/domain"
	apperrors "vitamed/errors"
	"vitamed/infrastructure/gemini"
	"vitamed/mocks"
	"vitamed/safety"
)

func newGenerateFixture(t *testing.T) (*GenerateService, *mocks.MockIGenerator) {
	ctrl := gomock.NewController(t)
	generator := mocks.NewMockIGenerator(ctrl)
	screener, err := safety.NewScreener(safety.DefaultEmergencyTerms)
	require.NoError(t, err)
	return NewGenerateService(slog.Default(), generator, &screener, "test persona"), generator
}

func Test_Generate_Maps_History_And_Appends_Prompt(t *testing.T) {
	req := require.New(t)
	service, generator := newGenerateFixture(t)

	generator.EXPECT().
		Generate(gomock.Any(), "test persona", []gemini.Content{
			{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "Q"}}},
			{Role: gemini.RoleModel, Parts: []gemini.Part{{Text: "R"}}},
			{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "P"}}},
		}).
		Return("A", nil)

	text, err := service.Generate(context.Background(), GenerateCommand{
		Prompt: "P",
		History: []domain.Turn{
			{Role: domain.RoleUser, Content: "Q"},
			{Role: domain.RoleAssistant, Content: "R"},
		},
	})
	req.NoError(err)
	req.Equal("A", text)
}

func Test_Generate_Rejects_Empty_Prompt_Without_Calling_Upstream(t *testing.T) {
	req := require.New(t)
	service, _ := newGenerateFixture(t)

	tests := []struct {
		description string
		prompt      string
	}{
		{"Should reject a missing prompt", ""},
		{"Should reject a whitespace-only prompt", "   \t"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			_, err := service.Generate(context.Background(), GenerateCommand{Prompt: tt.prompt})
			req.ErrorIs(err, apperrors.ErrEmptyPrompt)
		})
	}
}

func Test_Generate_Prepends_Emergency_Notice_On_Flagged_Prompt(t *testing.T) {
	req := require.New(t)
	service, generator := newGenerateFixture(t)
	generator.EXPECT().Generate(gomock.Any(), "test persona", gomock.Any()).
		Return("Please seek urgent evaluation.", nil)

	text, err := service.Generate(context.Background(), GenerateCommand{
		Prompt: "I have chest pain, what could it be?",
	})
	req.NoError(err)
	req.True(strings.HasPrefix(text, safety.EmergencyNotice))
	req.Contains(text, "Please seek urgent evaluation.")
}

func Test_Generate_Leaves_Unflagged_Reply_Untouched(t *testing.T) {
	req := require.New(t)
	service, generator := newGenerateFixture(t)
	generator.EXPECT().Generate(gomock.Any(), "test persona", gomock.Any()).Return("A", nil)

	text, err := service.Generate(context.Background(), GenerateCommand{Prompt: "What is aspirin?"})
	req.NoError(err)
	req.Equal("A", text)
}

func Test_Generate_Propagates_Upstream_Errors(t *testing.T) {
	req := require.New(t)
	service, generator := newGenerateFixture(t)
	wrapped := fmt.Errorf("calling model: %w", apperrors.ErrUpstreamCall)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("", wrapped)

	_, err := service.Generate(context.Background(), GenerateCommand{Prompt: "P"})
	req.ErrorIs(err, apperrors.ErrUpstreamCall)
}

func Test_Default_Persona_Is_Used_When_None_Configured(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	generator := mocks.NewMockIGenerator(ctrl)
	screener, err := safety.NewScreener(safety.DefaultEmergencyTerms)
	req.NoError(err)
	service := NewGenerateService(slog.Default(), generator, &screener, "")

	generator.EXPECT().Generate(gomock.Any(), DefaultPersona, gomock.Any()).Return("A", nil)
	_, err = service.Generate(context.Background(), GenerateCommand{Prompt: "P"})
	req.NoError(err)
}
