package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"vitamed/domain"
	apperrors "vitamed/errors"
	"vitamed/observability"
	"vitamed/services"
)

var validate = validator.New()

// GenerateRequest is the relay's single-call input contract.
type GenerateRequest struct {
	Prompt  string        `json:"prompt" validate:"required"`
	History []TurnPayload `json:"history" validate:"omitempty,dive"`
}

// TurnPayload restricts history roles at the boundary; unexpected role
// values are rejected instead of being forwarded upstream.
type TurnPayload struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Server is the stateless relay: one POST /generate per user turn plus a
// health probe. No conversation identifiers ever cross this boundary.
type Server struct {
	log             *slog.Logger
	generateService services.IGenerateService
	monitoring      *observability.MonitoringManager
	statusLine      string
}

func NewServer(log *slog.Logger, generateService services.IGenerateService,
	monitoring *observability.MonitoringManager) *Server {
	return &Server{
		log:             log,
		generateService: generateService,
		monitoring:      monitoring,
		statusLine:      "VitaMed relay is online",
	}
}

// Routes wires the handlers behind the origin allow-list. The CORS check
// runs before any body processing.
func (s *Server) Routes(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/", s.handleHealth)
	return NewCORSPolicy(s.log, allowedOrigins).Wrap(mux)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.monitoring.RecordRequest()

	var request GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if err := validate.Struct(request); err != nil {
		mapped := mapValidationError(err)
		writeError(w, apperrors.MapToHTTPStatus(mapped), mapped.Error())
		return
	}

	history := lo.Map(request.History, func(turn TurnPayload, _ int) domain.Turn {
		return domain.Turn{Role: domain.Role(turn.Role), Content: turn.Content}
	})

	text, err := s.generateService.Generate(r.Context(), services.GenerateCommand{
		Prompt:  request.Prompt,
		History: history,
	})
	if err != nil {
		s.log.Error("Generate failed", "error", err)
		writeError(w, apperrors.MapToHTTPStatus(err), publicMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{Text: text})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.monitoring.Snapshot(s.statusLine))
}

// mapValidationError folds validator output into the relay's error taxonomy:
// a missing prompt and a malformed history entry are the only two cases.
func mapValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			if fieldError.Field() == "Prompt" {
				return apperrors.ErrEmptyPrompt
			}
		}
		return apperrors.ErrInvalidHistory
	}
	return apperrors.ErrInvalidHistory
}

// publicMessage keeps configuration details away from callers while still
// embedding upstream causes the user can act on.
func publicMessage(err error) string {
	if errors.Is(err, apperrors.ErrMissingCredential) {
		return apperrors.ErrMissingCredential.Error()
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
