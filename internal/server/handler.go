package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/catalog"
	"github.com/spigell/fqhc-resume/internal/content"
	"github.com/spigell/fqhc-resume/internal/recommend"
	"github.com/spigell/fqhc-resume/internal/resume"
)

const maxBodyBytes = 1 << 20

type roleSummary struct {
	Role      string `json:"role"`
	Questions int    `json:"questions"`
}

type optionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type questionView struct {
	ID         string       `json:"id"`
	AnswerType string       `json:"answer_type"`
	Prompt     string       `json:"prompt"`
	Options    []optionView `json:"options"`
}

type questionnaire struct {
	Role      string           `json:"role"`
	Language  content.Language `json:"language"`
	Questions []questionView   `json:"questions"`
}

type recommendationRequest struct {
	Role    string         `json:"role"`
	Lang    string         `json:"lang"`
	Explain bool           `json:"explain"`
	Answers map[string]any `json:"answers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type api struct {
	builder *resume.Builder
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewHandler builds the HTTP handler for the questionnaire and recommendation endpoints.
func NewHandler(builder *resume.Builder, c *catalog.Catalog, logger *zap.Logger) (http.Handler, error) {
	if builder == nil {
		return nil, errors.New("server: builder is required")
	}
	if c == nil {
		return nil, errors.New("server: catalog is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &api{builder: builder, catalog: c, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", serveHealth)
	mux.HandleFunc("GET /api/roles", a.roles)
	mux.HandleFunc("GET /api/roles/{role}/questions", a.questions)
	mux.HandleFunc("POST /api/recommendations", a.recommendations)
	return mux, nil
}

func serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (a *api) roles(w http.ResponseWriter, _ *http.Request) {
	roles := a.catalog.Roles()
	out := make([]roleSummary, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleSummary{Role: role, Questions: len(a.catalog.Questions(role))})
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *api) questions(w http.ResponseWriter, r *http.Request) {
	lang, err := content.ParseLanguage(r.URL.Query().Get("lang"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	role := r.PathValue("role")
	questions := a.catalog.Questions(role)
	if len(questions) == 0 {
		a.writeError(w, http.StatusNotFound, fmt.Errorf("unknown role %q", role))
		return
	}

	out := questionnaire{Role: role, Language: lang, Questions: make([]questionView, 0, len(questions))}
	for _, q := range questions {
		view := questionView{
			ID:         q.ID,
			AnswerType: string(q.AnswerType),
			Prompt:     q.Prompt.In(string(lang)),
			Options:    make([]optionView, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			view.Options = append(view.Options, optionView{ID: o.ID, Label: o.Label.In(string(lang))})
		}
		out.Questions = append(out.Questions, view)
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *api) recommendations(w http.ResponseWriter, r *http.Request) {
	var body recommendationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	lang, err := content.ParseLanguage(body.Lang)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.builder.Build(r.Context(), resume.Request{
		Role:     body.Role,
		Answers:  recommend.DecodeAnswers(body.Answers),
		Language: lang,
		Explain:  body.Explain,
	})
	if err != nil {
		a.logger.Error("building recommendations", zap.String("role", body.Role), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, errors.New("failed to build recommendations"))
		return
	}

	a.writeJSON(w, http.StatusOK, result)
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Warn("writing response", zap.Error(err))
	}
}

func (a *api) writeError(w http.ResponseWriter, status int, err error) {
	a.writeJSON(w, status, errorResponse{Error: err.Error()})
}
