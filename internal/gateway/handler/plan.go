package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/alfredang/trip-advisor/internal/gateway/repository/planstore"
	"github.com/alfredang/trip-advisor/internal/gateway/service"
	"github.com/alfredang/trip-advisor/internal/trip"
)

// PlanHandler serves plan generation and download.
type PlanHandler struct {
	svc *service.Planner
}

func NewPlanHandler(svc *service.Planner) *PlanHandler {
	return &PlanHandler{svc: svc}
}

type sectionPayload struct {
	Agent string `json:"agent"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

type planPayload struct {
	PlanID    string           `json:"plan_id"`
	Filename  string           `json:"filename"`
	Markdown  string           `json:"markdown"`
	ExportURL string           `json:"export_url,omitempty"`
	Sections  []sectionPayload `json:"sections"`
}

func planPayloadFrom(rec planstore.Record) planPayload {
	sections := make([]sectionPayload, 0, len(rec.Plan.Outputs))
	for _, out := range rec.Plan.Outputs {
		sections = append(sections, sectionPayload{
			Agent: string(out.Agent),
			Label: out.Agent.Label(),
			Text:  out.Text,
		})
	}
	return planPayload{
		PlanID:    rec.ID,
		Filename:  rec.Filename,
		Markdown:  rec.Markdown,
		ExportURL: rec.ExportURL,
		Sections:  sections,
	}
}

// HandleGenerate accepts one trip request and blocks until the full
// sequence finishes.
func (h *PlanHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req trip.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	rec, err := h.svc.Generate(r.Context(), req, nil)
	if err != nil {
		writePlanError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, planPayloadFrom(rec))
}

// HandleDownload serves a stored plan as a markdown attachment.
func (h *PlanHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}
	rec, ok := h.svc.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "plan not found")
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rec.Filename+`"`)
	_, _ = w.Write([]byte(rec.Markdown))
}

// HandleHealth reports liveness.
func (h *PlanHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writePlanError(w http.ResponseWriter, err error) {
	var verr *trip.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "invalid_request", verr.Error())
		return
	}
	var uerr *trip.UpstreamError
	if errors.As(err, &uerr) {
		writeError(w, http.StatusBadGateway, "upstream_failed", "could not generate plan")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", "could not generate plan")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
