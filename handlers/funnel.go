// ABOUTME: HTTP handlers for funnel leakage analysis
// ABOUTME: Stage drop-off with benchmark gaps, and model-backed funnel and stage diagnoses

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

// fallbackAnswer carries a fallback diagnosis out of a cached computation so
// it is served without being cached.
type fallbackAnswer struct {
	value interface{}
}

func (fallbackAnswer) Error() string { return "fallback diagnosis" }

// decodeFunnelInput reads a measured journey. When allowEmpty is set an
// empty body means the sample journey.
func (h *Handler) decodeFunnelInput(w http.ResponseWriter, r *http.Request, allowEmpty bool) (models.FunnelInput, bool) {
	var input models.FunnelInput
	if err := decodeJSON(w, r, &input); err != nil {
		if !(allowEmpty && errors.Is(err, errEmptyBody)) {
			h.writeDecodeError(w, err)
			return input, false
		}
		input = services.SampleFunnelInput()
	}

	if err := services.ValidateFunnelInput(input); err != nil {
		h.writeValidationError(w, err)
		return input, false
	}
	return input, true
}

// SampleFunnel returns the leakage report for the sample journey.
func (h *Handler) SampleFunnel(w http.ResponseWriter, r *http.Request) {
	report := services.AnalyzeLeakage(services.SampleFunnelInput())
	h.metrics.ObserveCalculation("funnel")
	h.writeJSON(w, http.StatusOK, report)
}

// Funnel returns the leakage report for a measured journey.
func (h *Handler) Funnel(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeFunnelInput(w, r, false)
	if !ok {
		return
	}

	report := services.AnalyzeLeakage(input)
	h.metrics.ObserveCalculation("funnel")
	h.writeJSON(w, http.StatusOK, report)
}

// AnalyzeFunnel diagnoses a whole journey, or the sample when the body is
// empty. Model answers are cached; fallbacks are not.
func (h *Handler) AnalyzeFunnel(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeFunnelInput(w, r, true)
	if !ok {
		return
	}

	resp, err := h.cached(w, "funnel-analysis", input, func() (interface{}, error) {
		analysis := h.analyst.AnalyzeFunnel(r.Context(), services.BuildFunnel(input))
		h.metrics.ObserveFunnelAnalysis("funnel", analysis.IsFallback)
		if analysis.IsFallback {
			return nil, fallbackAnswer{analysis}
		}
		return analysis, nil
	})
	var fb fallbackAnswer
	if errors.As(err, &fb) {
		resp, err = fb.value, nil
	}
	if err != nil {
		slog.Error("Funnel analysis failed", "error", err)
		h.writeError(w, "Funnel analysis failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// stageAnalysisKey identifies a cached stage diagnosis.
type stageAnalysisKey struct {
	Stage string
	Input models.FunnelInput
}

// AnalyzeStage diagnoses one stage of a journey, or of the sample when the
// body is empty.
func (h *Handler) AnalyzeStage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := services.ValidateStageKey(key); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	input, ok := h.decodeFunnelInput(w, r, true)
	if !ok {
		return
	}

	resp, err := h.cached(w, "stage-analysis", stageAnalysisKey{Stage: key, Input: input}, func() (interface{}, error) {
		analysis, err := h.analyst.AnalyzeStage(r.Context(), services.BuildFunnel(input), key)
		if err != nil {
			return nil, err
		}
		h.metrics.ObserveFunnelAnalysis("stage", analysis.IsFallback)
		if analysis.IsFallback {
			return nil, fallbackAnswer{analysis}
		}
		return analysis, nil
	})
	var fb fallbackAnswer
	switch {
	case errors.As(err, &fb):
		resp = fb.value
	case errors.Is(err, services.ErrUnknownStage):
		h.writeError(w, "Stage not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("Stage analysis failed", "stage", key, "error", err)
		h.writeError(w, "Stage analysis failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}
