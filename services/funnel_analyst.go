// ABOUTME: Model-backed diagnoses of funnel leakage
// ABOUTME: Whole-funnel and single-stage analysis with fixed fallbacks when the model is absent or fails

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"github.com/markalston/cod-profit-simulator/models"
)

// ErrUnknownStage is returned when a stage key is not in the funnel.
var ErrUnknownStage = errors.New("unknown funnel stage")

// TextGenerator answers a prompt with model text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FunnelAnalyst asks a language model to diagnose a funnel. Without a
// generator every answer is the fallback.
type FunnelAnalyst struct {
	gen     TextGenerator
	timeout time.Duration
}

// NewFunnelAnalyst creates an analyst. gen may be nil; timeout bounds each
// model call when positive.
func NewFunnelAnalyst(gen TextGenerator, timeout time.Duration) *FunnelAnalyst {
	return &FunnelAnalyst{gen: gen, timeout: timeout}
}

// Enabled reports whether a model is configured.
func (a *FunnelAnalyst) Enabled() bool {
	return a != nil && a.gen != nil
}

// AnalyzeFunnel diagnoses the whole journey.
func (a *FunnelAnalyst) AnalyzeFunnel(ctx context.Context, data models.FunnelData) models.FunnelAnalysis {
	if !a.Enabled() {
		return FallbackFunnelAnalysis()
	}

	var out models.FunnelAnalysis
	if err := a.ask(ctx, funnelPrompt(data), &out); err != nil {
		slog.Warn("Funnel analysis failed, serving fallback", "error", err)
		return FallbackFunnelAnalysis()
	}
	if strings.TrimSpace(out.Summary) == "" {
		slog.Warn("Funnel analysis had no summary, serving fallback")
		return FallbackFunnelAnalysis()
	}
	if out.CriticalIssues == nil {
		out.CriticalIssues = []models.CriticalIssue{}
	}
	out.IsFallback = false
	return out
}

// AnalyzeStage diagnoses one stage, found by key.
func (a *FunnelAnalyst) AnalyzeStage(ctx context.Context, data models.FunnelData, key string) (models.StageAnalysis, error) {
	idx := -1
	for i, s := range data.Stages {
		if s.Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.StageAnalysis{}, fmt.Errorf("%w: %s", ErrUnknownStage, sanitizeForLog(key))
	}

	stage := data.Stages[idx]
	if !a.Enabled() {
		return FallbackStageAnalysis(stage.Key), nil
	}

	usersIn := stage.Users
	if idx > 0 {
		usersIn = data.Stages[idx-1].Users
	}

	var out models.StageAnalysis
	if err := a.ask(ctx, stagePrompt(stage, usersIn), &out); err != nil {
		slog.Warn("Stage analysis failed, serving fallback", "stage", stage.Key, "error", err)
		return FallbackStageAnalysis(stage.Key), nil
	}
	if len(out.Recommendations) == 0 {
		slog.Warn("Stage analysis had no recommendations, serving fallback", "stage", stage.Key)
		return FallbackStageAnalysis(stage.Key), nil
	}
	if out.RootCauses == nil {
		out.RootCauses = []string{}
	}
	out.Stage = stage.Key
	out.IsFallback = false
	return out, nil
}

func (a *FunnelAnalyst) ask(ctx context.Context, prompt string, v any) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	return decodeModelJSON(text, v)
}

// decodeModelJSON parses model output that may be wrapped in markdown
// fences or be slightly malformed.
func decodeModelJSON(text string, v any) error {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return errors.New("empty model response")
	}

	repaired, err := jsonrepair.RepairJSON(cleaned)
	if err != nil {
		return fmt.Errorf("repairing model JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("decoding model JSON: %w", err)
	}
	return nil
}

func funnelPrompt(data models.FunnelData) string {
	var b strings.Builder
	b.WriteString("You are an e-commerce conversion analyst reviewing a cash-on-delivery store's funnel.\n")
	b.WriteString("Analyze the stages below and answer with concise JSON only.\n\n")
	b.WriteString("FUNNEL (" + data.TimeRange + "):\n")
	for i, s := range data.Stages {
		fmt.Fprintf(&b, "Stage %d: %s - Users: %d, Drop-off: %d (%d%%)\n", i+1, s.Name, s.Users, s.DropOff, s.DropOffRate)
	}
	fmt.Fprintf(&b, "\nOVERALL: Conversion: %g%% (Benchmark: %g%%)\n\n", data.TotalConversionRate, data.BenchmarkConversionRate)
	b.WriteString(`Use exactly this structure:
{
  "summary": "Two sentences on overall performance.",
  "criticalIssues": [{"stage": "Stage Name", "severity": "Critical|High|Medium", "impact": "Why it matters"}],
  "revenueImpact": {"potential": "Estimated monthly revenue gain if fixed", "uplift": "+XX%"}
}
`)
	return b.String()
}

func stagePrompt(stage models.FunnelStage, usersIn int) string {
	var b strings.Builder
	b.WriteString("You are a UX specialist diagnosing drop-off at one step of a checkout funnel.\n\n")
	fmt.Fprintf(&b, "STAGE: %s\n", stage.Name)
	fmt.Fprintf(&b, "Users In: %d\n", usersIn)
	fmt.Fprintf(&b, "Users Out: %d\n", stage.Users)
	fmt.Fprintf(&b, "Drop-off: %d (%d%%)\n", stage.DropOff, stage.DropOffRate)
	if stage.TimeSpent != "" {
		fmt.Fprintf(&b, "Average time on stage: %s\n", stage.TimeSpent)
	}
	b.WriteString("\nGive 3 specific recommendations to reduce this drop-off. Answer with JSON only:\n")
	b.WriteString(`{
  "rootCauses": ["Likely cause", "Another cause"],
  "recommendations": [{"title": "Action", "what": "What to do", "why": "Why it helps", "impact": "High|Medium", "effort": "Low|High"}]
}
`)
	return b.String()
}

// FallbackFunnelAnalysis is served when no model answer is available.
func FallbackFunnelAnalysis() models.FunnelAnalysis {
	return models.FunnelAnalysis{
		Summary: "Your funnel shows significant leakage at the Product View and Payment Info stages. Fixing these could double your conversion rate.",
		CriticalIssues: []models.CriticalIssue{
			{Stage: "Product View", Severity: "Critical", Impact: "85% drop-off indicates poor product relevance or pricing."},
			{Stage: "Payment Info", Severity: "High", Impact: "50% drop-off suggests friction in the payment gateway."},
		},
		RevenueImpact: models.RevenueImpact{Potential: "MAD 45,000", Uplift: "+125%"},
		IsFallback:    true,
	}
}

// FallbackStageAnalysis is served for a stage when no model answer is available.
func FallbackStageAnalysis(stage string) models.StageAnalysis {
	return models.StageAnalysis{
		Stage:      stage,
		RootCauses: []string{"Technical friction", "Lack of trust signals", "Price shock"},
		Recommendations: []models.StageRecommendation{
			{Title: "Add Trust Badges", What: "Display security icons near CTA", Why: "Reduces anxiety", Impact: "Medium", Effort: "Low"},
			{Title: "Simplify Form", What: "Remove optional fields", Why: "Reduces cognitive load", Impact: "High", Effort: "Medium"},
		},
		IsFallback: true,
	}
}
