// ABOUTME: Terminal renderers for funnel leakage reports and diagnoses
// ABOUTME: Stage bars colored by health, benchmark gaps and model or fallback advice

package report

import (
	"fmt"
	"strings"

	"github.com/markalston/cod-profit-simulator/cli/internal/styles"
	"github.com/markalston/cod-profit-simulator/models"
)

func healthLevel(health string) styles.Level {
	switch health {
	case models.StageCritical:
		return styles.LevelCritical
	case models.StageWarning:
		return styles.LevelWarning
	default:
		return styles.LevelOK
	}
}

// Funnel renders a leakage report.
func Funnel(r models.LeakageReport) string {
	var b strings.Builder
	f := r.Funnel

	heading(&b, "Funnel leakage")
	row(&b, "Period", f.TimeRange)
	row(&b, "Overall conversion", fmt.Sprintf("%s (benchmark %s)", Percent(f.TotalConversionRate), Percent(f.BenchmarkConversionRate)))

	b.WriteString("\n")
	top := 1
	if len(f.Stages) > 0 && f.Stages[0].Users > 0 {
		top = f.Stages[0].Users
	}
	for _, s := range f.Stages {
		share := float64(s.Users) / float64(top) * 100
		line := fmt.Sprintf("%-20s %s %8s", s.Name, styles.RateBar(share, 20), Count(s.Users))
		if s.DropOff > 0 {
			line += "  " + styles.ForLevel(healthLevel(s.Health)).Render(fmt.Sprintf("-%s (%d%%)", Count(s.DropOff), s.DropOffRate))
		}
		if s.Key == r.WorstStage {
			line += "  " + styles.StatusCritical.Render("worst leak")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(r.Benchmarks) > 0 {
		b.WriteString("\n")
		heading(&b, "Against industry benchmarks")
		for _, bm := range r.Benchmarks {
			gap := fmt.Sprintf("%+.1f pts", bm.Gap)
			level := styles.LevelOK
			if bm.Below {
				level = styles.LevelWarning
			}
			fmt.Fprintf(&b, "%-26s %7s vs %7s  %s\n", bm.Transition, Percent(bm.Conversion), Percent(bm.Benchmark), styles.ForLevel(level).Render(gap))
		}
	}
	return b.String()
}

func fallbackNote(b *strings.Builder, fallback bool) {
	if fallback {
		b.WriteString(styles.Subtitle.Render("Generic guidance: no model answer was available."))
		b.WriteString("\n")
	}
}

// FunnelAnalysis renders a whole-funnel diagnosis.
func FunnelAnalysis(a models.FunnelAnalysis) string {
	var b strings.Builder
	heading(&b, "Funnel diagnosis")
	fallbackNote(&b, a.IsFallback)
	b.WriteString(a.Summary)
	b.WriteString("\n")

	if len(a.CriticalIssues) > 0 {
		b.WriteString("\n")
		for _, issue := range a.CriticalIssues {
			level := styles.LevelWarning
			if strings.EqualFold(issue.Severity, "critical") {
				level = styles.LevelCritical
			}
			b.WriteString(styles.StatusText(fmt.Sprintf("%s [%s] %s", issue.Stage, issue.Severity, issue.Impact), level))
			b.WriteString("\n")
		}
	}

	if a.RevenueImpact.Potential != "" || a.RevenueImpact.Uplift != "" {
		b.WriteString("\n")
		row(&b, "Revenue potential", a.RevenueImpact.Potential)
		row(&b, "Uplift", styles.StatusOK.Render(a.RevenueImpact.Uplift))
	}
	return b.String()
}

// StageAnalysis renders a single-stage diagnosis.
func StageAnalysis(a models.StageAnalysis) string {
	var b strings.Builder
	heading(&b, "Stage diagnosis: "+a.Stage)
	fallbackNote(&b, a.IsFallback)

	if len(a.RootCauses) > 0 {
		b.WriteString(styles.Subtitle.Render("Likely causes"))
		b.WriteString("\n")
		for _, c := range a.RootCauses {
			fmt.Fprintf(&b, "  • %s\n", c)
		}
	}

	for i, r := range a.Recommendations {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%d. %s  %s impact, %s effort\n", i+1, styles.ValueStyle.Render(r.Title), impact(r.Impact), r.Effort)
		fmt.Fprintf(&b, "   %s\n", r.What)
		fmt.Fprintf(&b, "   %s\n", styles.Subtitle.Render(r.Why))
	}
	return b.String()
}
