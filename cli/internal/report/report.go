// ABOUTME: Human-readable renderers for simulator results
// ABOUTME: Formats metrics, break-even, scenarios, advice, budgets and history for the terminal

package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/markalston/cod-profit-simulator/cli/internal/styles"
	"github.com/markalston/cod-profit-simulator/models"
)

// Money formats an amount with thousands separators and two decimals.
func Money(v float64) string {
	return humanize.CommafWithDigits(round2(v), 2)
}

// Count formats a whole number with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// SignedMoney formats a delta with an explicit sign and colors it.
func SignedMoney(v float64) string {
	text := Money(v)
	if v > 0 {
		text = "+" + text
	}
	return styles.Signed(v, text)
}

func round2(v float64) float64 {
	if v < 0 {
		return -float64(int64(-v*100+0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", styles.Label.Render(label), value)
}

func heading(b *strings.Builder, title string) {
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
}

// Simulation renders a full simulation response.
func Simulation(resp models.SimulationResponse) string {
	var b strings.Builder
	m := resp.Metrics

	heading(&b, "Funnel")
	row(&b, "Leads", Count(m.Leads))
	row(&b, "Confirmed orders", fmt.Sprintf("%s  %s", Count(m.ConfirmedOrders), styles.RateBar(resp.Input.ConfirmationRate, 20)))
	row(&b, "Delivered orders", fmt.Sprintf("%s  %s", Count(m.DeliveredOrders), styles.RateBar(resp.Input.DeliveryRate, 20)))
	row(&b, "Returned orders", Count(m.ReturnedOrders))
	row(&b, "Units shipped", Count(m.TotalUnits))

	b.WriteString("\n")
	heading(&b, "Costs")
	row(&b, "Ads", Money(m.AdCost))
	if resp.Input.AdCurrency == models.CurrencyUSD {
		row(&b, "Ads (USD)", Money(m.AdCostUSD))
	}
	row(&b, "Product", Money(m.TotalProductCost))
	row(&b, "Shipping", Money(m.TotalShippingCost))
	row(&b, "Confirmation", Money(m.TotalConfirmationCost))
	returns := Money(m.TotalReturnCost)
	if !m.Breakdown.ReturnCostIncluded {
		returns += styles.Subtitle.Render(" (excluded)")
	}
	row(&b, "Returns", returns)
	row(&b, "Other", Money(m.Breakdown.OtherCosts))
	row(&b, "Total cost", styles.ValueStyle.Render(Money(m.TotalCost)))

	b.WriteString("\n")
	heading(&b, "Profitability")
	row(&b, "Revenue", styles.ValueStyle.Render(Money(m.Revenue)))
	row(&b, "Profit", styles.Signed(m.Profit, Money(m.Profit)))
	row(&b, "Margin", Percent(m.Margin))
	row(&b, "ROI", Percent(m.ROI))
	row(&b, "Avg revenue / order", Money(m.AvgRevenuePerOrder))
	row(&b, "Real cost / delivered", Money(m.RealCostPerDeliveredOrder))
	row(&b, "Effective CPL", Money(m.EffectiveCPL))

	if len(m.Breakdown.Tiers) > 1 {
		b.WriteString("\n")
		heading(&b, "Offer mix")
		for _, t := range m.Breakdown.Tiers {
			row(&b, t.Name, fmt.Sprintf("%s orders x %d @ %s = %s", Count(t.OrderCount), t.Qty, Money(t.Price), Money(t.Revenue)))
		}
		if !m.Breakdown.TiersReconciled {
			b.WriteString(styles.StatusText("Tier order counts do not add up to delivered orders", styles.LevelWarning))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(BreakEven(resp.BreakEven))
	return b.String()
}

// BreakEven renders break-even volumes and reverse-solved thresholds.
func BreakEven(be models.BreakEvenResult) string {
	var b strings.Builder
	heading(&b, "Break-even")

	if !be.Outcome.Reachable {
		b.WriteString(styles.StatusText("Break-even is unreachable: each order loses money", styles.LevelCritical))
		b.WriteString("\n")
		row(&b, "Margin / order", Money(be.ContributionMargin))
		return b.String()
	}

	row(&b, "Delivered orders", Count(be.BreakEvenOrders))
	row(&b, "Confirmed orders", Count(be.BreakEvenConfirmed))
	row(&b, "Leads", Count(be.BreakEvenLeads))
	row(&b, "Margin / order", Money(be.ContributionMargin))
	row(&b, "Max CPL", Money(be.MaxCPL))
	row(&b, "Min delivery rate", threshold(be.MinDeliveryRate))
	row(&b, "Min confirmation rate", threshold(be.MinConfirmationRate))
	row(&b, "Safety margin", Percent(be.SafetyMargin))

	if be.IsProfitable {
		b.WriteString(styles.StatusText("Profitable at current volume", styles.LevelOK))
	} else {
		b.WriteString(styles.StatusText("Below break-even at current volume", styles.LevelWarning))
	}
	b.WriteString("\n")
	return b.String()
}

func threshold(v float64) string {
	if v > 100 {
		return styles.StatusCritical.Render(Percent(v) + " (impossible)")
	}
	return Percent(v)
}

// Scenarios renders the three generated what-if scenarios side by side.
func Scenarios(set models.ScenarioSet) string {
	var b strings.Builder
	heading(&b, "What-if scenarios")
	fmt.Fprintf(&b, "%-14s %12s %12s %10s %8s\n", "", "Revenue", "Profit", "Margin", "ROI")
	for _, r := range []models.ScenarioResult{set.Conservative, set.Realistic, set.Aggressive} {
		fmt.Fprintf(&b, "%-14s %12s %12s %10s %8s\n",
			r.Name, Money(r.Metrics.Revenue), Money(r.Metrics.Profit), Percent(r.Metrics.Margin), Percent(r.Metrics.ROI))
	}
	return b.String()
}

// Comparison renders user-defined scenarios against the baseline.
func Comparison(c models.ScenarioComparison) string {
	var b strings.Builder
	heading(&b, "Scenario comparison")
	row(&b, "Baseline", fmt.Sprintf("%s (profit %s)", c.Baseline.Name, Money(c.Baseline.Metrics.Profit)))
	row(&b, "Best", fmt.Sprintf("%s (profit %s)", c.Best.Name, Money(c.Best.Metrics.Profit)))
	if len(c.Deltas) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	for _, d := range c.Deltas {
		fmt.Fprintf(&b, "%s\n", styles.ValueStyle.Render(d.Name))
		row(&b, "  Profit", SignedMoney(d.ProfitChange))
		row(&b, "  Revenue", SignedMoney(d.RevenueChange))
		row(&b, "  Cost", SignedMoney(d.CostChange))
		row(&b, "  Margin", fmt.Sprintf("%+.1f pt", d.MarginChangePt))
		row(&b, "  Delivered orders", fmt.Sprintf("%+d", d.OrdersChange))
	}
	return b.String()
}

// Advice renders advisory warnings and tips.
func Advice(r models.AdviceReport) string {
	var b strings.Builder
	heading(&b, "Advisor")
	row(&b, "Current CPL", Money(r.CurrentCPL))
	row(&b, "Break-even CPL", Money(r.BreakEvenCPL))

	if len(r.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range r.Warnings {
			level := styles.LevelWarning
			if w.Severity == models.SeverityCritical {
				level = styles.LevelCritical
			}
			b.WriteString(styles.StatusText(w.Message, level))
			b.WriteString("\n")
		}
	}
	if len(r.Advice) > 0 {
		b.WriteString("\n")
		for _, a := range r.Advice {
			b.WriteString(styles.StatusText(a, styles.LevelInfo))
			b.WriteString("\n")
		}
	}
	if len(r.Warnings) == 0 && len(r.Advice) == 0 {
		b.WriteString(styles.StatusText("No issues found", styles.LevelOK))
		b.WriteString("\n")
	}
	return b.String()
}

// Levers renders the ranked profit levers.
func Levers(levers []models.ProfitLever) string {
	var b strings.Builder
	heading(&b, "Profit levers")
	for i, l := range levers {
		fmt.Fprintf(&b, "%d. %-28s %14s  %s\n", i+1, l.Name, SignedMoney(l.ProfitIncrease), impact(l.ImpactLabel))
	}
	return b.String()
}

func impact(label string) string {
	switch label {
	case models.ImpactHigh:
		return styles.StatusOK.Render(label)
	case models.ImpactMedium:
		return styles.StatusWarning.Render(label)
	default:
		return styles.Subtitle.Render(label)
	}
}

// Budget renders a budget plan with its outcome range and unit break-even.
func Budget(resp models.BudgetPlanResponse) string {
	var b strings.Builder
	p := resp.Plan

	heading(&b, "Budget plan")
	row(&b, "CPL", Money(p.CPL))
	row(&b, "Daily budget", Money(p.DailyBudget))
	row(&b, "Leads", Count(p.TotalLeads))
	row(&b, "Confirmed orders", Count(p.ConfirmedOrders))
	row(&b, "Delivered orders", Count(p.DeliveredOrders))
	row(&b, "Returned orders", Count(p.ReturnedOrders))
	row(&b, "Revenue", Money(p.Financials.Revenue))
	row(&b, "Costs", Money(p.Financials.Costs))
	row(&b, "Profit", styles.Signed(p.Financials.Profit, Money(p.Financials.Profit)))
	row(&b, "ROI", Percent(p.Financials.ROI))
	row(&b, "Margin", Percent(p.Financials.Margin))

	if len(p.Channels) > 0 {
		b.WriteString("\n")
		heading(&b, "Channels")
		for _, name := range []string{"facebook", "tiktok"} {
			ch, ok := p.Channels[name]
			if !ok {
				continue
			}
			row(&b, name, fmt.Sprintf("budget %s, %s leads, %s delivered, profit %s",
				Money(ch.Budget), Count(ch.Leads), Count(ch.Delivered), Money(ch.Profit)))
		}
	}

	b.WriteString("\n")
	heading(&b, "Outcome range")
	for _, o := range []struct {
		name string
		out  models.BudgetOutcome
	}{
		{"Best", resp.Scenarios.Best},
		{"Expected", resp.Scenarios.Expected},
		{"Worst", resp.Scenarios.Worst},
	} {
		row(&b, o.name, fmt.Sprintf("%s delivered, profit %s, ROI %s",
			Count(o.out.Delivered), styles.Signed(o.out.Profit, Money(o.out.Profit)), Percent(o.out.ROI)))
	}

	b.WriteString("\n")
	heading(&b, "Unit break-even")
	row(&b, "Profit / order", Money(resp.BreakEven.ProfitPerOrder))
	row(&b, "Max CPL", Money(resp.BreakEven.MaxCPL))
	if resp.BreakEven.IsProfitableUnit {
		row(&b, "Min delivered orders", Count(resp.BreakEven.MinDeliveredOrders))
	} else {
		b.WriteString(styles.StatusText("Each delivered order loses money", styles.LevelCritical))
		b.WriteString("\n")
	}
	return b.String()
}

// Strategies renders the conservative, balanced and aggressive strategies.
func Strategies(s models.BudgetStrategies) string {
	var b strings.Builder
	heading(&b, "Budget strategies")
	for _, st := range []models.BudgetStrategy{s.Conservative, s.Balanced, s.Aggressive} {
		title := st.Title
		if st.IsRecommended {
			title += " " + styles.StatusOK.Render("(recommended)")
		}
		fmt.Fprintf(&b, "%s\n", styles.ValueStyle.Render(title))
		row(&b, "  CPL", Money(st.CPL))
		row(&b, "  Leads / delivered", fmt.Sprintf("%s / %s", Count(st.Leads), Count(st.Delivered)))
		row(&b, "  Profit", styles.Signed(st.Profit, Money(st.Profit)))
		row(&b, "  ROI", Percent(st.ROI))
		row(&b, "  Risk", fmt.Sprintf("%s, %d%% success", st.Risk, st.SuccessRate))
		if st.GoalMet {
			b.WriteString(styles.StatusText("Meets profit goal", styles.LevelOK))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Markets renders the market presets.
func Markets(markets []models.Market) string {
	var b strings.Builder
	heading(&b, "Markets")
	for _, m := range markets {
		d := m.Defaults
		fmt.Fprintf(&b, "%-4s %-20s %-4s price %s, CPL %s, confirm %s, deliver %s\n",
			m.ID, m.Name, m.Currency, Money(d.ProductPrice), Money(d.CostPerLead),
			Percent(d.ConfirmationRate), Percent(d.DeliveryRate))
	}
	return b.String()
}

// History renders saved runs, newest first.
func History(items []models.HistoryItem) string {
	var b strings.Builder
	heading(&b, "Saved runs")
	if len(items) == 0 {
		b.WriteString(styles.Subtitle.Render("No saved runs"))
		b.WriteString("\n")
		return b.String()
	}
	for _, it := range items {
		fmt.Fprintf(&b, "%s  %-24s profit %s, margin %s, %s\n",
			styles.Subtitle.Render(it.ID),
			it.Name,
			styles.Signed(it.Metrics.Profit, Money(it.Metrics.Profit)),
			Percent(it.Metrics.Margin),
			humanize.Time(it.Timestamp))
	}
	return b.String()
}

// Insights renders trend insights across saved runs.
func Insights(insights []models.HistoryInsight) string {
	var b strings.Builder
	heading(&b, "Insights")
	if len(insights) == 0 {
		b.WriteString(styles.Subtitle.Render("Save at least two runs to see trends"))
		b.WriteString("\n")
		return b.String()
	}
	for _, in := range insights {
		level := styles.LevelInfo
		switch in.Type {
		case models.InsightPositive, models.InsightSuccess:
			level = styles.LevelOK
		case models.InsightNegative:
			level = styles.LevelCritical
		}
		b.WriteString(styles.StatusText(in.Message, level))
		b.WriteString("\n")
	}
	return b.String()
}
