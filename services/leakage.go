// ABOUTME: Funnel leakage analysis over customer-journey stages
// ABOUTME: Drop-off per stage, overall conversion and gaps against industry benchmarks

package services

import (
	"math"

	"github.com/markalston/cod-profit-simulator/models"
)

const (
	// BenchmarkConversionRate is the industry visit-to-purchase rate, in percent.
	BenchmarkConversionRate = 3.8
	defaultFunnelTimeRange  = "Last 30 days"

	criticalDropOffRate = 70
	warningDropOffRate  = 40
)

// IndustryBenchmark is the expected conversion between two named stages.
type IndustryBenchmark struct {
	Transition string
	From       string
	To         string
	Conversion float64 // percent
}

// IndustryBenchmarks lists e-commerce stage conversions in journey order.
var IndustryBenchmarks = []IndustryBenchmark{
	{Transition: "landing_to_product", From: "landing", To: "product_view", Conversion: 45},
	{Transition: "product_to_cart", From: "product_view", To: "add_to_cart", Conversion: 15},
	{Transition: "cart_to_checkout", From: "add_to_cart", To: "checkout_start", Conversion: 70},
	{Transition: "checkout_to_payment", From: "checkout_start", To: "payment_info", Conversion: 85},
	{Transition: "payment_to_confirmation", From: "payment_info", To: "confirmation", Conversion: 90},
	{Transition: "confirmation_to_purchase", From: "confirmation", To: "purchase", Conversion: 95},
}

// SampleFunnelInput is a representative 30-day journey used when no
// measurements are supplied.
func SampleFunnelInput() models.FunnelInput {
	return models.FunnelInput{
		TimeRange: defaultFunnelTimeRange,
		Stages: []models.FunnelStageInput{
			{Name: "Landing Page", Key: "landing", Users: 10000, TimeSpent: "45s"},
			{Name: "Product View", Key: "product_view", Users: 4200, TimeSpent: "2m 15s"},
			{Name: "Add to Cart", Key: "add_to_cart", Users: 630, TimeSpent: "1m 30s"},
			{Name: "Begin Checkout", Key: "checkout_start", Users: 441, TimeSpent: "3m 20s"},
			{Name: "Payment Info", Key: "payment_info", Users: 353, TimeSpent: "2m 45s"},
			{Name: "Confirmation", Key: "confirmation", Users: 176, TimeSpent: "5m 10s"},
			{Name: "Purchase Complete", Key: "purchase", Users: 167, TimeSpent: "30s"},
		},
	}
}

// BuildFunnel fills in drop-off and overall conversion. Each stage loses the
// users that do not reach the next one; the last stage loses none.
func BuildFunnel(in models.FunnelInput) models.FunnelData {
	data := models.FunnelData{
		Stages:                  make([]models.FunnelStage, len(in.Stages)),
		BenchmarkConversionRate: BenchmarkConversionRate,
		TimeRange:               in.TimeRange,
	}
	if data.TimeRange == "" {
		data.TimeRange = defaultFunnelTimeRange
	}

	for i, s := range in.Stages {
		stage := models.FunnelStage{
			Name:      s.Name,
			Key:       s.Key,
			Users:     s.Users,
			TimeSpent: s.TimeSpent,
		}
		if i+1 < len(in.Stages) {
			stage.DropOff = s.Users - in.Stages[i+1].Users
		}
		if s.Users > 0 {
			stage.DropOffRate = RoundHalfUp(float64(stage.DropOff) / float64(s.Users) * 100)
		}
		stage.Health = stageHealth(stage.DropOffRate)
		data.Stages[i] = stage
	}

	if n := len(in.Stages); n > 0 && in.Stages[0].Users > 0 {
		data.TotalConversionRate = roundTo(float64(in.Stages[n-1].Users)/float64(in.Stages[0].Users)*100, 2)
	}
	return data
}

func stageHealth(dropOffRate int) string {
	switch {
	case dropOffRate > criticalDropOffRate:
		return models.StageCritical
	case dropOffRate > warningDropOffRate:
		return models.StageWarning
	default:
		return models.StageHealthy
	}
}

// CompareToBenchmarks measures every adjacent stage pair that has an
// industry benchmark. Pairs without one are skipped.
func CompareToBenchmarks(data models.FunnelData) []models.StageBenchmark {
	out := []models.StageBenchmark{}
	for i := 0; i+1 < len(data.Stages); i++ {
		from, to := data.Stages[i], data.Stages[i+1]
		bench, ok := benchmarkFor(from.Key, to.Key)
		if !ok || from.Users <= 0 {
			continue
		}
		conversion := roundTo(float64(to.Users)/float64(from.Users)*100, 1)
		out = append(out, models.StageBenchmark{
			Transition: bench.Transition,
			From:       from.Key,
			To:         to.Key,
			Conversion: conversion,
			Benchmark:  bench.Conversion,
			Gap:        roundTo(conversion-bench.Conversion, 1),
			Below:      conversion < bench.Conversion,
		})
	}
	return out
}

func benchmarkFor(from, to string) (IndustryBenchmark, bool) {
	for _, b := range IndustryBenchmarks {
		if b.From == from && b.To == to {
			return b, true
		}
	}
	return IndustryBenchmark{}, false
}

// AnalyzeLeakage builds the funnel, compares it with the benchmarks and
// names the stage that loses the largest share of its users.
func AnalyzeLeakage(in models.FunnelInput) models.LeakageReport {
	data := BuildFunnel(in)
	report := models.LeakageReport{
		Funnel:     data,
		Benchmarks: CompareToBenchmarks(data),
	}

	worst := -1
	for i, s := range data.Stages {
		if i+1 == len(data.Stages) {
			break
		}
		if worst < 0 || s.DropOffRate > data.Stages[worst].DropOffRate {
			worst = i
		}
	}
	if worst >= 0 {
		report.WorstStage = data.Stages[worst].Key
	}
	return report
}

// roundTo rounds x half away from zero to the given number of decimals.
func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
