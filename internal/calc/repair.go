package calc

import (
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/pricing"
)

// Repair surcharge constants. Systems 15 years or older carry a parts
// availability premium; after-hours dispatch bills at a quarter over.
const (
	repairAgeThreshold     = 15.0
	repairAgeFactor        = 1.1
	repairAfterHoursFactor = 1.25
)

// RepairCostInput holds the instant-repair questionnaire fields.
type RepairCostInput struct {
	SystemType string `json:"system_type"`
	Severity   string `json:"severity"`
	SystemAge  Flex   `json:"system_age"`
	AfterHours bool   `json:"after_hours"`
}

// RepairCostResult is the computed repair cost band.
type RepairCostResult struct {
	Estimate         CostRange `json:"estimate"`
	AgeFactor        float64   `json:"age_factor"`
	AfterHoursFactor float64   `json:"after_hours_factor"`
}

// RepairCost scales the base band for a system and severity by the
// regional cost factor, the age surcharge, and the after-hours surcharge.
func RepairCost(in RepairCostInput, loc localization.Localization) (RepairCostResult, error) {
	st, ok := pricing.ParseSystemType(in.SystemType)
	if !ok {
		return RepairCostResult{}, badEnum("system_type", in.SystemType)
	}
	sev, ok := pricing.ParseSeverity(in.Severity)
	if !ok {
		return RepairCostResult{}, badEnum("severity", in.Severity)
	}

	band := pricing.Repair(st, sev)

	ageFactor := 1.0
	if in.SystemAge.V() >= repairAgeThreshold {
		ageFactor = repairAgeFactor
	}
	afterHoursFactor := 1.0
	if in.AfterHours {
		afterHoursFactor = repairAfterHoursFactor
	}

	multiplier := loc.CostFactor * ageFactor * afterHoursFactor

	return RepairCostResult{
		Estimate:         costRange(band.Min*multiplier, band.Max*multiplier),
		AgeFactor:        ageFactor,
		AfterHoursFactor: afterHoursFactor,
	}, nil
}
