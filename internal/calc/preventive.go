package calc

import (
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/pricing"
)

// PreventiveROIInput holds the preventive-vs-reactive questionnaire fields.
type PreventiveROIInput struct {
	PreventiveCost   Flex   `json:"preventive_cost"`
	IncidentsPerYear Flex   `json:"incidents_per_year"`
	AvgEmergencyCost Flex   `json:"avg_emergency_cost"`
	ComplianceRisk   string `json:"compliance_risk"`
}

// PreventiveROIResult is the computed comparison. PaybackMonths and
// ROIPercent are omitted when the plan does not save money.
type PreventiveROIResult struct {
	ReactiveBase   float64  `json:"reactive_base"`
	ComplianceCost float64  `json:"compliance_cost"`
	TotalReactive  float64  `json:"total_reactive"`
	AnnualSavings  float64  `json:"annual_savings"`
	ROIPercent     *float64 `json:"roi_percent,omitempty"`
	PaybackMonths  *float64 `json:"payback_months,omitempty"`
}

// PreventiveROI compares an annual preventive-maintenance contract
// against expected reactive repair spend. Emergency cost is regionally
// adjusted; the compliance-risk factor uplifts reactive exposure.
func PreventiveROI(in PreventiveROIInput, loc localization.Localization) (PreventiveROIResult, error) {
	rl, ok := pricing.ParseRiskLevel(in.ComplianceRisk)
	if !ok {
		return PreventiveROIResult{}, badEnum("compliance_risk", in.ComplianceRisk)
	}

	factor := pricing.ComplianceFactor(rl)
	reactiveBase := in.IncidentsPerYear.V() * in.AvgEmergencyCost.V() * loc.CostFactor
	complianceCost := reactiveBase * factor
	totalReactive := reactiveBase * (1 + factor)

	preventive := in.PreventiveCost.V()
	savings := totalReactive - preventive

	result := PreventiveROIResult{
		ReactiveBase:   finite(round2(reactiveBase)),
		ComplianceCost: finite(round2(complianceCost)),
		TotalReactive:  finite(round2(totalReactive)),
		AnnualSavings:  finite(round2(savings)),
	}

	if savings > 0 && preventive > 0 {
		roi := round2(savings / preventive * 100)
		payback := round2(preventive / (savings / 12))
		result.ROIPercent = &roi
		result.PaybackMonths = &payback
	}

	return result, nil
}
