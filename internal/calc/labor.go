package calc

import (
	"github.com/elric-cpu/website-v4-api/internal/localization"
)

// LaborSavingsInput holds the work-order efficiency questionnaire
// fields. EfficiencyGainPercent is entered as a whole percentage.
type LaborSavingsInput struct {
	OrdersPerMonth        Flex `json:"orders_per_month"`
	HoursPerOrder         Flex `json:"hours_per_order"`
	HourlyRate            Flex `json:"hourly_rate"`
	EfficiencyGainPercent Flex `json:"efficiency_gain_percent"`
}

// LaborSavingsResult is the computed annual labor picture.
type LaborSavingsResult struct {
	AnnualHours float64 `json:"annual_hours"`
	AnnualCost  float64 `json:"annual_cost"`
	SavedHours  float64 `json:"saved_hours"`
	SavedCost   float64 `json:"saved_cost"`
}

// LaborSavings estimates the hours and cost saved by an efficiency gain
// on recurring work orders. The hourly rate is regionally adjusted, and
// saved cost uses the same adjusted rate.
func LaborSavings(in LaborSavingsInput, loc localization.Localization) (LaborSavingsResult, error) {
	annualHours := in.OrdersPerMonth.V() * in.HoursPerOrder.V() * 12
	adjustedRate := in.HourlyRate.V() * loc.CostFactor
	annualCost := annualHours * adjustedRate

	gain := in.EfficiencyGainPercent.V() / 100
	savedHours := annualHours * gain
	savedCost := savedHours * adjustedRate

	return LaborSavingsResult{
		AnnualHours: finite(round2(annualHours)),
		AnnualCost:  finite(round2(annualCost)),
		SavedHours:  finite(round2(savedHours)),
		SavedCost:   finite(round2(savedCost)),
	}, nil
}
