package calc

import (
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/pricing"
)

// EnergySavingsInput holds the upgrade questionnaire fields.
type EnergySavingsInput struct {
	UpgradeType  string `json:"upgrade_type"`
	BuildingType string `json:"building_type"`
	MonthlyBill  Flex   `json:"monthly_bill"`
}

// EnergySavingsResult is the computed upgrade economics. PaybackYears is
// omitted when annual savings are zero or negative.
type EnergySavingsResult struct {
	UpgradeCost   float64  `json:"upgrade_cost"`
	AnnualSavings float64  `json:"annual_savings"`
	PaybackYears  *float64 `json:"payback_years,omitempty"`
	ROIPercent    float64  `json:"roi_percent"`
}

// EnergySavings estimates upgrade cost, annual bill savings, simple
// payback, and first-year ROI.
func EnergySavings(in EnergySavingsInput, loc localization.Localization) (EnergySavingsResult, error) {
	ut, ok := pricing.ParseUpgradeType(in.UpgradeType)
	if !ok {
		return EnergySavingsResult{}, badEnum("upgrade_type", in.UpgradeType)
	}
	bt, ok := pricing.ParseBuildingType(in.BuildingType)
	if !ok {
		return EnergySavingsResult{}, badEnum("building_type", in.BuildingType)
	}

	model := pricing.Upgrade(ut)
	upgradeCost := model.BaseCost * pricing.BuildingTypeCostFactor(bt) * loc.CostFactor
	annualSavings := in.MonthlyBill.V() * model.SavingsRate * 12

	result := EnergySavingsResult{
		UpgradeCost:   finite(round2(upgradeCost)),
		AnnualSavings: finite(round2(annualSavings)),
	}

	if annualSavings > 0 && upgradeCost > 0 {
		payback := round2(upgradeCost / annualSavings)
		result.PaybackYears = &payback
		result.ROIPercent = finite(round2(annualSavings / upgradeCost * 100))
	}

	return result, nil
}
