package calc

import (
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/pricing"
)

// Extension factor bounds: even minimal preventive spend extends life a
// little, and no amount of spend more than 40%.
const (
	minExtensionFactor = 0.10
	maxExtensionFactor = 0.40
	extensionSlope     = 0.40 // factor earned at 100% of recommended spend
)

// AssetLifecycleInput holds the lifecycle questionnaire fields.
type AssetLifecycleInput struct {
	AssetType          string `json:"asset_type"`
	CurrentAnnualSpend Flex   `json:"current_annual_spend"`
}

// AssetLifecycleResult is the computed life-extension model.
type AssetLifecycleResult struct {
	ReplacementCost  float64 `json:"replacement_cost"`
	ExpectedLife     float64 `json:"expected_life_years"`
	RecommendedSpend float64 `json:"recommended_annual_spend"`
	SpendRatio       float64 `json:"spend_ratio"`
	ExtensionFactor  float64 `json:"extension_factor"`
	ExtendedLife     float64 `json:"extended_life_years"`
	AddedYears       float64 `json:"added_years"`
	DeferredCapex    float64 `json:"deferred_capex"`
}

// AssetLifecycle estimates how preventive-maintenance spend extends an
// asset's service life and the capital expense deferred by the added
// years. The actual-to-recommended spend ratio earns an extension
// factor, clamped to [0.10, 0.40]; replacement cost is regionally
// adjusted by the ZIP cost factor.
func AssetLifecycle(in AssetLifecycleInput, loc localization.Localization) (AssetLifecycleResult, error) {
	at, ok := pricing.ParseAssetType(in.AssetType)
	if !ok {
		return AssetLifecycleResult{}, badEnum("asset_type", in.AssetType)
	}

	model := pricing.Asset(at)
	replacementCost := model.ReplacementCost * loc.CostFactor
	recommended := replacementCost * model.RecommendedPMRate

	var ratio float64
	if recommended > 0 {
		ratio = in.CurrentAnnualSpend.V() / recommended
	}

	extension := clamp(extensionSlope*ratio, minExtensionFactor, maxExtensionFactor)
	addedYears := model.ExpectedLifeYears * extension
	extendedLife := model.ExpectedLifeYears * (1 + extension)

	var deferred float64
	if model.ExpectedLifeYears > 0 {
		deferred = replacementCost / model.ExpectedLifeYears * addedYears
	}

	return AssetLifecycleResult{
		ReplacementCost:  finite(round2(replacementCost)),
		ExpectedLife:     model.ExpectedLifeYears,
		RecommendedSpend: finite(round2(recommended)),
		SpendRatio:       finite(round2(ratio)),
		ExtensionFactor:  extension,
		ExtendedLife:     finite(round2(extendedLife)),
		AddedYears:       finite(round2(addedYears)),
		DeferredCapex:    finite(round2(deferred)),
	}, nil
}
