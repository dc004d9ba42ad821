package calc

import (
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/pricing"
)

// MaterialsInput holds the materials-estimator questionnaire fields.
type MaterialsInput struct {
	ProjectType string `json:"project_type"`
	AreaSqft    Flex   `json:"area_sqft"`
	QualityTier string `json:"quality_tier"`
}

// MaterialsResult is the computed quantity and cost estimate. Quantity
// is the exact fractional amount the formula produces; UnitsToBuy
// rounds it up to whole purchasable units.
type MaterialsResult struct {
	Quantity   float64 `json:"quantity"`
	UnitsToBuy int     `json:"units_to_buy"`
	Unit       string  `json:"unit"`
	UnitCost   float64 `json:"unit_cost"`
	TotalCost  float64 `json:"total_cost"`
}

// Materials estimates material quantity and cost for a project.
// Paint: area/coverage × coats. Drywall: area/sheet-size. Everything
// else prices the raw area directly.
func Materials(in MaterialsInput, loc localization.Localization) (MaterialsResult, error) {
	pt, ok := pricing.ParseProjectType(in.ProjectType)
	if !ok {
		return MaterialsResult{}, badEnum("project_type", in.ProjectType)
	}
	tier, ok := pricing.ParseQualityTier(in.QualityTier)
	if !ok {
		return MaterialsResult{}, badEnum("quality_tier", in.QualityTier)
	}

	model := pricing.Material(pt)
	area := in.AreaSqft.V()

	var quantity float64
	switch pt {
	case pricing.ProjectPaint:
		if model.CoveragePerUnit > 0 {
			quantity = area / model.CoveragePerUnit * model.Coats
		}
	case pricing.ProjectDrywall:
		if model.CoveragePerUnit > 0 {
			quantity = area / model.CoveragePerUnit
		}
	default:
		quantity = area
	}

	unitCost := model.UnitCost(tier)
	total := quantity * unitCost * loc.CostFactor

	return MaterialsResult{
		Quantity:   finite(round2(quantity)),
		UnitsToBuy: ceilUnits(quantity),
		Unit:       model.Unit,
		UnitCost:   unitCost,
		TotalCost:  finite(round2(total)),
	}, nil
}
