package calc

import (
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/pricing"
)

// Height factor bounds: ceilings are normalized against an 8 ft
// baseline and clamped so extreme inputs cannot distort the load.
const (
	baselineCeilingFt = 8.0
	minHeightFactor   = 0.8
	maxHeightFactor   = 1.4
	btuPerTon         = 12000.0
	costBandSpread    = 0.15 // ±15% presentation band
)

// HVACLoadInput holds the sizing questionnaire fields.
type HVACLoadInput struct {
	SquareFeet    Flex   `json:"square_feet"`
	CeilingHeight Flex   `json:"ceiling_height"`
	BuildingType  string `json:"building_type"`
	Insulation    string `json:"insulation"`
}

// HVACLoadResult is the computed sizing and installed-cost estimate.
type HVACLoadResult struct {
	LoadBTU          float64   `json:"load_btu"`
	Tons             float64   `json:"tons"`
	HeightFactor     float64   `json:"height_factor"`
	InsulationFactor float64   `json:"insulation_factor"`
	ClimateFactor    float64   `json:"climate_factor"`
	InstalledCost    CostRange `json:"installed_cost"`
}

// HVACLoad estimates heating/cooling load and an installed-cost band.
//
//	loadBtu = sqft × baseLoad(buildingType) × heightFactor × insulationFactor × climateFactor
//	heightFactor = clamp(ceilingHeight/8, 0.8, 1.4)
func HVACLoad(in HVACLoadInput, loc localization.Localization) (HVACLoadResult, error) {
	bt, ok := pricing.ParseBuildingType(in.BuildingType)
	if !ok {
		return HVACLoadResult{}, badEnum("building_type", in.BuildingType)
	}
	lvl, ok := pricing.ParseInsulationLevel(in.Insulation)
	if !ok {
		return HVACLoadResult{}, badEnum("insulation", in.Insulation)
	}

	model := pricing.HVAC(bt)
	heightFactor := clamp(in.CeilingHeight.V()/baselineCeilingFt, minHeightFactor, maxHeightFactor)
	insulationFactor := pricing.InsulationFactor(lvl)
	climateFactor := pricing.ClimateFactor(loc.ClimateBand)

	loadBtu := in.SquareFeet.V() * model.BaseLoadPerSqft * heightFactor * insulationFactor * climateFactor
	tons := loadBtu / btuPerTon

	mid := tons * model.PerTonRate * loc.CostFactor

	return HVACLoadResult{
		LoadBTU:          finite(loadBtu),
		Tons:             finite(tons),
		HeightFactor:     heightFactor,
		InsulationFactor: insulationFactor,
		ClimateFactor:    climateFactor,
		InstalledCost:    costRange(mid*(1-costBandSpread), mid*(1+costBandSpread)),
	}, nil
}
