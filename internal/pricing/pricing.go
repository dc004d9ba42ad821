// Package pricing holds the static cost and savings model tables used by
// the estimation calculators. Tables are fixed at build time and keyed by
// closed enums driven by UI selects; an unknown key is a programming
// error, so the lookup helpers panic rather than defaulting silently.
// Percentage-type parameters are stored as fractions in [0,1].
package pricing

import (
	"fmt"

	"github.com/elric-cpu/website-v4-api/internal/localization"
)

// BuildingType classifies the structure being estimated.
type BuildingType string

const (
	BuildingResidential BuildingType = "residential"
	BuildingOffice      BuildingType = "office"
	BuildingRetail      BuildingType = "retail"
	BuildingWarehouse   BuildingType = "warehouse"
)

// InsulationLevel is the self-reported insulation quality.
type InsulationLevel string

const (
	InsulationPoor    InsulationLevel = "poor"
	InsulationAverage InsulationLevel = "average"
	InsulationGood    InsulationLevel = "good"
)

// HVACModel holds the per-building-type HVAC sizing parameters.
type HVACModel struct {
	BaseLoadPerSqft float64 // BTU/hr per square foot
	PerTonRate      float64 // installed cost per ton, national baseline
}

var hvacModels = map[BuildingType]HVACModel{
	BuildingResidential: {BaseLoadPerSqft: 22, PerTonRate: 3400},
	BuildingOffice:      {BaseLoadPerSqft: 25, PerTonRate: 4100},
	BuildingRetail:      {BaseLoadPerSqft: 28, PerTonRate: 3900},
	BuildingWarehouse:   {BaseLoadPerSqft: 15, PerTonRate: 3000},
}

var insulationFactors = map[InsulationLevel]float64{
	InsulationPoor:    1.15,
	InsulationAverage: 1.0,
	InsulationGood:    0.88,
}

var climateFactors = map[localization.ClimateBand]float64{
	localization.BandCold:  1.10,
	localization.BandMixed: 1.0,
	localization.BandWarm:  1.12,
}

// HVAC returns the sizing model for a building type.
func HVAC(bt BuildingType) HVACModel {
	return lookup(hvacModels, bt, "hvac model")
}

// InsulationFactor returns the load multiplier for an insulation level.
func InsulationFactor(level InsulationLevel) float64 {
	return lookup(insulationFactors, level, "insulation factor")
}

// ClimateFactor returns the load multiplier for a climate band.
func ClimateFactor(band localization.ClimateBand) float64 {
	return lookup(climateFactors, band, "climate factor")
}

// SpaceType classifies a space for ventilation targets.
type SpaceType string

const (
	SpaceOffice     SpaceType = "office"
	SpaceRestaurant SpaceType = "restaurant"
	SpaceRetail     SpaceType = "retail"
	SpaceGym        SpaceType = "gym"
	SpaceMedical    SpaceType = "medical"
)

// ACHTarget is the recommended air-changes-per-hour range for a space
// type at the mixed-climate baseline.
type ACHTarget struct {
	Min float64
	Max float64
}

var achTargets = map[SpaceType]ACHTarget{
	SpaceOffice:     {Min: 4, Max: 6},
	SpaceRestaurant: {Min: 8, Max: 12},
	SpaceRetail:     {Min: 6, Max: 8},
	SpaceGym:        {Min: 10, Max: 14},
	SpaceMedical:    {Min: 12, Max: 16},
}

// ACH returns the ventilation target for a space type.
func ACH(st SpaceType) ACHTarget {
	return lookup(achTargets, st, "ach target")
}

// UpgradeType identifies an energy-efficiency upgrade.
type UpgradeType string

const (
	UpgradeHVACSystem UpgradeType = "hvac_system"
	UpgradeInsulation UpgradeType = "insulation"
	UpgradeWindows    UpgradeType = "windows"
	UpgradeLighting   UpgradeType = "lighting"
	UpgradeSmartStat  UpgradeType = "smart_thermostat"
)

// UpgradeModel holds the base cost and expected bill-savings rate for an
// upgrade type. SavingsRate is the fraction of the monthly energy bill
// the upgrade is expected to save.
type UpgradeModel struct {
	BaseCost    float64
	SavingsRate float64
}

var upgradeModels = map[UpgradeType]UpgradeModel{
	UpgradeHVACSystem: {BaseCost: 9500, SavingsRate: 0.25},
	UpgradeInsulation: {BaseCost: 4200, SavingsRate: 0.18},
	UpgradeWindows:    {BaseCost: 12000, SavingsRate: 0.12},
	UpgradeLighting:   {BaseCost: 2800, SavingsRate: 0.10},
	UpgradeSmartStat:  {BaseCost: 450, SavingsRate: 0.08},
}

var buildingTypeCostFactors = map[BuildingType]float64{
	BuildingResidential: 1.0,
	BuildingOffice:      1.6,
	BuildingRetail:      1.4,
	BuildingWarehouse:   2.2,
}

// Upgrade returns the savings model for an upgrade type.
func Upgrade(ut UpgradeType) UpgradeModel {
	return lookup(upgradeModels, ut, "upgrade model")
}

// BuildingTypeCostFactor scales upgrade costs by building type.
func BuildingTypeCostFactor(bt BuildingType) float64 {
	return lookup(buildingTypeCostFactors, bt, "building type cost factor")
}

// AssetType identifies a capital asset tracked in the lifecycle model.
type AssetType string

const (
	AssetHVAC      AssetType = "hvac"
	AssetRoof      AssetType = "roof"
	AssetGenerator AssetType = "generator"
	AssetBoiler    AssetType = "boiler"
	AssetChiller   AssetType = "chiller"
	AssetElevator  AssetType = "elevator"
)

// AssetModel holds the lifecycle parameters for an asset type.
// RecommendedPMRate is the recommended annual preventive-maintenance
// spend as a fraction of replacement cost.
type AssetModel struct {
	ReplacementCost   float64
	ExpectedLifeYears float64
	RecommendedPMRate float64
}

var assetModels = map[AssetType]AssetModel{
	AssetHVAC:      {ReplacementCost: 18000, ExpectedLifeYears: 15, RecommendedPMRate: 0.04},
	AssetRoof:      {ReplacementCost: 45000, ExpectedLifeYears: 25, RecommendedPMRate: 0.02},
	AssetGenerator: {ReplacementCost: 30000, ExpectedLifeYears: 20, RecommendedPMRate: 0.05},
	AssetBoiler:    {ReplacementCost: 22000, ExpectedLifeYears: 18, RecommendedPMRate: 0.04},
	AssetChiller:   {ReplacementCost: 60000, ExpectedLifeYears: 20, RecommendedPMRate: 0.045},
	AssetElevator:  {ReplacementCost: 120000, ExpectedLifeYears: 22, RecommendedPMRate: 0.035},
}

// Asset returns the lifecycle model for an asset type.
func Asset(at AssetType) AssetModel {
	return lookup(assetModels, at, "asset model")
}

// RiskLevel grades compliance exposure for the preventive-vs-reactive
// ROI calculator.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var complianceFactors = map[RiskLevel]float64{
	RiskLow:    0.05,
	RiskMedium: 0.15,
	RiskHigh:   0.30,
}

// ComplianceFactor returns the reactive-cost uplift for a risk level.
func ComplianceFactor(rl RiskLevel) float64 {
	return lookup(complianceFactors, rl, "compliance factor")
}

// ProjectType identifies a materials-estimator project.
type ProjectType string

const (
	ProjectPaint    ProjectType = "paint"
	ProjectDrywall  ProjectType = "drywall"
	ProjectFlooring ProjectType = "flooring"
	ProjectRoofing  ProjectType = "roofing"
)

// QualityTier grades material quality.
type QualityTier string

const (
	TierBudget   QualityTier = "budget"
	TierStandard QualityTier = "standard"
	TierPremium  QualityTier = "premium"
)

// MaterialModel holds the quantity and pricing parameters for a project
// type. CoveragePerUnit is square feet per unit (per gallon for paint,
// per sheet for drywall); Coats only applies to paint.
type MaterialModel struct {
	CoveragePerUnit float64
	Coats           float64
	UnitCosts       map[QualityTier]float64
	Unit            string
}

var materialModels = map[ProjectType]MaterialModel{
	ProjectPaint: {
		CoveragePerUnit: 350,
		Coats:           2,
		UnitCosts:       map[QualityTier]float64{TierBudget: 28, TierStandard: 45, TierPremium: 75},
		Unit:            "gallon",
	},
	ProjectDrywall: {
		CoveragePerUnit: 32, // 4x8 sheet
		UnitCosts:       map[QualityTier]float64{TierBudget: 12, TierStandard: 16, TierPremium: 24},
		Unit:            "sheet",
	},
	ProjectFlooring: {
		UnitCosts: map[QualityTier]float64{TierBudget: 2.5, TierStandard: 5.5, TierPremium: 11},
		Unit:      "sq ft",
	},
	ProjectRoofing: {
		UnitCosts: map[QualityTier]float64{TierBudget: 4, TierStandard: 7, TierPremium: 12},
		Unit:      "sq ft",
	},
}

// Material returns the estimator model for a project type.
func Material(pt ProjectType) MaterialModel {
	return lookup(materialModels, pt, "material model")
}

// UnitCost returns the per-unit cost for a project type and tier.
func (m MaterialModel) UnitCost(tier QualityTier) float64 {
	cost, ok := m.UnitCosts[tier]
	if !ok {
		panic(fmt.Sprintf("pricing: no quality tier %q", tier))
	}
	return cost
}

// SystemType identifies a repairable building system.
type SystemType string

const (
	SystemAC          SystemType = "ac"
	SystemFurnace     SystemType = "furnace"
	SystemPlumbing    SystemType = "plumbing"
	SystemElectrical  SystemType = "electrical"
	SystemWaterHeater SystemType = "water_heater"
)

// Severity grades a repair.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityStandard Severity = "standard"
	SeverityMajor    Severity = "major"
)

// RepairBand is the national-baseline cost band for a repair.
type RepairBand struct {
	Min float64
	Max float64
}

var repairBands = map[SystemType]map[Severity]RepairBand{
	SystemAC: {
		SeverityMinor:    {Min: 150, Max: 400},
		SeverityStandard: {Min: 400, Max: 1200},
		SeverityMajor:    {Min: 1200, Max: 4500},
	},
	SystemFurnace: {
		SeverityMinor:    {Min: 130, Max: 350},
		SeverityStandard: {Min: 350, Max: 1100},
		SeverityMajor:    {Min: 1100, Max: 4000},
	},
	SystemPlumbing: {
		SeverityMinor:    {Min: 120, Max: 300},
		SeverityStandard: {Min: 300, Max: 900},
		SeverityMajor:    {Min: 900, Max: 3500},
	},
	SystemElectrical: {
		SeverityMinor:    {Min: 140, Max: 380},
		SeverityStandard: {Min: 380, Max: 1000},
		SeverityMajor:    {Min: 1000, Max: 3800},
	},
	SystemWaterHeater: {
		SeverityMinor:    {Min: 110, Max: 280},
		SeverityStandard: {Min: 280, Max: 850},
		SeverityMajor:    {Min: 850, Max: 2600},
	},
}

// Repair returns the baseline cost band for a system and severity.
func Repair(st SystemType, sev Severity) RepairBand {
	bands := lookup(repairBands, st, "repair band")
	return lookup(bands, sev, "repair severity")
}

func lookup[K comparable, V any](table map[K]V, key K, kind string) V {
	v, ok := table[key]
	if !ok {
		panic(fmt.Sprintf("pricing: no %s for key %v", kind, key))
	}
	return v
}
