package pricing

// Parsers for user-facing enum input. Unknown values return ok=false so
// callers can reject them as validation errors; the panicking lookups
// above are reserved for keys that already passed through a parser.

// ParseBuildingType validates a raw building type string.
func ParseBuildingType(raw string) (BuildingType, bool) {
	bt := BuildingType(raw)
	_, ok := hvacModels[bt]
	return bt, ok
}

// ParseInsulationLevel validates a raw insulation level string.
func ParseInsulationLevel(raw string) (InsulationLevel, bool) {
	lvl := InsulationLevel(raw)
	_, ok := insulationFactors[lvl]
	return lvl, ok
}

// ParseSpaceType validates a raw space type string.
func ParseSpaceType(raw string) (SpaceType, bool) {
	st := SpaceType(raw)
	_, ok := achTargets[st]
	return st, ok
}

// ParseUpgradeType validates a raw upgrade type string.
func ParseUpgradeType(raw string) (UpgradeType, bool) {
	ut := UpgradeType(raw)
	_, ok := upgradeModels[ut]
	return ut, ok
}

// ParseAssetType validates a raw asset type string.
func ParseAssetType(raw string) (AssetType, bool) {
	at := AssetType(raw)
	_, ok := assetModels[at]
	return at, ok
}

// ParseRiskLevel validates a raw compliance risk level string.
func ParseRiskLevel(raw string) (RiskLevel, bool) {
	rl := RiskLevel(raw)
	_, ok := complianceFactors[rl]
	return rl, ok
}

// ParseProjectType validates a raw project type string.
func ParseProjectType(raw string) (ProjectType, bool) {
	pt := ProjectType(raw)
	_, ok := materialModels[pt]
	return pt, ok
}

// ParseQualityTier validates a raw quality tier string.
func ParseQualityTier(raw string) (QualityTier, bool) {
	switch QualityTier(raw) {
	case TierBudget, TierStandard, TierPremium:
		return QualityTier(raw), true
	}
	return "", false
}

// ParseSystemType validates a raw system type string.
func ParseSystemType(raw string) (SystemType, bool) {
	st := SystemType(raw)
	_, ok := repairBands[st]
	return st, ok
}

// ParseSeverity validates a raw severity string.
func ParseSeverity(raw string) (Severity, bool) {
	switch Severity(raw) {
	case SeverityMinor, SeverityStandard, SeverityMajor:
		return Severity(raw), true
	}
	return "", false
}
