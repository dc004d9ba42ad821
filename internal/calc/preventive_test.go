package calc

import "testing"

func TestPreventiveROI_ReferenceScenario(t *testing.T) {
	// 6000 preventive vs 3 incidents × 2800 at medium risk (0.15):
	// reactive base 8400, compliance 1260, total 9660, savings 3660,
	// roi 61%.
	in := PreventiveROIInput{
		PreventiveCost:   6000,
		IncidentsPerYear: 3,
		AvgEmergencyCost: 2800,
		ComplianceRisk:   "medium",
	}

	result, err := PreventiveROI(in, neutralLoc)
	if err != nil {
		t.Fatalf("PreventiveROI failed: %v", err)
	}

	if !almostEqual(result.ReactiveBase, 8400) {
		t.Errorf("reactive base = %f, want 8400", result.ReactiveBase)
	}
	if !almostEqual(result.ComplianceCost, 1260) {
		t.Errorf("compliance cost = %f, want 1260", result.ComplianceCost)
	}
	if !almostEqual(result.TotalReactive, 9660) {
		t.Errorf("total reactive = %f, want 9660", result.TotalReactive)
	}
	if !almostEqual(result.AnnualSavings, 3660) {
		t.Errorf("savings = %f, want 3660", result.AnnualSavings)
	}
	if result.ROIPercent == nil {
		t.Fatal("roi should be defined for positive savings")
	}
	if !almostEqual(*result.ROIPercent, 61) {
		t.Errorf("roi = %f, want 61", *result.ROIPercent)
	}
	if result.PaybackMonths == nil {
		t.Fatal("payback should be defined for positive savings")
	}
	if !almostEqual(*result.PaybackMonths, round2(6000/(3660.0/12))) {
		t.Errorf("payback = %f months, want %f", *result.PaybackMonths, round2(6000/(3660.0/12)))
	}
}

func TestPreventiveROI_NoSavingsOmitsROI(t *testing.T) {
	// Preventive contract costs more than reactive exposure
	in := PreventiveROIInput{
		PreventiveCost:   50000,
		IncidentsPerYear: 1,
		AvgEmergencyCost: 500,
		ComplianceRisk:   "low",
	}

	result, err := PreventiveROI(in, neutralLoc)
	if err != nil {
		t.Fatalf("PreventiveROI failed: %v", err)
	}
	if result.ROIPercent != nil {
		t.Errorf("roi should be omitted for negative savings, got %f", *result.ROIPercent)
	}
	if result.PaybackMonths != nil {
		t.Errorf("payback should be omitted for negative savings, got %f", *result.PaybackMonths)
	}
	if result.AnnualSavings >= 0 {
		t.Errorf("savings = %f, expected negative", result.AnnualSavings)
	}
}

func TestPreventiveROI_ZeroPreventiveCost(t *testing.T) {
	in := PreventiveROIInput{
		PreventiveCost:   0,
		IncidentsPerYear: 3,
		AvgEmergencyCost: 2800,
		ComplianceRisk:   "medium",
	}

	result, err := PreventiveROI(in, neutralLoc)
	if err != nil {
		t.Fatalf("PreventiveROI failed: %v", err)
	}
	// Division by zero must not leak into the result
	if result.ROIPercent != nil {
		t.Error("roi should be omitted when preventive cost is zero")
	}
	if result.PaybackMonths != nil {
		t.Error("payback should be omitted when preventive cost is zero")
	}
}

func TestPreventiveROI_RiskLevelOrdering(t *testing.T) {
	base := PreventiveROIInput{
		PreventiveCost:   6000,
		IncidentsPerYear: 3,
		AvgEmergencyCost: 2800,
	}

	var prior float64
	for _, risk := range []string{"low", "medium", "high"} {
		in := base
		in.ComplianceRisk = risk
		result, err := PreventiveROI(in, neutralLoc)
		if err != nil {
			t.Fatalf("PreventiveROI(%s) failed: %v", risk, err)
		}
		if result.TotalReactive <= prior {
			t.Errorf("total reactive for %s (%f) should exceed previous level (%f)", risk, result.TotalReactive, prior)
		}
		prior = result.TotalReactive
	}
}

func TestPreventiveROI_RejectsUnknownRisk(t *testing.T) {
	if _, err := PreventiveROI(PreventiveROIInput{ComplianceRisk: "extreme"}, neutralLoc); err == nil {
		t.Error("Expected error for unknown risk level")
	}
}
