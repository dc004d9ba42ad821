package calc

import "testing"

func TestLaborSavings_Formula(t *testing.T) {
	// 100 orders/mo × 2 h × 12 = 2400 h/yr at $50/h = $120,000;
	// 20% gain saves 480 h = $24,000.
	in := LaborSavingsInput{
		OrdersPerMonth:        100,
		HoursPerOrder:         2,
		HourlyRate:            50,
		EfficiencyGainPercent: 20,
	}

	result, err := LaborSavings(in, neutralLoc)
	if err != nil {
		t.Fatalf("LaborSavings failed: %v", err)
	}

	if !almostEqual(result.AnnualHours, 2400) {
		t.Errorf("annual hours = %f, want 2400", result.AnnualHours)
	}
	if !almostEqual(result.AnnualCost, 120000) {
		t.Errorf("annual cost = %f, want 120000", result.AnnualCost)
	}
	if !almostEqual(result.SavedHours, 480) {
		t.Errorf("saved hours = %f, want 480", result.SavedHours)
	}
	if !almostEqual(result.SavedCost, 24000) {
		t.Errorf("saved cost = %f, want 24000", result.SavedCost)
	}
}

func TestLaborSavings_RegionalRate(t *testing.T) {
	in := LaborSavingsInput{
		OrdersPerMonth:        50,
		HoursPerOrder:         1.5,
		HourlyRate:            60,
		EfficiencyGainPercent: 15,
	}

	pricey := neutralLoc
	pricey.CostFactor = 1.25

	base, _ := LaborSavings(in, neutralLoc)
	adjusted, _ := LaborSavings(in, pricey)

	// Hours are unaffected by region; both cost figures scale together.
	if adjusted.AnnualHours != base.AnnualHours || adjusted.SavedHours != base.SavedHours {
		t.Error("regional factor must not change hour totals")
	}
	if !almostEqual(adjusted.AnnualCost, round2(base.AnnualCost*1.25)) {
		t.Errorf("annual cost = %f, want %f", adjusted.AnnualCost, round2(base.AnnualCost*1.25))
	}
	if !almostEqual(adjusted.SavedCost, round2(base.SavedCost*1.25)) {
		t.Errorf("saved cost = %f, want %f", adjusted.SavedCost, round2(base.SavedCost*1.25))
	}
}

func TestLaborSavings_AllZeroInputs(t *testing.T) {
	result, err := LaborSavings(LaborSavingsInput{}, neutralLoc)
	if err != nil {
		t.Fatalf("LaborSavings failed: %v", err)
	}
	if result.AnnualHours != 0 || result.AnnualCost != 0 || result.SavedHours != 0 || result.SavedCost != 0 {
		t.Errorf("zero inputs should produce zero outputs, got %+v", result)
	}
}
