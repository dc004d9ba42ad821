package calc

import (
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/pricing"
)

// Climate adjustment for ventilation targets. Warm climates need more
// air turnover, cold climates tolerate less, and the adjusted minimum
// never drops below 2.
const (
	achWarmAdjust = 0.5
	achColdAdjust = -0.5
	achFloor      = 2.0
)

// ACHStatus compares measured air changes against the target range.
type ACHStatus string

const (
	ACHBelowTarget  ACHStatus = "below_target"
	ACHWithinTarget ACHStatus = "within_target"
	ACHAboveTarget  ACHStatus = "above_target"
)

// ACHInput holds the ventilation questionnaire fields.
type ACHInput struct {
	CFM           Flex   `json:"cfm"`
	SquareFeet    Flex   `json:"square_feet"`
	CeilingHeight Flex   `json:"ceiling_height"`
	SpaceType     string `json:"space_type"`
}

// ACHResult reports measured air changes per hour against the
// climate-adjusted target for the space type.
type ACHResult struct {
	ACH       float64   `json:"ach"`
	TargetMin float64   `json:"target_min"`
	TargetMax float64   `json:"target_max"`
	Status    ACHStatus `json:"status"`
}

// AirChanges computes ach = (cfm × 60) / (sqft × ceilingHeight) and
// grades it against the space-type target adjusted by climate band.
func AirChanges(in ACHInput, loc localization.Localization) (ACHResult, error) {
	st, ok := pricing.ParseSpaceType(in.SpaceType)
	if !ok {
		return ACHResult{}, badEnum("space_type", in.SpaceType)
	}

	volume := in.SquareFeet.V() * in.CeilingHeight.V()
	var ach float64
	if volume > 0 {
		ach = in.CFM.V() * 60 / volume
	}

	target := pricing.ACH(st)
	adjust := 0.0
	switch loc.ClimateBand {
	case localization.BandWarm:
		adjust = achWarmAdjust
	case localization.BandCold:
		adjust = achColdAdjust
	}

	targetMin := target.Min + adjust
	if targetMin < achFloor {
		targetMin = achFloor
	}
	targetMax := target.Max + adjust

	status := ACHWithinTarget
	switch {
	case ach < targetMin:
		status = ACHBelowTarget
	case ach > targetMax:
		status = ACHAboveTarget
	}

	return ACHResult{
		ACH:       finite(ach),
		TargetMin: targetMin,
		TargetMax: targetMax,
		Status:    status,
	}, nil
}
