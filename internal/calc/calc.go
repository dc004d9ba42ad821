// Package calc implements the estimation calculators. Each calculator is
// a pure function of its typed input, the resolved ZIP localization, and
// the static pricing tables: identical arguments always produce identical
// results.
package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/elric-cpu/website-v4-api/internal/format"
	"github.com/elric-cpu/website-v4-api/internal/localization"
)

// Kind tags a calculator variant. Each kind dispatches to its own typed
// input struct and compute function.
type Kind string

const (
	KindHVACLoad      Kind = "hvac_load"
	KindACH           Kind = "ach"
	KindEnergySavings Kind = "energy_savings"
	KindAssetLife     Kind = "asset_lifecycle"
	KindPreventiveROI Kind = "preventive_roi"
	KindMaterials     Kind = "materials"
	KindRepairCost    Kind = "repair_cost"
	KindLaborSavings  Kind = "labor_savings"
)

// ErrUnknownKind is returned when dispatching an unrecognized calculator tag.
var ErrUnknownKind = errors.New("unknown calculator kind")

// ParseKind validates a raw calculator tag.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(raw) {
	case KindHVACLoad, KindACH, KindEnergySavings, KindAssetLife,
		KindPreventiveROI, KindMaterials, KindRepairCost, KindLaborSavings:
		return Kind(raw), true
	}
	return "", false
}

// Kinds lists every calculator tag.
func Kinds() []Kind {
	return []Kind{
		KindHVACLoad, KindACH, KindEnergySavings, KindAssetLife,
		KindPreventiveROI, KindMaterials, KindRepairCost, KindLaborSavings,
	}
}

// InputError marks a user-input problem (bad enum key, missing field).
// It is distinct from programming errors, which panic in the pricing
// tables.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

func badEnum(field, value string) *InputError {
	return &InputError{Field: field, Reason: fmt.Sprintf("unknown option %q", value)}
}

// Compute unmarshals raw input for the given kind and runs its
// calculator. The result types are the per-calculator Result structs.
func Compute(kind Kind, raw json.RawMessage, loc localization.Localization) (any, error) {
	switch kind {
	case KindHVACLoad:
		return decodeAndRun(raw, loc, HVACLoad)
	case KindACH:
		return decodeAndRun(raw, loc, AirChanges)
	case KindEnergySavings:
		return decodeAndRun(raw, loc, EnergySavings)
	case KindAssetLife:
		return decodeAndRun(raw, loc, AssetLifecycle)
	case KindPreventiveROI:
		return decodeAndRun(raw, loc, PreventiveROI)
	case KindMaterials:
		return decodeAndRun(raw, loc, Materials)
	case KindRepairCost:
		return decodeAndRun(raw, loc, RepairCost)
	case KindLaborSavings:
		return decodeAndRun(raw, loc, LaborSavings)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func decodeAndRun[I any, R any](raw json.RawMessage, loc localization.Localization, run func(I, localization.Localization) (R, error)) (any, error) {
	var in I
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, &InputError{Field: "body", Reason: "malformed JSON"}
		}
	}
	return run(in, loc)
}

// Flex is a float64 that tolerates the loose numeric input a web form
// produces. Numbers, numeric strings, empty strings, null, and garbage
// all unmarshal without error; anything unusable (including negatives
// and non-finite values) coerces to 0.
type Flex float64

// UnmarshalJSON implements lenient numeric decoding.
func (f *Flex) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = sanitize(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = sanitize(v)
	return nil
}

func sanitize(v float64) Flex {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return Flex(v)
}

// V returns the coerced float value.
func (f Flex) V() float64 {
	return float64(f)
}

// CostRange is a min/max currency band.
type CostRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Display string  `json:"display"`
}

// costRange builds a band with its display rendering.
func costRange(min, max float64) CostRange {
	min = finite(round2(min))
	max = finite(round2(max))
	return CostRange{
		Min:     min,
		Max:     max,
		Display: format.Currency(min) + " - " + format.Currency(max),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// finite replaces NaN and infinities with 0 so no result field ever
// serializes to an invalid JSON number.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ceilUnits rounds a fractional quantity up to whole purchasable
// units. The conversion saturates: quantities past the int range cap
// at math.MaxInt instead of overflowing into a negative count.
func ceilUnits(quantity float64) int {
	q := math.Ceil(finite(quantity))
	switch {
	case q < 0:
		return 0
	case q >= math.MaxInt:
		return math.MaxInt
	}
	return int(q)
}
