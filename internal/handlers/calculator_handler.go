package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elric-cpu/website-v4-api/internal/calc"
	apierrors "github.com/elric-cpu/website-v4-api/internal/errors"
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/metrics"
	"github.com/elric-cpu/website-v4-api/internal/middleware"
)

// CalculatorHandler handles estimate requests.
type CalculatorHandler struct {
	collector *metrics.Collector
}

// NewCalculatorHandler creates a new CalculatorHandler instance.
func NewCalculatorHandler(collector *metrics.Collector) *CalculatorHandler {
	return &CalculatorHandler{collector: collector}
}

// EstimateRequest represents the body of an estimate request. Inputs
// are kept raw so each calculator can decode its own shape; numeric
// fields there tolerate nulls, strings, and missing values.
type EstimateRequest struct {
	Zip    string          `json:"zip"`
	Inputs json.RawMessage `json:"inputs"`
}

// EstimateResponse wraps a calculator result with the pricing context
// that produced it.
type EstimateResponse struct {
	Kind         string               `json:"kind"`
	Localization LocalizationResponse `json:"localization"`
	Result       any                  `json:"result"`
}

// Estimate handles POST /api/v1/calculators/:kind/estimate.
func (h *CalculatorHandler) Estimate(c *gin.Context) {
	kind, ok := calc.ParseKind(c.Param("kind"))
	if !ok {
		apierrors.NotFound(c, "Unknown calculator")
		return
	}

	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	if len(req.Inputs) == 0 {
		req.Inputs = json.RawMessage("{}")
	}

	loc := localization.Resolve(req.Zip)

	result, err := calc.Compute(kind, req.Inputs, loc)
	if err != nil {
		var inputErr *calc.InputError
		if errors.As(err, &inputErr) {
			h.collector.RecordEstimateInputError(string(kind))
			apierrors.BadRequest(c, "Invalid calculator input", map[string]interface{}{
				inputErr.Field: inputErr.Reason,
			})
			return
		}
		apierrors.InternalServerError(c, "Failed to compute estimate", err)
		return
	}

	h.collector.RecordEstimate(string(kind))

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Estimate computed", map[string]interface{}{
			"kind":        string(kind),
			"zip":         req.Zip,
			"cost_factor": loc.CostFactor,
		})
	}

	c.JSON(http.StatusOK, EstimateResponse{
		Kind: string(kind),
		Localization: LocalizationResponse{
			Zip:         loc.Zip,
			ClimateBand: string(loc.ClimateBand),
			RegionLabel: loc.RegionLabel,
			CostFactor:  loc.CostFactor,
			NationalAvg: loc.RegionLabel == "National Average",
		},
		Result: result,
	})
}
