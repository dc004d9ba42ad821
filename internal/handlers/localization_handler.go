package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/elric-cpu/website-v4-api/internal/errors"
	"github.com/elric-cpu/website-v4-api/internal/localization"
	"github.com/elric-cpu/website-v4-api/internal/metrics"
	"github.com/elric-cpu/website-v4-api/internal/middleware"
)

// LocalizationHandler handles ZIP localization requests.
type LocalizationHandler struct {
	collector *metrics.Collector
}

// NewLocalizationHandler creates a new LocalizationHandler instance.
func NewLocalizationHandler(collector *metrics.Collector) *LocalizationHandler {
	return &LocalizationHandler{collector: collector}
}

// LocalizationResponse represents the resolved pricing context for a ZIP.
type LocalizationResponse struct {
	Zip         string  `json:"zip"`
	ClimateBand string  `json:"climate_band"`
	RegionLabel string  `json:"region_label"`
	CostFactor  float64 `json:"cost_factor"`
	NationalAvg bool    `json:"national_average"`
}

// Resolve handles GET /api/v1/localization.
// Resolution never fails: anything unrecognized falls back to national
// average pricing, so the only client error is a missing zip parameter.
func (h *LocalizationHandler) Resolve(c *gin.Context) {
	zip := c.Query("zip")
	if zip == "" {
		apierrors.BadRequest(c, "Missing required query parameter: zip", nil)
		return
	}

	loc := localization.Resolve(zip)

	source := "resolved"
	if !localization.ValidZip(zip) {
		source = "default"
	}
	h.collector.LocalizationsTotal.WithLabelValues(source).Inc()

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Resolved localization", map[string]interface{}{
			"zip":         zip,
			"region":      loc.RegionLabel,
			"cost_factor": loc.CostFactor,
		})
	}

	c.JSON(http.StatusOK, LocalizationResponse{
		Zip:         loc.Zip,
		ClimateBand: string(loc.ClimateBand),
		RegionLabel: loc.RegionLabel,
		CostFactor:  loc.CostFactor,
		NationalAvg: loc.RegionLabel == "National Average",
	})
}
