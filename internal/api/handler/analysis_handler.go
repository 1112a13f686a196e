package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Abh1nav7/AgenticSprint/internal/api/metrics"
	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
	"github.com/Abh1nav7/AgenticSprint/internal/core/ports"
)

// AnalysisHandler exposes the medical document analysis proxy.
type AnalysisHandler struct {
	service ports.AnalysisService
}

func NewAnalysisHandler(service ports.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Analyze handles POST /api/v1/medical/analyze.
//
// @Summary      Analyze a medical document
// @Description  Sends the uploaded text to the completion API and returns its JSON verbatim.
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        file           formData  file    true   "UTF-8 text document"
// @Param        analysis_type  formData  string  false  "Analysis type (default general)"
// @Success      200            {object}  analysisResponse
// @Failure      400            {object}  detailResponse
// @Failure      500            {object}  detailResponse
// @Router       /api/v1/medical/analyze [post]
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	analysisType := c.FormValue("analysis_type")
	if analysisType == "" {
		analysisType = domain.DefaultAnalysisType
	}

	fh, err := c.FormFile("file")
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(analysisTypeLabel(analysisType), "rejected").Inc()
		return domain.Invalid("File is required")
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := h.service.Analyze(c.Request().Context(), fh.Filename, content, analysisType)
	outcome := analysisOutcome(err)
	metrics.AnalysesTotal.WithLabelValues(analysisTypeLabel(analysisType), outcome).Inc()
	if outcome != "rejected" {
		metrics.AnalysisDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analysisResponse{
		Filename:       result.Filename,
		AnalysisType:   result.AnalysisType,
		AnalysisResult: result.Result,
	})
}

// TestAPI handles GET /api/v1/medical/test-api.
//
// @Summary      Probe the completion API
// @Description  Sends a fixed greeting upstream and returns the raw status and body.
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  probeResponse
// @Failure      500  {object}  detailResponse
// @Router       /api/v1/medical/test-api [get]
func (h *AnalysisHandler) TestAPI(c echo.Context) error {
	res, err := h.service.ProbeUpstream(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, probeResponse{Status: res.Status, Response: res.Body})
}

// analysisTypeLabel folds client-chosen types into a fixed label set.
func analysisTypeLabel(analysisType string) string {
	if analysisType == domain.DefaultAnalysisType {
		return analysisType
	}
	return "other"
}

func analysisOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidInput):
		return "rejected"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
