package handlers

import (
	"context"

	"github.com/RMahshie/whitespace/internal/analysis"
	"github.com/RMahshie/whitespace/internal/charts"
	"github.com/RMahshie/whitespace/pkg/models"
)

const (
	contentTypePNG  = "image/png"
	contentTypeHTML = "text/html; charset=utf-8"
	chartCacheCtl   = "no-cache"
)

// ChartHandler renders analysis results as images and pages
type ChartHandler struct {
	svc analysis.Service
}

// NewChartHandler creates a new chart handler
func NewChartHandler(svc analysis.Service) *ChartHandler {
	return &ChartHandler{svc: svc}
}

// SpectrumPNG renders the latest spectrum of a location
func (h *ChartHandler) SpectrumPNG(ctx context.Context, req *models.SpectrumRequest) (*models.BinaryResponse, error) {
	result, err := h.svc.Spectrum(ctx, req.LocationID, req.Threshold)
	if err != nil {
		return nil, toHumaError(err, "Failed to load spectrum")
	}
	img, err := charts.SpectrumPNG(result.Rows, req.Threshold)
	if err != nil {
		return nil, toHumaError(err, "Failed to render spectrum")
	}
	return binary(contentTypePNG, img), nil
}

// SpectrumHTML renders the latest spectrum of a location as a page
func (h *ChartHandler) SpectrumHTML(ctx context.Context, req *models.SpectrumRequest) (*models.BinaryResponse, error) {
	result, err := h.svc.Spectrum(ctx, req.LocationID, req.Threshold)
	if err != nil {
		return nil, toHumaError(err, "Failed to load spectrum")
	}
	page, err := charts.SpectrumHTML(result.Rows, req.Threshold)
	if err != nil {
		return nil, toHumaError(err, "Failed to render spectrum")
	}
	return binary(contentTypeHTML, page), nil
}

// OccupancyPNG renders the occupancy bars
func (h *ChartHandler) OccupancyPNG(ctx context.Context, req *models.OccupancyRequest) (*models.BinaryResponse, error) {
	result, err := h.svc.Occupancy(ctx, occupancyQuery(req))
	if err != nil {
		return nil, toHumaError(err, "Failed to analyse occupancy")
	}
	img, err := charts.OccupancyPNG(result.Bars)
	if err != nil {
		return nil, toHumaError(err, "Failed to render occupancy")
	}
	return binary(contentTypePNG, img), nil
}

// WaterfallPNG renders the waterfall heat map
func (h *ChartHandler) WaterfallPNG(ctx context.Context, req *models.WaterfallRequest) (*models.BinaryResponse, error) {
	matrix, err := h.svc.Waterfall(ctx, req.LocationID, req.Limit, req.Bins)
	if err != nil {
		return nil, toHumaError(err, "Failed to build waterfall")
	}
	img, err := charts.WaterfallPNG(matrix)
	if err != nil {
		return nil, toHumaError(err, "Failed to render waterfall")
	}
	return binary(contentTypePNG, img), nil
}

func binary(contentType string, body []byte) *models.BinaryResponse {
	return &models.BinaryResponse{
		ContentType:  contentType,
		CacheControl: chartCacheCtl,
		Body:         body,
	}
}
