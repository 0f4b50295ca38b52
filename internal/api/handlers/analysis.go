package handlers

import (
	"context"

	"github.com/RMahshie/whitespace/internal/analysis"
	"github.com/RMahshie/whitespace/pkg/models"
)

// AnalysisHandler handles spectrum and occupancy HTTP requests
type AnalysisHandler struct {
	svc analysis.Service
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(svc analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// Spectrum returns the classified latest scan of a location
func (h *AnalysisHandler) Spectrum(ctx context.Context, req *models.SpectrumRequest) (*models.SpectrumResponse, error) {
	result, err := h.svc.Spectrum(ctx, req.LocationID, req.Threshold)
	if err != nil {
		return nil, toHumaError(err, "Failed to load spectrum")
	}
	return &models.SpectrumResponse{Body: *result}, nil
}

// Occupancy returns the channel occupancy analysis
func (h *AnalysisHandler) Occupancy(ctx context.Context, req *models.OccupancyRequest) (*models.OccupancyResponse, error) {
	result, err := h.svc.Occupancy(ctx, occupancyQuery(req))
	if err != nil {
		return nil, toHumaError(err, "Failed to analyse occupancy")
	}
	return &models.OccupancyResponse{Body: *result}, nil
}

// Dashboard returns the overview statistics
func (h *AnalysisHandler) Dashboard(ctx context.Context, req *models.DashboardRequest) (*models.DashboardResponse, error) {
	stats, err := h.svc.Dashboard(ctx, req.Threshold)
	if err != nil {
		return nil, toHumaError(err, "Failed to load dashboard")
	}
	return &models.DashboardResponse{Body: *stats}, nil
}

// Waterfall returns the time by frequency power matrix
func (h *AnalysisHandler) Waterfall(ctx context.Context, req *models.WaterfallRequest) (*models.WaterfallResponse, error) {
	matrix, err := h.svc.Waterfall(ctx, req.LocationID, req.Limit, req.Bins)
	if err != nil {
		return nil, toHumaError(err, "Failed to build waterfall")
	}
	return &models.WaterfallResponse{Body: *matrix}, nil
}

func occupancyQuery(req *models.OccupancyRequest) models.OccupancyQuery {
	return models.OccupancyQuery{
		LocationID: req.LocationID,
		TimeRange:  req.TimeRange,
		From:       req.From,
		To:         req.To,
		Threshold:  req.Threshold,
	}
}
