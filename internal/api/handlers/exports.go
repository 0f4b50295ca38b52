package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/RMahshie/whitespace/internal/export"
	"github.com/RMahshie/whitespace/internal/storage"
	"github.com/RMahshie/whitespace/pkg/models"
)

var exportContentTypes = map[string]string{
	export.CSVName: "text/csv; charset=utf-8",
	export.PNGName: contentTypePNG,
}

// ExportHandler handles export HTTP requests
type ExportHandler struct {
	exporter export.Exporter
	store    storage.ObjectStore
}

// NewExportHandler creates a new export handler
func NewExportHandler(exporter export.Exporter, store storage.ObjectStore) *ExportHandler {
	return &ExportHandler{exporter: exporter, store: store}
}

// CreateExport stores the spectrum of a location as CSV and PNG
func (h *ExportHandler) CreateExport(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	result, err := h.exporter.ExportSpectrum(ctx, req.Body.LocationID, req.Body.Threshold)
	if err != nil {
		return nil, toHumaError(err, "Failed to export spectrum")
	}
	return &models.ExportResponse{Body: *result}, nil
}

// GetExportFile serves a stored export artifact
func (h *ExportHandler) GetExportFile(ctx context.Context, req *models.ExportFileRequest) (*models.BinaryResponse, error) {
	if _, err := uuid.Parse(req.ID); err != nil {
		return nil, huma.Error400BadRequest("Invalid export ID", err)
	}
	contentType, ok := exportContentTypes[req.Name]
	if !ok {
		return nil, huma.Error404NotFound("Export file not found", nil)
	}

	data, err := h.store.Get(ctx, req.ID+"/"+req.Name)
	if err != nil {
		return nil, toHumaError(err, "Export file")
	}

	return &models.BinaryResponse{
		ContentType:  contentType,
		CacheControl: "private, max-age=86400",
		Body:         data,
	}, nil
}
