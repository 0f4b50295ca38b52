package handlers

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/internal/repository"
	"github.com/RMahshie/whitespace/pkg/models"
)

// maxScanFileSize is the largest decoded scan file accepted
const maxScanFileSize = 5 * 1024 * 1024

// Scan file formats the scan service can parse
var scanExtensions = map[string]bool{
	".csv":  true,
	".rfe":  true,
	".xlsx": true,
}

// ScanHandler handles location and scan HTTP requests
type ScanHandler struct {
	repo repository.ScanRepository
}

// NewScanHandler creates a new scan handler
func NewScanHandler(repo repository.ScanRepository) *ScanHandler {
	return &ScanHandler{repo: repo}
}

// ListLocations returns all monitoring sites
func (h *ScanHandler) ListLocations(ctx context.Context, _ *struct{}) (*models.ListLocationsResponse, error) {
	locations, err := h.repo.ListLocations(ctx)
	if err != nil {
		return nil, toHumaError(err, "Failed to list locations")
	}
	return &models.ListLocationsResponse{Body: locations}, nil
}

// CreateLocation registers a new monitoring site
func (h *ScanHandler) CreateLocation(ctx context.Context, req *models.CreateLocationRequest) (*models.CreateLocationResponse, error) {
	log.Info().Str("name", req.Body.Name).Msg("Creating location")

	loc, err := h.repo.CreateLocation(ctx, req.Body)
	if err != nil {
		return nil, toHumaError(err, "Failed to create location")
	}
	return &models.CreateLocationResponse{Body: *loc}, nil
}

// ListScans returns recent scans, optionally for a single location
func (h *ScanHandler) ListScans(ctx context.Context, req *models.ListScansRequest) (*models.ListScansResponse, error) {
	scans, err := h.repo.ListScans(ctx, models.ScanQuery{LocationID: req.LocationID, Limit: req.Limit})
	if err != nil {
		return nil, toHumaError(err, "Failed to list scans")
	}
	return &models.ListScansResponse{Body: scans}, nil
}

// UploadScan forwards a scan file to the scan service
func (h *ScanHandler) UploadScan(ctx context.Context, req *models.UploadScanRequest) (*models.UploadScanResponse, error) {
	body := req.Body
	log.Info().Str("locationID", body.LocationID).Str("filename", body.Filename).Msg("Scan upload request received")

	ext := strings.ToLower(filepath.Ext(body.Filename))
	if !scanExtensions[ext] {
		return nil, huma.Error400BadRequest("Unsupported file type. Please upload a .csv, .rfe or .xlsx file.", nil)
	}
	if body.EndFrequency <= body.StartFrequency {
		return nil, huma.Error400BadRequest("end_frequency must be above start_frequency", nil)
	}

	content := []byte(body.Content)
	if body.Encoding == models.EncodingBase64 {
		decoded, err := base64.StdEncoding.DecodeString(body.Content)
		if err != nil {
			return nil, huma.Error400BadRequest("Content is not valid base64", err)
		}
		content = decoded
	}
	if len(content) == 0 {
		return nil, huma.Error400BadRequest("File is empty", nil)
	}
	if len(content) > maxScanFileSize {
		return nil, huma.Error400BadRequest("File too large. Maximum size is 5 MiB.", nil)
	}

	scan, err := h.repo.UploadScan(ctx, models.ScanUpload{
		LocationID:     body.LocationID,
		StartFrequency: body.StartFrequency,
		EndFrequency:   body.EndFrequency,
		Filename:       filepath.Base(body.Filename),
		Content:        content,
	})
	if err != nil {
		return nil, toHumaError(err, "Failed to upload scan")
	}

	return &models.UploadScanResponse{
		Body: models.UploadScanResult{
			Message: "Scan uploaded successfully",
			Scan:    scan,
		},
	}, nil
}
