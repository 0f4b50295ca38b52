package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RMahshie/whitespace/pkg/models"
)

var (
	// ErrNotFound is returned when the requested location or scan does not exist
	ErrNotFound = errors.New("not found")
	// ErrUpstream is returned when the scan service fails or is unreachable
	ErrUpstream = errors.New("scan service unavailable")
)

// ScanRepository defines the interface for location and scan data operations
type ScanRepository interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	CreateLocation(ctx context.Context, loc models.NewLocation) (*models.Location, error)
	ListScans(ctx context.Context, query models.ScanQuery) ([]models.Scan, error)
	LatestScan(ctx context.Context, locationID string) (*models.Scan, error)
	UploadScan(ctx context.Context, upload models.ScanUpload) (*models.Scan, error)
}

// UpstreamError describes a non-success response from the scan service
type UpstreamError struct {
	Operation  string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: scan service returned status %d: %s", e.Operation, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: scan service returned status %d", e.Operation, e.StatusCode)
}

// Unwrap lets callers match UpstreamError against ErrUpstream, or ErrNotFound
// for 404 responses
func (e *UpstreamError) Unwrap() error {
	if e.StatusCode == 404 {
		return ErrNotFound
	}
	return ErrUpstream
}

// IsClientError reports whether the scan service rejected the request itself
func (e *UpstreamError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != 404
}
