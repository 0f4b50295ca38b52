package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/whitespace/pkg/models"
)

// MockScanRepository implements repository.ScanRepository for testing
type MockScanRepository struct {
	mock.Mock
}

func (m *MockScanRepository) ListLocations(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Location), args.Error(1)
}

func (m *MockScanRepository) CreateLocation(ctx context.Context, loc models.NewLocation) (*models.Location, error) {
	args := m.Called(ctx, loc)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockScanRepository) ListScans(ctx context.Context, query models.ScanQuery) ([]models.Scan, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Scan), args.Error(1)
}

func (m *MockScanRepository) LatestScan(ctx context.Context, locationID string) (*models.Scan, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).(*models.Scan), args.Error(1)
}

func (m *MockScanRepository) UploadScan(ctx context.Context, upload models.ScanUpload) (*models.Scan, error) {
	args := m.Called(ctx, upload)
	return args.Get(0).(*models.Scan), args.Error(1)
}

// MockAnalysisService implements analysis.Service for testing
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Spectrum(ctx context.Context, locationID string, threshold float64) (*models.SpectrumResult, error) {
	args := m.Called(ctx, locationID, threshold)
	return args.Get(0).(*models.SpectrumResult), args.Error(1)
}

func (m *MockAnalysisService) Occupancy(ctx context.Context, query models.OccupancyQuery) (*models.OccupancyResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(*models.OccupancyResult), args.Error(1)
}

func (m *MockAnalysisService) Dashboard(ctx context.Context, threshold float64) (*models.DashboardStats, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockAnalysisService) Waterfall(ctx context.Context, locationID string, limit, bins int) (*models.WaterfallMatrix, error) {
	args := m.Called(ctx, locationID, limit, bins)
	return args.Get(0).(*models.WaterfallMatrix), args.Error(1)
}

// MockExporter implements export.Exporter for testing
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportSpectrum(ctx context.Context, locationID string, threshold float64) (*models.ExportResult, error) {
	args := m.Called(ctx, locationID, threshold)
	return args.Get(0).(*models.ExportResult), args.Error(1)
}

// MockObjectStore implements storage.ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStore) DownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// requireStatus asserts err is a huma error with the given status
func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected huma status error, got %v", err)
	require.Equal(t, status, se.GetStatus())
}
