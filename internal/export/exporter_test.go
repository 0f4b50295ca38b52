package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/whitespace/internal/repository"
	"github.com/RMahshie/whitespace/internal/storage"
	"github.com/RMahshie/whitespace/pkg/models"
	"github.com/RMahshie/whitespace/pkg/occupancy"
)

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

var scanTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func spectrumResult() *models.SpectrumResult {
	return &models.SpectrumResult{
		LocationID: "loc-1",
		ScanID:     "scan-1",
		Timestamp:  scanTime,
		Threshold:  -110,
		Rows: []models.SpectrumRow{
			{Frequency: 470, Power: -95, Status: occupancy.Occupied, Timestamp: scanTime},
			{Frequency: 471.25, Power: -130.5, Status: occupancy.Vacant, Timestamp: scanTime},
		},
	}
}

func TestSpectrumCSV(t *testing.T) {
	data, err := SpectrumCSV(spectrumResult().Rows)

	require.NoError(t, err)
	assert.Equal(t, "Frequency (MHz),Power (dBm),Status,Timestamp\n"+
		"470,-95,Occupied,2024-05-01T10:00:00Z\n"+
		"471.25,-130.5,Vacant,2024-05-01T10:00:00Z\n", string(data))
}

func TestExportSpectrum_LocalStore(t *testing.T) {
	svc := &MockAnalysisService{}
	svc.On("Spectrum", mock.Anything, "loc-1", -110.0).Return(spectrumResult(), nil)
	store, err := storage.NewLocalStore(storage.LocalConfig{Dir: t.TempDir(), URLPrefix: "/api/exports/files/"})
	require.NoError(t, err)

	result, err := NewExporter(svc, store).ExportSpectrum(context.Background(), "loc-1", -110)

	require.NoError(t, err)
	assert.Equal(t, result.ID+"/spectrum.csv", result.CSVKey)
	assert.Equal(t, result.ID+"/spectrum.png", result.PNGKey)
	assert.Equal(t, "/api/exports/files/"+result.ID+"/spectrum.csv", result.CSVURL)
	assert.False(t, result.CreatedAt.IsZero())

	csvData, err := store.Get(context.Background(), result.CSVKey)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csvData), "Frequency (MHz),Power (dBm),Status,Timestamp\n"))

	pngData, err := store.Get(context.Background(), result.PNGKey)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pngData, []byte("\x89PNG")))
}

func TestExportSpectrum_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(*MockAnalysisService, *MockObjectStore)
		wantErr   error
	}{
		{
			name: "no scan for location",
			mockSetup: func(svc *MockAnalysisService, store *MockObjectStore) {
				svc.On("Spectrum", mock.Anything, "loc-1", -110.0).Return((*models.SpectrumResult)(nil), repository.ErrNotFound)
			},
			wantErr: repository.ErrNotFound,
		},
		{
			name: "csv upload fails",
			mockSetup: func(svc *MockAnalysisService, store *MockObjectStore) {
				svc.On("Spectrum", mock.Anything, "loc-1", -110.0).Return(spectrumResult(), nil)
				store.On("Put", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasSuffix(k, ".csv") }), mock.Anything, "text/csv").
					Return(errors.New("disk full"))
			},
		},
		{
			name: "png upload fails and csv is removed",
			mockSetup: func(svc *MockAnalysisService, store *MockObjectStore) {
				svc.On("Spectrum", mock.Anything, "loc-1", -110.0).Return(spectrumResult(), nil)
				store.On("Put", mock.Anything, mock.Anything, mock.Anything, "text/csv").Return(nil)
				store.On("Put", mock.Anything, mock.Anything, mock.Anything, "image/png").Return(errors.New("bucket gone"))
				store.On("Delete", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasSuffix(k, ".csv") })).Return(nil)
			},
		},
		{
			name: "download url fails and both objects are removed",
			mockSetup: func(svc *MockAnalysisService, store *MockObjectStore) {
				svc.On("Spectrum", mock.Anything, "loc-1", -110.0).Return(spectrumResult(), nil)
				store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
				store.On("DownloadURL", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasSuffix(k, ".csv") })).
					Return("https://exports.example/spectrum.csv", nil)
				store.On("DownloadURL", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasSuffix(k, ".png") })).
					Return("", errors.New("presign failed"))
				store.On("Delete", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasSuffix(k, ".csv") })).Return(nil).Once()
				store.On("Delete", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasSuffix(k, ".png") })).Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAnalysisService{}
			store := &MockObjectStore{}
			tt.mockSetup(svc, store)

			result, err := NewExporter(svc, store).ExportSpectrum(context.Background(), "loc-1", -110)

			require.Error(t, err)
			assert.Nil(t, result)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			svc.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}
