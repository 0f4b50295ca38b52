package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/whitespace/internal/repository"
	"github.com/RMahshie/whitespace/pkg/models"
)

func TestListLocations(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(*MockScanRepository)
		wantStatus int
		wantCount  int
	}{
		{
			name: "locations returned",
			mockSetup: func(repo *MockScanRepository) {
				repo.On("ListLocations", mock.Anything).Return([]models.Location{{ID: "loc-1"}, {ID: "loc-2"}}, nil)
			},
			wantCount: 2,
		},
		{
			name: "scan service down",
			mockSetup: func(repo *MockScanRepository) {
				repo.On("ListLocations", mock.Anything).Return([]models.Location(nil), repository.ErrUpstream)
			},
			wantStatus: 502,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockScanRepository{}
			tt.mockSetup(repo)

			resp, err := NewScanHandler(repo).ListLocations(context.Background(), nil)

			if tt.wantStatus != 0 {
				requireStatus(t, err, tt.wantStatus)
				return
			}
			require.NoError(t, err)
			assert.Len(t, resp.Body, tt.wantCount)
		})
	}
}

func TestCreateLocation(t *testing.T) {
	repo := &MockScanRepository{}
	input := models.NewLocation{Name: "Rooftop", Latitude: 40.1, Longitude: -75.2, Active: true}
	repo.On("CreateLocation", mock.Anything, input).Return(&models.Location{ID: "loc-1", Name: "Rooftop"}, nil)

	resp, err := NewScanHandler(repo).CreateLocation(context.Background(), &models.CreateLocationRequest{Body: input})

	require.NoError(t, err)
	assert.Equal(t, "loc-1", resp.Body.ID)
	repo.AssertExpectations(t)
}

func TestCreateLocation_RejectedUpstream(t *testing.T) {
	repo := &MockScanRepository{}
	repo.On("CreateLocation", mock.Anything, mock.Anything).Return((*models.Location)(nil),
		&repository.UpstreamError{Operation: "create_location", StatusCode: 422, Detail: "name already exists"})

	_, err := NewScanHandler(repo).CreateLocation(context.Background(), &models.CreateLocationRequest{})

	requireStatus(t, err, 400)
	assert.Contains(t, err.Error(), "name already exists")
}

func TestListScans(t *testing.T) {
	repo := &MockScanRepository{}
	repo.On("ListScans", mock.Anything, models.ScanQuery{LocationID: "loc-1", Limit: 5}).Return([]models.Scan{{ID: "s1"}}, nil)

	resp, err := NewScanHandler(repo).ListScans(context.Background(), &models.ListScansRequest{LocationID: "loc-1", Limit: 5})

	require.NoError(t, err)
	require.Len(t, resp.Body, 1)
	assert.Equal(t, "s1", resp.Body[0].ID)
}

func uploadBody(filename, content string) models.UploadScanBody {
	return models.UploadScanBody{
		LocationID:     "loc-1",
		StartFrequency: 470,
		EndFrequency:   790,
		Filename:       filename,
		Encoding:       models.EncodingText,
		Content:        content,
	}
}

func TestUploadScan(t *testing.T) {
	xlsx := []byte{0x50, 0x4b, 0x03, 0x04, 0x00}
	b64 := uploadBody("sweep.xlsx", base64.StdEncoding.EncodeToString(xlsx))
	b64.Encoding = models.EncodingBase64
	badB64 := uploadBody("sweep.xlsx", "!!not base64!!")
	badB64.Encoding = models.EncodingBase64
	inverted := uploadBody("scan.csv", "470,-95")
	inverted.EndFrequency = 400

	tests := []struct {
		name       string
		body       models.UploadScanBody
		mockSetup  func(*MockScanRepository)
		wantStatus int
	}{
		{
			name: "csv forwarded",
			body: uploadBody("scan.csv", "Frequency,Power\n470,-95\n"),
			mockSetup: func(repo *MockScanRepository) {
				repo.On("UploadScan", mock.Anything, models.ScanUpload{
					LocationID: "loc-1", StartFrequency: 470, EndFrequency: 790,
					Filename: "scan.csv", Content: []byte("Frequency,Power\n470,-95\n"),
				}).Return(&models.Scan{ID: "s1"}, nil)
			},
		},
		{
			name: "base64 content decoded",
			body: b64,
			mockSetup: func(repo *MockScanRepository) {
				repo.On("UploadScan", mock.Anything, mock.MatchedBy(func(u models.ScanUpload) bool {
					return string(u.Content) == string(xlsx)
				})).Return((*models.Scan)(nil), nil)
			},
		},
		{
			name:       "unsupported extension",
			body:       uploadBody("scan.exe", "MZ"),
			mockSetup:  func(repo *MockScanRepository) {},
			wantStatus: 400,
		},
		{
			name:       "invalid base64",
			body:       badB64,
			mockSetup:  func(repo *MockScanRepository) {},
			wantStatus: 400,
		},
		{
			name:       "inverted frequency span",
			body:       inverted,
			mockSetup:  func(repo *MockScanRepository) {},
			wantStatus: 400,
		},
		{
			name:       "file too large",
			body:       uploadBody("scan.csv", strings.Repeat("x", maxScanFileSize+1)),
			mockSetup:  func(repo *MockScanRepository) {},
			wantStatus: 400,
		},
		{
			name: "scan service rejects file",
			body: uploadBody("scan.rfe", "garbage"),
			mockSetup: func(repo *MockScanRepository) {
				repo.On("UploadScan", mock.Anything, mock.Anything).Return((*models.Scan)(nil),
					&repository.UpstreamError{Operation: "upload_scan", StatusCode: 400, Detail: "Invalid file format"})
			},
			wantStatus: 400,
		},
		{
			name: "unexpected failure",
			body: uploadBody("scan.csv", "470,-95"),
			mockSetup: func(repo *MockScanRepository) {
				repo.On("UploadScan", mock.Anything, mock.Anything).Return((*models.Scan)(nil), errors.New("boom"))
			},
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockScanRepository{}
			tt.mockSetup(repo)

			resp, err := NewScanHandler(repo).UploadScan(context.Background(), &models.UploadScanRequest{Body: tt.body})

			if tt.wantStatus != 0 {
				requireStatus(t, err, tt.wantStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Scan uploaded successfully", resp.Body.Message)
			repo.AssertExpectations(t)
		})
	}
}
