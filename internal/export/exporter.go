package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/internal/analysis"
	"github.com/RMahshie/whitespace/internal/charts"
	"github.com/RMahshie/whitespace/internal/storage"
	"github.com/RMahshie/whitespace/pkg/models"
)

// File names of the artifacts stored per export
const (
	CSVName = "spectrum.csv"
	PNGName = "spectrum.png"
)

var csvHeader = []string{"Frequency (MHz)", "Power (dBm)", "Status", "Timestamp"}

// Exporter renders spectrum artifacts and stores them
type Exporter interface {
	ExportSpectrum(ctx context.Context, locationID string, threshold float64) (*models.ExportResult, error)
}

type exporter struct {
	analysis analysis.Service
	store    storage.ObjectStore
	now      func() time.Time
}

// NewExporter creates an exporter
func NewExporter(analysisSvc analysis.Service, store storage.ObjectStore) Exporter {
	return &exporter{
		analysis: analysisSvc,
		store:    store,
		now:      time.Now,
	}
}

// ExportSpectrum stores the latest spectrum of a location as CSV and PNG
// under a fresh export id
func (e *exporter) ExportSpectrum(ctx context.Context, locationID string, threshold float64) (*models.ExportResult, error) {
	spectrum, err := e.analysis.Spectrum(ctx, locationID, threshold)
	if err != nil {
		return nil, err
	}

	csvData, err := SpectrumCSV(spectrum.Rows)
	if err != nil {
		return nil, err
	}
	pngData, err := charts.SpectrumPNG(spectrum.Rows, threshold)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	result := &models.ExportResult{
		ID:        id,
		CSVKey:    id + "/" + CSVName,
		PNGKey:    id + "/" + PNGName,
		CreatedAt: e.now().UTC(),
	}

	if err := e.store.Put(ctx, result.CSVKey, csvData, "text/csv"); err != nil {
		return nil, fmt.Errorf("failed to store csv: %w", err)
	}
	if err := e.store.Put(ctx, result.PNGKey, pngData, "image/png"); err != nil {
		// Keep the export all-or-nothing
		e.discard(ctx, result.CSVKey)
		return nil, fmt.Errorf("failed to store png: %w", err)
	}

	if result.CSVURL, err = e.store.DownloadURL(ctx, result.CSVKey); err == nil {
		result.PNGURL, err = e.store.DownloadURL(ctx, result.PNGKey)
	}
	if err != nil {
		e.discard(ctx, result.CSVKey, result.PNGKey)
		return nil, fmt.Errorf("failed to sign export urls: %w", err)
	}

	log.Info().
		Str("exportID", id).
		Str("locationID", locationID).
		Int("rows", len(spectrum.Rows)).
		Msg("Spectrum exported")

	return result, nil
}

// discard removes the objects of a failed export
func (e *exporter) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := e.store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to clean up partial export")
		}
	}
}

// SpectrumCSV writes the classified rows as a CSV table
func SpectrumCSV(rows []models.SpectrumRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatFloat(row.Frequency, 'f', -1, 64),
			strconv.FormatFloat(row.Power, 'f', -1, 64),
			string(row.Status),
			row.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
