package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/internal/repository"
	"github.com/RMahshie/whitespace/pkg/models"
	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// Waterfall builds a time by frequency grid of the most recent scans of a
// location. Each cell holds the strongest reading in its frequency bin.
func (s *service) Waterfall(ctx context.Context, locationID string, limit, bins int) (*models.WaterfallMatrix, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: bins must be positive", ErrInvalidQuery)
	}

	scans, err := s.repo.ListScans(ctx, models.ScanQuery{LocationID: locationID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	if len(scans) == 0 {
		return nil, fmt.Errorf("no scans for location %s: %w", locationID, repository.ErrNotFound)
	}

	// Oldest first
	perScan := make([][]occupancy.Reading, len(scans))
	minF, maxF := math.Inf(1), math.Inf(-1)
	for i := range scans {
		readings := scans[len(scans)-1-i].NormalizedReadings()
		perScan[i] = readings
		for _, r := range readings {
			minF = math.Min(minF, r.Frequency)
			maxF = math.Max(maxF, r.Frequency)
		}
	}

	matrix := &models.WaterfallMatrix{
		Frequencies: []float64{},
		Times:       make([]time.Time, len(scans)),
		Power:       make([][]*float64, len(scans)),
	}
	for i := range scans {
		matrix.Times[i] = scans[len(scans)-1-i].Timestamp
	}

	if math.IsInf(minF, 1) {
		for i := range matrix.Power {
			matrix.Power[i] = []*float64{}
		}
		return matrix, nil
	}

	width := (maxF - minF) / float64(bins)
	if width == 0 {
		width = 1
	}
	matrix.BinWidth = width
	matrix.Frequencies = make([]float64, bins)
	for b := range matrix.Frequencies {
		matrix.Frequencies[b] = minF + float64(b)*width
	}

	for i, readings := range perScan {
		row := make([]*float64, bins)
		for _, r := range readings {
			b := int((r.Frequency - minF) / width)
			if b >= bins {
				b = bins - 1
			}
			if row[b] == nil || r.Power > *row[b] {
				p := r.Power
				row[b] = &p
			}
		}
		matrix.Power[i] = row
	}

	log.Debug().
		Str("locationID", locationID).
		Int("scans", len(scans)).
		Int("bins", bins).
		Msg("Waterfall built")

	return matrix, nil
}
