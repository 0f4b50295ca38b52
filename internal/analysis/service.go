package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/internal/metrics"
	"github.com/RMahshie/whitespace/internal/repository"
	"github.com/RMahshie/whitespace/pkg/models"
	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// ErrInvalidQuery is returned for analysis queries that cannot be answered
// as asked, e.g. a custom time range without bounds
var ErrInvalidQuery = errors.New("invalid analysis query")

// Service runs the occupancy classifier over scans from the scan service
type Service interface {
	Spectrum(ctx context.Context, locationID string, threshold float64) (*models.SpectrumResult, error)
	Occupancy(ctx context.Context, query models.OccupancyQuery) (*models.OccupancyResult, error)
	Dashboard(ctx context.Context, threshold float64) (*models.DashboardStats, error)
	Waterfall(ctx context.Context, locationID string, limit, bins int) (*models.WaterfallMatrix, error)
}

// Options holds the band plan and result sizes
type Options struct {
	Plan           occupancy.BandPlan
	BandEnd        float64
	BarCount       int
	RecommendLimit int
	FetchLimit     int
}

// DefaultOptions matches the UHF television band
var DefaultOptions = Options{
	Plan:           occupancy.DefaultBandPlan,
	BandEnd:        790,
	BarCount:       20,
	RecommendLimit: occupancy.DefaultRecommendLimit,
	FetchLimit:     100,
}

type service struct {
	repo    repository.ScanRepository
	metrics *metrics.Metrics
	opts    Options
	now     func() time.Time
}

// NewService creates an analysis service
func NewService(repo repository.ScanRepository, m *metrics.Metrics, opts Options) Service {
	return &service{
		repo:    repo,
		metrics: m,
		opts:    opts,
		now:     time.Now,
	}
}

// Spectrum classifies every reading of the latest scan of a location
func (s *service) Spectrum(ctx context.Context, locationID string, threshold float64) (*models.SpectrumResult, error) {
	scan, err := s.repo.LatestScan(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest scan: %w", err)
	}

	readings := scan.NormalizedReadings()
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Frequency < readings[j].Frequency
	})

	result := &models.SpectrumResult{
		LocationID: locationID,
		ScanID:     scan.ID,
		Timestamp:  scan.Timestamp,
		Threshold:  threshold,
		Rows:       make([]models.SpectrumRow, 0, len(readings)),
		Stats:      occupancy.ComputeStats(readings),
	}
	for _, r := range readings {
		status := occupancy.Classify(r, threshold)
		if status == occupancy.Occupied {
			result.OccupiedCount++
		} else {
			result.VacantCount++
		}
		result.Rows = append(result.Rows, models.SpectrumRow{
			Frequency: r.Frequency,
			Power:     r.Power,
			Status:    status,
			Timestamp: scan.Timestamp,
		})
	}
	s.metrics.CountReadings(result.OccupiedCount, result.VacantCount)

	log.Info().
		Str("locationID", locationID).
		Str("scanID", scan.ID).
		Int("readings", len(readings)).
		Int("dropped", len(scan.Readings)-len(readings)).
		Msg("Spectrum classified")

	return result, nil
}

// Occupancy bins the readings of every scan in the query window into
// channels and summarizes them
func (s *service) Occupancy(ctx context.Context, query models.OccupancyQuery) (*models.OccupancyResult, error) {
	from, to, err := s.window(query)
	if err != nil {
		return nil, err
	}

	scanQuery := models.ScanQuery{LocationID: query.LocationID, Limit: s.opts.FetchLimit}
	if query.LocationID == models.AllLocations {
		scanQuery.LocationID = ""
	}
	scans, err := s.repo.ListScans(ctx, scanQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}

	var readings []occupancy.Reading
	scanCount := 0
	for i := range scans {
		ts := scans[i].Timestamp
		if ts.Before(from) || ts.After(to) {
			continue
		}
		scanCount++
		readings = append(readings, scans[i].NormalizedReadings()...)
	}

	plan := s.opts.Plan
	channels := plan.Bin(readings, query.Threshold)
	summary := occupancy.SummarizeChannels(channels)
	occupiedFreqs, vacantFreqs := splitFrequencies(readings, query.Threshold)

	result := &models.OccupancyResult{
		Summary:               summary,
		LocationID:            query.LocationID,
		TimeRange:             query.TimeRange,
		Threshold:             query.Threshold,
		ScanCount:             scanCount,
		ReadingCount:          len(readings),
		AvailableBandwidthMHz: float64(summary.VacantChannels) * plan.ChannelWidth,
		OccupiedFrequencies:   occupiedFreqs,
		VacantFrequencies:     vacantFreqs,
		Channels:              channels,
		Recommended:           occupancy.Recommend(channels, s.opts.RecommendLimit),
		Bars:                  occupancy.Bars(readings, query.Threshold, plan.BandStart, s.opts.BandEnd, s.opts.BarCount),
	}
	s.metrics.SetOccupancy(query.LocationID, summary.OccupiedPct)

	log.Info().
		Str("locationID", query.LocationID).
		Str("timeRange", query.TimeRange).
		Int("scans", scanCount).
		Int("channels", summary.TotalChannels).
		Float64("occupancyPct", summary.OccupiedPct).
		Msg("Occupancy analysed")

	return result, nil
}

// window resolves the query time range to inclusive bounds
func (s *service) window(query models.OccupancyQuery) (time.Time, time.Time, error) {
	now := s.now()
	switch query.TimeRange {
	case models.TimeRangeDay:
		return now.Add(-24 * time.Hour), now, nil
	case models.TimeRangeWeek, "":
		return now.AddDate(0, 0, -7), now, nil
	case models.TimeRangeMonth:
		return now.AddDate(0, 0, -30), now, nil
	case models.TimeRangeCustom:
		if query.From.IsZero() || query.To.IsZero() {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: custom time range requires from and to", ErrInvalidQuery)
		}
		if !query.From.Before(query.To) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be before to", ErrInvalidQuery)
		}
		return query.From, query.To, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown time range %q", ErrInvalidQuery, query.TimeRange)
	}
}

// splitFrequencies returns the distinct frequencies of occupied and vacant
// readings, ascending
func splitFrequencies(readings []occupancy.Reading, threshold float64) ([]float64, []float64) {
	occupied := map[float64]struct{}{}
	vacant := map[float64]struct{}{}
	for _, r := range readings {
		if occupancy.Classify(r, threshold) == occupancy.Occupied {
			occupied[r.Frequency] = struct{}{}
		} else {
			vacant[r.Frequency] = struct{}{}
		}
	}
	return sortedKeys(occupied), sortedKeys(vacant)
}

func sortedKeys(set map[float64]struct{}) []float64 {
	keys := make([]float64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}
