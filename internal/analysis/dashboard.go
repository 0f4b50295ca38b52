package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/pkg/models"
	"github.com/RMahshie/whitespace/pkg/occupancy"
)

const (
	dashboardScans   = 10
	recentActivities = 4
)

// Dashboard summarizes the most recent scans across all locations
func (s *service) Dashboard(ctx context.Context, threshold float64) (*models.DashboardStats, error) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	scans, err := s.repo.ListScans(ctx, models.ScanQuery{Limit: dashboardScans})
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}

	stats := &models.DashboardStats{
		Locations:      len(locations),
		RecentActivity: make([]models.Activity, 0, recentActivities),
	}

	for i := range scans {
		occupied, vacant := occupancy.Count(scans[i].NormalizedReadings(), threshold)
		stats.ActiveFrequencies += occupied
		stats.VacantFrequencies += vacant
	}
	stats.TotalReadings = stats.ActiveFrequencies + stats.VacantFrequencies
	if stats.TotalReadings > 0 {
		stats.VacantPercentage = 100 * float64(stats.VacantFrequencies) / float64(stats.TotalReadings)
	}

	// Scans arrive most recent first
	if len(scans) > 0 && !scans[0].Timestamp.IsZero() {
		last := scans[0].Timestamp
		stats.LastUpload = &last
	}

	names := make(map[string]string, len(locations))
	for _, loc := range locations {
		names[loc.ID] = loc.Name
	}

	now := s.now()
	for i := 0; i < len(scans) && len(stats.RecentActivity) < recentActivities; i++ {
		name, ok := names[scans[i].LocationID]
		if !ok {
			name = "Unknown"
		}
		stats.RecentActivity = append(stats.RecentActivity, models.Activity{
			Action:   "Spectrum scan uploaded",
			Location: name,
			Time:     relativeTime(now, scans[i].Timestamp),
		})
	}
	for len(stats.RecentActivity) < recentActivities {
		stats.RecentActivity = append(stats.RecentActivity, models.Activity{
			Action:   "System activity",
			Location: "All sites",
			Time:     "Recently",
		})
	}

	log.Debug().
		Int("locations", stats.Locations).
		Int("scans", len(scans)).
		Int("totalReadings", stats.TotalReadings).
		Msg("Dashboard computed")

	return stats, nil
}

func relativeTime(now, t time.Time) string {
	if t.IsZero() {
		return "Recently"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%d days ago", int(d/(24*time.Hour)))
	}
}
