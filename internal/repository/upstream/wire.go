package upstream

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/pkg/models"
	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// wireScan is a scan as serialized by the scan service. Timestamps may come
// without a zone, in which case they are taken as UTC. Frequencies and
// readings are decoded loosely so one malformed value never rejects the scan
type wireScan struct {
	ID             string `json:"_id"`
	LocationID     string `json:"location_id"`
	Timestamp      string `json:"timestamp"`
	StartFrequency any    `json:"start_frequency"`
	EndFrequency   any    `json:"end_frequency"`
	Readings       []any  `json:"readings"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (w wireScan) toModel() models.Scan {
	return models.Scan{
		ID:             w.ID,
		LocationID:     w.LocationID,
		Timestamp:      parseTimestamp(w.ID, w.Timestamp),
		StartFrequency: parseFrequency(w.StartFrequency),
		EndFrequency:   parseFrequency(w.EndFrequency),
		Readings:       occupancy.Objects(w.Readings),
	}
}

// parseFrequency yields 0 for a missing or non-numeric scan frequency
func parseFrequency(v any) float64 {
	f, _ := occupancy.ParseNumber(v)
	return f
}

func parseTimestamp(scanID, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	log.Warn().Str("scanID", scanID).Str("timestamp", s).Msg("Unparseable scan timestamp")
	return time.Time{}
}
