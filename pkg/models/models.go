package models

import (
	"time"

	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// Location is a monitoring site as stored by the scan service
type Location struct {
	ID        string  `json:"_id" doc:"Location identifier"`
	Name      string  `json:"name" doc:"Display name"`
	Latitude  float64 `json:"latitude" doc:"Latitude in decimal degrees"`
	Longitude float64 `json:"longitude" doc:"Longitude in decimal degrees"`
	Active    bool    `json:"active" doc:"Whether the site is currently monitored"`
}

// NewLocation is the payload for registering a monitoring site
type NewLocation struct {
	Name      string  `json:"name" minLength:"1" maxLength:"100" required:"true" doc:"Display name"`
	Latitude  float64 `json:"latitude" minimum:"-90" maximum:"90" required:"true" doc:"Latitude in decimal degrees"`
	Longitude float64 `json:"longitude" minimum:"-180" maximum:"180" required:"true" doc:"Longitude in decimal degrees"`
	Active    bool    `json:"active" default:"true" doc:"Whether the site is currently monitored"`
}

// Scan is one sweep uploaded for a location. Readings are kept raw because
// the collector and manual entry disagree on field casing
type Scan struct {
	ID             string           `json:"_id" doc:"Scan identifier"`
	LocationID     string           `json:"location_id" doc:"Location the scan was taken at"`
	Timestamp      time.Time        `json:"timestamp" doc:"When the scan was taken"`
	StartFrequency float64          `json:"start_frequency,omitempty" doc:"Sweep start in MHz"`
	EndFrequency   float64          `json:"end_frequency,omitempty" doc:"Sweep end in MHz"`
	Readings       []map[string]any `json:"readings" doc:"Raw frequency/power readings"`
}

// NormalizedReadings returns the scan's well-formed readings
func (s *Scan) NormalizedReadings() []occupancy.Reading {
	return occupancy.NormalizeAll(s.Readings)
}

// ScanUpload is a scan file forwarded to the scan service
type ScanUpload struct {
	LocationID     string
	StartFrequency float64
	EndFrequency   float64
	Filename       string
	Content        []byte
}

// ScanQuery filters scan listings. An empty LocationID lists all locations
type ScanQuery struct {
	LocationID string
	Limit      int
}
