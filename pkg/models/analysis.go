package models

import (
	"time"

	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// ListLocationsResponse lists the monitoring sites
type ListLocationsResponse struct {
	Body []Location
}

// CreateLocationRequest registers a new monitoring site
type CreateLocationRequest struct {
	Body NewLocation
}

// CreateLocationResponse returns the created site
type CreateLocationResponse struct {
	Body Location
}

// ListScansRequest filters the scan listing
type ListScansRequest struct {
	LocationID string `query:"location_id" doc:"Only scans taken at this location"`
	Limit      int    `query:"limit" default:"10" minimum:"1" maximum:"100" doc:"Maximum number of scans"`
}

// ListScansResponse lists scans, most recent first
type ListScansResponse struct {
	Body []Scan
}

// Content encodings accepted for uploaded scan files
const (
	EncodingText   = "text"
	EncodingBase64 = "base64"
)

// UploadScanBody is a scan file sent as JSON
type UploadScanBody struct {
	LocationID     string  `json:"location_id" minLength:"1" required:"true" doc:"Location the scan was taken at"`
	StartFrequency float64 `json:"start_frequency" default:"470" doc:"Sweep start in MHz"`
	EndFrequency   float64 `json:"end_frequency" default:"790" doc:"Sweep end in MHz"`
	Filename       string  `json:"filename" minLength:"1" maxLength:"255" required:"true" doc:"Original file name (.csv, .rfe, .xlsx)"`
	Encoding       string  `json:"encoding,omitempty" enum:"text,base64" default:"text" doc:"How content is encoded; binary files must use base64"`
	Content        string  `json:"content" minLength:"1" maxLength:"7340032" required:"true" doc:"File content, at most 5 MiB once decoded"`
}

// UploadScanRequest forwards a scan file to the scan service
type UploadScanRequest struct {
	Body UploadScanBody
}

// UploadScanResult confirms an upload
type UploadScanResult struct {
	Message string `json:"message" doc:"Confirmation message"`
	Scan    *Scan  `json:"scan,omitempty" doc:"Scan as stored by the scan service"`
}

// UploadScanResponse wraps UploadScanResult
type UploadScanResponse struct {
	Body UploadScanResult
}

// SpectrumRequest selects the latest scan of a location
type SpectrumRequest struct {
	LocationID string  `query:"location_id" required:"true" doc:"Location identifier"`
	Threshold  float64 `query:"threshold" default:"-110" minimum:"-130" maximum:"-50" doc:"Occupancy threshold in dBm"`
}

// SpectrumResult is the classified latest scan of a location
type SpectrumResult struct {
	LocationID    string          `json:"location_id"`
	ScanID        string          `json:"scan_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Threshold     float64         `json:"threshold_dbm"`
	Rows          []SpectrumRow   `json:"rows"`
	OccupiedCount int             `json:"occupied_count"`
	VacantCount   int             `json:"vacant_count"`
	Stats         occupancy.Stats `json:"stats"`
}

// SpectrumResponse wraps SpectrumResult
type SpectrumResponse struct {
	Body SpectrumResult
}

// Time ranges accepted by the occupancy analysis
const (
	TimeRangeDay    = "day"
	TimeRangeWeek   = "week"
	TimeRangeMonth  = "month"
	TimeRangeCustom = "custom"
)

// AllLocations selects scans from every location
const AllLocations = "all"

// OccupancyRequest selects the scans to analyse
type OccupancyRequest struct {
	LocationID string    `query:"location_id" default:"all" doc:"Location identifier or 'all'"`
	TimeRange  string    `query:"time_range" default:"week" enum:"day,week,month,custom" doc:"Scan age window"`
	From       time.Time `query:"from" doc:"Start of a custom range (RFC 3339)"`
	To         time.Time `query:"to" doc:"End of a custom range (RFC 3339)"`
	Threshold  float64   `query:"threshold" default:"-110" minimum:"-130" maximum:"-50" doc:"Occupancy threshold in dBm"`
}

// OccupancyQuery is the service-level form of OccupancyRequest
type OccupancyQuery struct {
	LocationID string
	TimeRange  string
	From       time.Time
	To         time.Time
	Threshold  float64
}

// OccupancyResult is the white space analysis of a set of scans
type OccupancyResult struct {
	occupancy.Summary
	LocationID            string              `json:"location_id"`
	TimeRange             string              `json:"time_range"`
	Threshold             float64             `json:"threshold_dbm"`
	ScanCount             int                 `json:"scan_count"`
	ReadingCount          int                 `json:"reading_count"`
	AvailableBandwidthMHz float64             `json:"available_bandwidth_mhz" doc:"Vacant channels times channel width"`
	OccupiedFrequencies   []float64           `json:"occupied_frequencies"`
	VacantFrequencies     []float64           `json:"vacant_frequencies"`
	Channels              []occupancy.Channel `json:"channels"`
	Recommended           []occupancy.Channel `json:"recommended_channels"`
	Bars                  []occupancy.Bar     `json:"bars"`
}

// OccupancyResponse wraps OccupancyResult
type OccupancyResponse struct {
	Body OccupancyResult
}

// DashboardRequest carries the threshold used for reading counts
type DashboardRequest struct {
	Threshold float64 `query:"threshold" default:"-110" minimum:"-130" maximum:"-50" doc:"Occupancy threshold in dBm"`
}

// Activity is one line of the recent activity feed
type Activity struct {
	Action   string `json:"action"`
	Location string `json:"location"`
	Time     string `json:"time" doc:"Relative time, e.g. '5 minutes ago'"`
}

// DashboardStats is the overview across all locations
type DashboardStats struct {
	TotalReadings     int        `json:"total_readings"`
	ActiveFrequencies int        `json:"active_frequencies"`
	VacantFrequencies int        `json:"vacant_frequencies"`
	VacantPercentage  float64    `json:"vacant_percentage"`
	LastUpload        *time.Time `json:"last_upload,omitempty"`
	Locations         int        `json:"locations"`
	RecentActivity    []Activity `json:"recent_activity"`
}

// DashboardResponse wraps DashboardStats
type DashboardResponse struct {
	Body DashboardStats
}

// WaterfallRequest selects the scans of a waterfall
type WaterfallRequest struct {
	LocationID string `query:"location_id" required:"true" doc:"Location identifier"`
	Limit      int    `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Number of most recent scans"`
	Bins       int    `query:"bins" default:"100" minimum:"10" maximum:"500" doc:"Number of frequency bins"`
}

// WaterfallResponse wraps WaterfallMatrix
type WaterfallResponse struct {
	Body WaterfallMatrix
}

// BinaryResponse carries a rendered chart or exported file
type BinaryResponse struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

// ExportBody selects the spectrum to export
type ExportBody struct {
	LocationID string  `json:"location_id" minLength:"1" required:"true" doc:"Location identifier"`
	Threshold  float64 `json:"threshold" default:"-110" minimum:"-130" maximum:"-50" doc:"Occupancy threshold in dBm"`
}

// ExportRequest asks for the spectrum artifacts of a location
type ExportRequest struct {
	Body ExportBody
}

// ExportResult points at the stored artifacts
type ExportResult struct {
	ID        string    `json:"id" doc:"Export identifier"`
	CSVKey    string    `json:"csv_key"`
	CSVURL    string    `json:"csv_url"`
	PNGKey    string    `json:"png_key"`
	PNGURL    string    `json:"png_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportResponse wraps ExportResult
type ExportResponse struct {
	Body ExportResult
}

// ExportFileRequest addresses one stored export artifact
type ExportFileRequest struct {
	ID   string `path:"id" doc:"Export identifier"`
	Name string `path:"name" doc:"File name"`
}
