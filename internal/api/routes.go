package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/whitespace/internal/analysis"
	"github.com/RMahshie/whitespace/internal/api/handlers"
	"github.com/RMahshie/whitespace/internal/export"
	"github.com/RMahshie/whitespace/internal/metrics"
	"github.com/RMahshie/whitespace/internal/repository"
	"github.com/RMahshie/whitespace/internal/storage"
	"github.com/RMahshie/whitespace/pkg/models"
)

// Version is reported by the health endpoint and the OpenAPI document
const Version = "1.0.0"

// Dependencies are the services the HTTP API is built on
type Dependencies struct {
	Repo     repository.ScanRepository
	Analysis analysis.Service
	Exporter export.Exporter
	Store    storage.ObjectStore
	Metrics  *metrics.Metrics
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, deps Dependencies) {
	// Initialize handlers
	scanHandler := handlers.NewScanHandler(deps.Repo)
	analysisHandler := handlers.NewAnalysisHandler(deps.Analysis)
	chartHandler := handlers.NewChartHandler(deps.Analysis)
	exportHandler := handlers.NewExportHandler(deps.Exporter, deps.Store)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = Version
		resp.Body.Time = time.Now()
		return resp, nil
	})

	// Locations and scans are proxied to the scan service
	huma.Register(api, huma.Operation{
		OperationID: "listLocations",
		Method:      http.MethodGet,
		Path:        "/api/locations",
		Summary:     "List locations",
		Description: "Returns every registered monitoring site",
		Tags:        []string{"Scans"},
	}, scanHandler.ListLocations)

	huma.Register(api, huma.Operation{
		OperationID:   "createLocation",
		Method:        http.MethodPost,
		Path:          "/api/locations",
		Summary:       "Create a location",
		Description:   "Registers a new monitoring site",
		Tags:          []string{"Scans"},
		DefaultStatus: http.StatusCreated,
	}, scanHandler.CreateLocation)

	huma.Register(api, huma.Operation{
		OperationID: "listScans",
		Method:      http.MethodGet,
		Path:        "/api/scans",
		Summary:     "List scans",
		Description: "Returns recent scans, most recent first, optionally for one location",
		Tags:        []string{"Scans"},
	}, scanHandler.ListScans)

	huma.Register(api, huma.Operation{
		OperationID:   "uploadScan",
		Method:        http.MethodPost,
		Path:          "/api/scans",
		Summary:       "Upload a scan",
		Description:   "Forwards a .csv, .rfe or .xlsx scan file to the scan service",
		Tags:          []string{"Scans"},
		DefaultStatus: http.StatusCreated,
	}, scanHandler.UploadScan)

	// Analysis
	huma.Register(api, huma.Operation{
		OperationID: "getSpectrum",
		Method:      http.MethodGet,
		Path:        "/api/spectrum",
		Summary:     "Classified spectrum",
		Description: "Classifies every reading of the latest scan of a location against a threshold",
		Tags:        []string{"Analysis"},
	}, analysisHandler.Spectrum)

	huma.Register(api, huma.Operation{
		OperationID: "getOccupancy",
		Method:      http.MethodGet,
		Path:        "/api/analysis/occupancy",
		Summary:     "Channel occupancy",
		Description: "Bins readings into channels and recommends the quietest vacant ones",
		Tags:        []string{"Analysis"},
	}, analysisHandler.Occupancy)

	huma.Register(api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        "/api/dashboard",
		Summary:     "Dashboard statistics",
		Description: "Returns reading counts and recent activity across all locations",
		Tags:        []string{"Analysis"},
	}, analysisHandler.Dashboard)

	huma.Register(api, huma.Operation{
		OperationID: "getWaterfall",
		Method:      http.MethodGet,
		Path:        "/api/waterfall",
		Summary:     "Waterfall matrix",
		Description: "Returns the peak power per frequency bin for recent scans of a location",
		Tags:        []string{"Analysis"},
	}, analysisHandler.Waterfall)

	// Charts
	huma.Register(api, huma.Operation{
		OperationID: "getSpectrumChart",
		Method:      http.MethodGet,
		Path:        "/api/charts/spectrum.png",
		Summary:     "Spectrum chart",
		Description: "Renders the latest spectrum of a location with the threshold line",
		Tags:        []string{"Charts"},
	}, chartHandler.SpectrumPNG)

	huma.Register(api, huma.Operation{
		OperationID: "getSpectrumPage",
		Method:      http.MethodGet,
		Path:        "/api/charts/spectrum.html",
		Summary:     "Interactive spectrum chart",
		Description: "Renders the latest spectrum of a location as an interactive page",
		Tags:        []string{"Charts"},
	}, chartHandler.SpectrumHTML)

	huma.Register(api, huma.Operation{
		OperationID: "getOccupancyChart",
		Method:      http.MethodGet,
		Path:        "/api/charts/occupancy.png",
		Summary:     "Occupancy chart",
		Description: "Renders occupancy bars across the band",
		Tags:        []string{"Charts"},
	}, chartHandler.OccupancyPNG)

	huma.Register(api, huma.Operation{
		OperationID: "getWaterfallChart",
		Method:      http.MethodGet,
		Path:        "/api/charts/waterfall.png",
		Summary:     "Waterfall chart",
		Description: "Renders the waterfall matrix as a heat map",
		Tags:        []string{"Charts"},
	}, chartHandler.WaterfallPNG)

	// Exports
	huma.Register(api, huma.Operation{
		OperationID:   "createExport",
		Method:        http.MethodPost,
		Path:          "/api/exports",
		Summary:       "Export spectrum",
		Description:   "Stores the classified spectrum of a location as CSV and PNG",
		Tags:          []string{"Exports"},
		DefaultStatus: http.StatusCreated,
	}, exportHandler.CreateExport)

	huma.Register(api, huma.Operation{
		OperationID: "getExportFile",
		Method:      http.MethodGet,
		Path:        "/api/exports/files/{id}/{name}",
		Summary:     "Download export file",
		Description: "Serves a stored export artifact",
		Tags:        []string{"Exports"},
	}, exportHandler.GetExportFile)
}
