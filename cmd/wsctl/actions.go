package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/RMahshie/whitespace/internal/analysis"
	"github.com/RMahshie/whitespace/internal/repository/upstream"
	"github.com/RMahshie/whitespace/pkg/models"
	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// report is what summary, channels and classify print in JSON mode
type report struct {
	Summary     occupancy.Summary   `json:"summary"`
	Readings    int                 `json:"readings"`
	Dropped     int                 `json:"dropped,omitempty"`
	Channels    []occupancy.Channel `json:"channels,omitempty"`
	Recommended []occupancy.Channel `json:"recommended_channels,omitempty"`
}

func scanClient(c *cli.Context) *upstream.Client {
	return upstream.NewClient(upstream.Options{
		BaseURL: c.String("api-url"),
		Timeout: c.Duration("timeout"),
		Retries: 1,
	}, nil)
}

func readThreshold(c *cli.Context) (float64, error) {
	th := c.Float64("threshold")
	if th < occupancy.MinThreshold || th > occupancy.MaxThreshold {
		return 0, fmt.Errorf("threshold must be within [%g, %g] dBm, got %g",
			occupancy.MinThreshold, occupancy.MaxThreshold, th)
	}
	return th, nil
}

// LocationsAction lists the monitoring sites
func LocationsAction(c *cli.Context) error {
	locations, err := scanClient(c).ListLocations(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list locations: %w", err)
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, locations)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLATITUDE\tLONGITUDE\tACTIVE")
	for _, loc := range locations {
		fmt.Fprintf(tw, "%s\t%s\t%.5f\t%.5f\t%t\n", loc.ID, loc.Name, loc.Latitude, loc.Longitude, loc.Active)
	}
	return tw.Flush()
}

func occupancyFromService(c *cli.Context) (*models.OccupancyResult, error) {
	th, err := readThreshold(c)
	if err != nil {
		return nil, err
	}
	svc := analysis.NewService(scanClient(c), nil, analysis.DefaultOptions)
	return svc.Occupancy(c.Context, models.OccupancyQuery{
		LocationID: c.String("location"),
		TimeRange:  c.String("range"),
		Threshold:  th,
	})
}

// SummaryAction prints the channel occupancy summary of recent scans
func SummaryAction(c *cli.Context) error {
	result, err := occupancyFromService(c)
	if err != nil {
		return err
	}
	rep := report{Summary: result.Summary, Readings: result.ReadingCount}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, rep)
	}
	fmt.Fprintf(c.App.Writer, "Scans: %d (%s, location %s)\n", result.ScanCount, result.TimeRange, result.LocationID)
	writeSummary(c.App.Writer, rep)
	return nil
}

// ChannelsAction prints every channel and the recommended ones
func ChannelsAction(c *cli.Context) error {
	result, err := occupancyFromService(c)
	if err != nil {
		return err
	}
	rep := report{
		Summary:     result.Summary,
		Readings:    result.ReadingCount,
		Channels:    result.Channels,
		Recommended: result.Recommended,
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, rep)
	}
	return writeChannels(c.App.Writer, rep)
}

// ClassifyAction bins a local JSON array of raw readings into channels
func ClassifyAction(c *cli.Context) error {
	th, err := readThreshold(c)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read readings: %w", err)
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse readings: %w", err)
	}

	readings := occupancy.NormalizeAll(occupancy.Objects(raw))
	channels := occupancy.BinChannels(readings, th)
	rep := report{
		Summary:     occupancy.SummarizeChannels(channels),
		Readings:    len(readings),
		Dropped:     len(raw) - len(readings),
		Channels:    channels,
		Recommended: occupancy.Recommend(channels, occupancy.DefaultRecommendLimit),
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, rep)
	}
	return writeChannels(c.App.Writer, rep)
}

func writeSummary(w io.Writer, rep report) {
	s := rep.Summary
	if rep.Dropped > 0 {
		fmt.Fprintf(w, "Readings: %d valid, %d dropped\n", rep.Readings, rep.Dropped)
	} else {
		fmt.Fprintf(w, "Readings: %d\n", rep.Readings)
	}
	fmt.Fprintf(w, "Channels: %d total, %d occupied, %d vacant (%.1f%% occupied)\n",
		s.TotalChannels, s.OccupiedChannels, s.VacantChannels, s.OccupiedPct)
}

func writeChannels(w io.Writer, rep report) error {
	writeSummary(w, rep)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tRANGE (MHz)\tOCCUPIED\tVACANT\tSTATUS\tQUALITY")
	for _, ch := range rep.Channels {
		status := occupancy.Vacant
		if ch.IsOccupied() {
			status = occupancy.Occupied
		}
		fmt.Fprintf(tw, "%d\t%g-%g\t%d\t%d\t%s\t%s\n",
			ch.Index, ch.StartFreq, ch.EndFreq, ch.OccupiedCount, ch.VacantCount, status, ch.Quality)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Recommended) == 0 {
		fmt.Fprintln(w, "\nNo vacant channels to recommend")
		return nil
	}
	fmt.Fprint(w, "\nRecommended:")
	for _, ch := range rep.Recommended {
		fmt.Fprintf(w, " %d (%s)", ch.Index, ch.Quality)
	}
	fmt.Fprintln(w)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
