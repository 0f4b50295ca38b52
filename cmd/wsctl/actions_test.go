package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readingsJSON = `[
	{"frequency": 470, "power": -95},
	{"Frequency": 471, "Power": -120},
	{"frequency": 479, "power": -95},
	{"frequency": "abc", "power": -90}
]`

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"wsctl"}, args...))
	return out.String(), err
}

func writeReadings(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "readings.json")
	require.NoError(t, os.WriteFile(path, []byte(readingsJSON), 0o644))
	return path
}

func TestClassifyAction(t *testing.T) {
	out, err := runApp(t, "classify", "--file", writeReadings(t))

	require.NoError(t, err)
	assert.Contains(t, out, "Readings: 3 valid, 1 dropped")
	assert.Contains(t, out, "Channels: 2 total, 1 occupied, 1 vacant (50.0% occupied)")
	assert.Contains(t, out, "Recommended: 21 (Fair) 22 (Fair)")
}

func TestClassifyAction_NonObjectElements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.json")
	mixed := `[{"frequency": 470, "power": -95}, "garbage", [471, -130], null, {"Frequency": 471, "Power": -120}]`
	require.NoError(t, os.WriteFile(path, []byte(mixed), 0o644))

	out, err := runApp(t, "classify", "--file", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Readings: 2 valid, 3 dropped")
	assert.Contains(t, out, "Channels: 1 total, 0 occupied, 1 vacant (0.0% occupied)")
}

func TestClassifyAction_JSON(t *testing.T) {
	out, err := runApp(t, "--json", "classify", "--file", writeReadings(t), "--threshold", "-100")
	require.NoError(t, err)

	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 3, rep.Readings)
	assert.Equal(t, 1, rep.Dropped)
	require.Len(t, rep.Channels, 2)
	assert.Equal(t, 21, rep.Channels[0].Index)
	assert.Equal(t, 1, rep.Channels[0].OccupiedCount)
	assert.Equal(t, 1, rep.Channels[0].VacantCount)
	assert.Equal(t, 22, rep.Channels[1].Index)
	assert.Equal(t, 50.0, rep.Summary.OccupiedPct)
}

func TestClassifyAction_Errors(t *testing.T) {
	badJSON := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{not json"), 0o644))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "threshold too high", args: []string{"classify", "--file", writeReadings(t), "--threshold", "-20"}, wantErr: "threshold must be within"},
		{name: "missing file", args: []string{"classify", "--file", filepath.Join(t.TempDir(), "nope.json")}, wantErr: "failed to read readings"},
		{name: "invalid json", args: []string{"classify", "--file", badJSON}, wantErr: "failed to parse readings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSummaryAction(t *testing.T) {
	ts := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scans" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `[{"_id":"s1","location_id":"loc-1","timestamp":%q,"readings":%s}]`, ts, readingsJSON)
	}))
	defer srv.Close()

	out, err := runApp(t, "--api-url", srv.URL, "summary", "--location", "loc-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Scans: 1 (week, location loc-1)")
	assert.Contains(t, out, "Channels: 2 total, 1 occupied, 1 vacant (50.0% occupied)")
}

func TestLocationsAction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"_id":"loc-1","name":"Rooftop","latitude":40.1,"longitude":-75.2,"active":true}]`)
	}))
	defer srv.Close()

	out, err := runApp(t, "--api-url", srv.URL, "locations")

	require.NoError(t, err)
	assert.Contains(t, out, "loc-1")
	assert.Contains(t, out, "Rooftop")
}
