package models

import (
	"time"

	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// SpectrumRow is one classified reading of the spectrum table
type SpectrumRow struct {
	Frequency float64          `json:"frequency" doc:"Frequency in MHz"`
	Power     float64          `json:"power" doc:"Power in dBm"`
	Status    occupancy.Status `json:"status" enum:"Vacant,Occupied" doc:"Classification against the threshold"`
	Timestamp time.Time        `json:"timestamp" doc:"Scan timestamp"`
}

// WaterfallMatrix is a time by frequency power grid. Cells without readings
// are nil
type WaterfallMatrix struct {
	Frequencies []float64    `json:"frequencies" doc:"Lower edge of each frequency bin in MHz"`
	BinWidth    float64      `json:"bin_width" doc:"Frequency bin width in MHz"`
	Times       []time.Time  `json:"times" doc:"Scan timestamps, oldest first"`
	Power       [][]*float64 `json:"power" doc:"Max power per cell in dBm, null when empty"`
}
