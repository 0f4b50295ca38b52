package occupancy

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the power distribution of a reading set
type Stats struct {
	Count        int     `json:"count"`
	MinPower     float64 `json:"min_power" doc:"Minimum power in dBm"`
	MaxPower     float64 `json:"max_power" doc:"Maximum power in dBm"`
	MeanPower    float64 `json:"mean_power" doc:"Mean power in dBm"`
	MedianPower  float64 `json:"median_power" doc:"Median power in dBm"`
	NoiseFloor   float64 `json:"noise_floor" doc:"5th percentile power in dBm"`
	PeakPower    float64 `json:"peak_power" doc:"95th percentile power in dBm"`
	DynamicRange float64 `json:"dynamic_range" doc:"Peak minus noise floor in dB"`
	MinFrequency float64 `json:"min_frequency" doc:"Lowest frequency in MHz"`
	MaxFrequency float64 `json:"max_frequency" doc:"Highest frequency in MHz"`
}

// ComputeStats returns the power statistics of readings. An empty input
// yields the zero Stats
func ComputeStats(readings []Reading) Stats {
	if len(readings) == 0 {
		return Stats{}
	}

	powers := make([]float64, len(readings))
	freqs := make([]float64, len(readings))
	for i, r := range readings {
		powers[i] = r.Power
		freqs[i] = r.Frequency
	}
	sort.Float64s(powers)

	s := Stats{
		Count:        len(readings),
		MinPower:     powers[0],
		MaxPower:     powers[len(powers)-1],
		MeanPower:    stat.Mean(powers, nil),
		MedianPower:  stat.Quantile(0.5, stat.Empirical, powers, nil),
		NoiseFloor:   stat.Quantile(0.05, stat.Empirical, powers, nil),
		PeakPower:    stat.Quantile(0.95, stat.Empirical, powers, nil),
		MinFrequency: floats.Min(freqs),
		MaxFrequency: floats.Max(freqs),
	}
	s.DynamicRange = s.PeakPower - s.NoiseFloor
	return s
}
