package occupancy

// Bar is one equal-width frequency range of the occupancy bar chart
type Bar struct {
	StartFreq     float64 `json:"start_freq"`
	EndFreq       float64 `json:"end_freq"`
	OccupiedCount int     `json:"occupied_count"`
	VacantCount   int     `json:"vacant_count"`
	Occupied      bool    `json:"is_occupied" doc:"More than half of the samples are occupied"`
	Height        float64 `json:"height" doc:"Relative bar height in percent"`
}

// Bar heights: empty ranges stay visible at the minimum height
const (
	emptyBarHeight  = 20.0
	filledBarHeight = 100.0
)

// Bars splits [start, end) into count equal ranges and tallies the distinct
// occupied and vacant frequencies in each, so a frequency seen in many scans
// counts once per status. Readings outside the span are ignored
func Bars(readings []Reading, threshold, start, end float64, count int) []Bar {
	if count <= 0 || end <= start {
		return []Bar{}
	}
	size := (end - start) / float64(count)
	bars := make([]Bar, count)
	for i := range bars {
		bars[i].StartFreq = start + float64(i)*size
		bars[i].EndFreq = bars[i].StartFreq + size
	}

	type sample struct {
		frequency float64
		status    Status
	}
	seen := make(map[sample]struct{}, len(readings))
	for _, r := range readings {
		if r.Frequency < start || r.Frequency >= end {
			continue
		}
		status := Classify(r, threshold)
		key := sample{r.Frequency, status}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		i := int((r.Frequency - start) / size)
		if i >= count {
			i = count - 1
		}
		if status == Occupied {
			bars[i].OccupiedCount++
		} else {
			bars[i].VacantCount++
		}
	}

	for i := range bars {
		total := bars[i].OccupiedCount + bars[i].VacantCount
		bars[i].Height = emptyBarHeight
		if total > 0 {
			bars[i].Height = filledBarHeight
			bars[i].Occupied = float64(bars[i].OccupiedCount)/float64(total) > 0.5
		}
	}
	return bars
}
