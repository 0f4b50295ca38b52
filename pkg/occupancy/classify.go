package occupancy

// Status is the occupancy classification of a reading or a channel
type Status string

const (
	Vacant   Status = "Vacant"
	Occupied Status = "Occupied"
)

// Threshold limits accepted by the API. Classify itself accepts any value
const (
	DefaultThreshold = -110.0
	MinThreshold     = -130.0
	MaxThreshold     = -50.0
)

// Classify labels a reading Occupied when its power is strictly above the
// threshold. A reading exactly at the threshold is Vacant
func Classify(r Reading, threshold float64) Status {
	if r.Power > threshold {
		return Occupied
	}
	return Vacant
}

// Count returns how many readings fall on each side of the threshold
func Count(readings []Reading, threshold float64) (occupied, vacant int) {
	for _, r := range readings {
		if Classify(r, threshold) == Occupied {
			occupied++
		} else {
			vacant++
		}
	}
	return occupied, vacant
}
