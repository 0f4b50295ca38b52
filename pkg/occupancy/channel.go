package occupancy

import (
	"math"
	"sort"
)

// Quality grades how usable a channel is as white space
type Quality string

const (
	Excellent Quality = "Excellent"
	Good      Quality = "Good"
	Fair      Quality = "Fair"
)

// Rank orders qualities for recommendation: Excellent 3, Good 2, Fair 1
func (q Quality) Rank() int {
	switch q {
	case Excellent:
		return 3
	case Good:
		return 2
	default:
		return 1
	}
}

// Vacant sample counts at which a channel is promoted. These are absolute
// counts, not ratios
const (
	excellentMinVacant = 6
	goodMinVacant      = 3
)

// QualityFor grades a channel from its vacant sample count
func QualityFor(vacantCount int) Quality {
	switch {
	case vacantCount >= excellentMinVacant:
		return Excellent
	case vacantCount >= goodMinVacant:
		return Good
	default:
		return Fair
	}
}

// BandPlan describes how frequencies map onto numbered channels
type BandPlan struct {
	BandStart    float64 // MHz, lower edge of BaseChannel
	ChannelWidth float64 // MHz
	BaseChannel  int
}

// DefaultBandPlan is the UHF broadcast plan: channel 21 starts at 470 MHz and
// every channel is 8 MHz wide
var DefaultBandPlan = BandPlan{BandStart: 470, ChannelWidth: 8, BaseChannel: 21}

// Channel aggregates the readings falling into one channel
type Channel struct {
	Index         int     `json:"index" doc:"Channel number"`
	StartFreq     float64 `json:"start_freq" doc:"Lower channel edge in MHz"`
	EndFreq       float64 `json:"end_freq" doc:"Upper channel edge in MHz"`
	OccupiedCount int     `json:"occupied_count" doc:"Samples above the threshold"`
	VacantCount   int     `json:"vacant_count" doc:"Samples at or below the threshold"`
	Quality       Quality `json:"quality" enum:"Excellent,Good,Fair" doc:"White space quality"`
}

// Total is the number of samples binned into the channel
func (c Channel) Total() int {
	return c.OccupiedCount + c.VacantCount
}

// IsOccupied reports whether a strict majority of samples are occupied
func (c Channel) IsOccupied() bool {
	total := c.Total()
	if total == 0 {
		return false
	}
	return float64(c.OccupiedCount)/float64(total) > 0.5
}

// MaxChannelOffset bounds how many channels away from BaseChannel a reading
// may land before it is treated as out of plan
const MaxChannelOffset = 1 << 20

// ChannelIndex returns the channel number a frequency falls into. Frequencies
// below BandStart yield numbers below BaseChannel. It reports false when the
// frequency lies more than MaxChannelOffset channels from BaseChannel
func (p BandPlan) ChannelIndex(frequency float64) (int, bool) {
	offset := math.Floor((frequency - p.BandStart) / p.ChannelWidth)
	if math.IsNaN(offset) || math.Abs(offset) > MaxChannelOffset {
		return 0, false
	}
	return int(offset) + p.BaseChannel, true
}

// ChannelEdges returns the frequency range covered by a channel number
func (p BandPlan) ChannelEdges(index int) (start, end float64) {
	start = p.BandStart + float64(index-p.BaseChannel)*p.ChannelWidth
	return start, start + p.ChannelWidth
}

// Bin groups readings into channels ordered by ascending channel number.
// Readings outside the plan's reach (see ChannelIndex) are skipped
func (p BandPlan) Bin(readings []Reading, threshold float64) []Channel {
	byIndex := make(map[int]*Channel)
	for _, r := range readings {
		idx, ok := p.ChannelIndex(r.Frequency)
		if !ok {
			continue
		}
		ch, ok := byIndex[idx]
		if !ok {
			start, end := p.ChannelEdges(idx)
			ch = &Channel{Index: idx, StartFreq: start, EndFreq: end}
			byIndex[idx] = ch
		}
		if Classify(r, threshold) == Occupied {
			ch.OccupiedCount++
		} else {
			ch.VacantCount++
		}
	}

	channels := make([]Channel, 0, len(byIndex))
	for _, ch := range byIndex {
		ch.Quality = QualityFor(ch.VacantCount)
		channels = append(channels, *ch)
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Index < channels[j].Index
	})
	return channels
}

// BinChannels bins readings using DefaultBandPlan
func BinChannels(readings []Reading, threshold float64) []Channel {
	return DefaultBandPlan.Bin(readings, threshold)
}
