package occupancy

import "sort"

// DefaultRecommendLimit is how many channels Recommend returns by default
const DefaultRecommendLimit = 8

// Summary is the channel-level occupancy of a reading set
type Summary struct {
	TotalChannels    int     `json:"total_channels" doc:"Distinct channels with at least one sample"`
	OccupiedChannels int     `json:"occupied_channels" doc:"Channels with a strict majority of occupied samples"`
	VacantChannels   int     `json:"vacant_channels" doc:"Channels that are not occupied"`
	OccupiedPct      float64 `json:"occupancy_percentage" doc:"Occupied channels as a percentage of all channels"`
	VacantPct        float64 `json:"vacant_percentage" doc:"Vacant channels as a percentage of all channels"`
}

// SummarizeChannels aggregates already binned channels
func SummarizeChannels(channels []Channel) Summary {
	s := Summary{TotalChannels: len(channels)}
	for _, ch := range channels {
		if ch.IsOccupied() {
			s.OccupiedChannels++
		} else {
			s.VacantChannels++
		}
	}
	if s.TotalChannels == 0 {
		return s
	}
	s.OccupiedPct = 100 * float64(s.OccupiedChannels) / float64(s.TotalChannels)
	s.VacantPct = 100 - s.OccupiedPct
	return s
}

// Summarize bins readings with the plan and aggregates the channels
func (p BandPlan) Summarize(readings []Reading, threshold float64) Summary {
	return SummarizeChannels(p.Bin(readings, threshold))
}

// Summarize aggregates readings using DefaultBandPlan
func Summarize(readings []Reading, threshold float64) Summary {
	return DefaultBandPlan.Summarize(readings, threshold)
}

// Recommend returns up to limit channels ranked by quality and then by vacant
// sample count. A non-positive limit means DefaultRecommendLimit. The input
// is not modified
func Recommend(channels []Channel, limit int) []Channel {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	ranked := make([]Channel, len(channels))
	copy(ranked, channels)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i].Quality.Rank(), ranked[j].Quality.Rank()
		if ri != rj {
			return ri > rj
		}
		return ranked[i].VacantCount > ranked[j].VacantCount
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
