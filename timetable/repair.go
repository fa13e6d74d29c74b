package timetable

import (
	"sort"

	"github.com/TrainNomad/raptor-backend/model"
)

// CircularTripSplitGap is the backward-jump threshold past which two
// consecutive stop times are assumed to belong to different physical
// runs of a rolling-stock rotation encoded as one feed trip.
const CircularTripSplitGap = 10 * 60 // seconds

// RepairTrip returns the canonical, strictly non-decreasing stop-time
// sequence for a trip whose feed-supplied order (already sorted by
// stop_sequence) may contain a backward jump caused by a rolling-stock
// rotation sharing one trip_id across its outbound and return runs.
//
// Steps: split at every backward jump greater than
// CircularTripSplitGap, sort the resulting segments by their first
// time, recombine adjacent segments whose boundary is consistent (the
// next segment starts no earlier than CircularTripSplitGap before the
// previous one ended), keep only the longest segment if segments
// remain unmergeable, and finally sort by time rather than by the
// original sequence.
func RepairTrip(stopTimes []model.StopTime) []model.StopTime {
	if len(stopTimes) < 2 {
		return stopTimes
	}

	segments := splitOnBackwardJump(stopTimes)

	sort.SliceStable(segments, func(i, j int) bool {
		return segmentStart(segments[i]) < segmentStart(segments[j])
	})

	merged := mergeAdjacentSegments(segments)
	if len(merged) > 1 {
		merged = [][]model.StopTime{longestSegment(merged)}
	}

	result := append([]model.StopTime(nil), merged[0]...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Departure < result[j].Departure
	})

	return result
}

func splitOnBackwardJump(stopTimes []model.StopTime) [][]model.StopTime {
	var segments [][]model.StopTime
	start := 0
	for i := 1; i < len(stopTimes); i++ {
		if int(stopTimes[i-1].Arrival)-int(stopTimes[i].Arrival) > CircularTripSplitGap {
			segments = append(segments, stopTimes[start:i])
			start = i
		}
	}
	segments = append(segments, stopTimes[start:])
	return segments
}

func segmentStart(seg []model.StopTime) model.Seconds {
	return seg[0].Arrival
}

func segmentEnd(seg []model.StopTime) model.Seconds {
	return seg[len(seg)-1].Departure
}

// mergeAdjacentSegments concatenates segments (already sorted by
// start time) whose boundary is consistent: the next segment may
// start no earlier than CircularTripSplitGap before the previous one
// ended.
func mergeAdjacentSegments(segments [][]model.StopTime) [][]model.StopTime {
	merged := [][]model.StopTime{append([]model.StopTime(nil), segments[0]...)}

	for _, seg := range segments[1:] {
		last := merged[len(merged)-1]
		if int(segmentStart(seg))-int(segmentEnd(last)) >= -CircularTripSplitGap {
			merged[len(merged)-1] = append(last, seg...)
			continue
		}
		merged = append(merged, append([]model.StopTime(nil), seg...))
	}

	return merged
}

func longestSegment(segments [][]model.StopTime) []model.StopTime {
	longest := segments[0]
	for _, seg := range segments[1:] {
		if len(seg) > len(longest) {
			longest = seg
		}
	}
	return longest
}
