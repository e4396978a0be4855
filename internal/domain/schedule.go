package domain

import "time"

// CandidateRange is a start/end slot produced by the schedule generator. It
// has no identity until persisted as an AvailableTimeRange.
type CandidateRange struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// Overlaps reports whether the half-open intervals [a.Start, a.End) and
// [b.Start, b.End) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// GenerateAvailableRanges computes the open slots for scheduling a movie in a
// room on a given date. Starting at the cinema's opening time it steps
// forward in movie-length increments until the closing time, discarding any
// candidate that would overrun closing or overlap an existing session's time
// ranges. Deleted ranges do not block a slot.
//
// The result is in chronological order and is deterministic for unchanged
// inputs. A window shorter than the movie yields no slot; there are no
// partial trailing slots.
func GenerateAvailableRanges(
	cinema *Cinema,
	date time.Time,
	movieLength time.Duration,
	existing []Session,
) []CandidateRange {

	if movieLength <= 0 {
		return nil
	}

	opening := cinema.OpeningTime.On(date)
	closing := cinema.ClosingTime.On(date)

	var taken []TimeRange
	for _, session := range existing {
		for _, tr := range session.TimeRanges {
			if tr.Status == TimeRangeStatusDeleted {
				continue
			}
			taken = append(taken, tr)
		}
	}

	candidates := make([]CandidateRange, 0)

	for start := opening; ; start = start.Add(movieLength) {
		end := start.Add(movieLength)
		if end.After(closing) {
			break
		}

		free := true
		for _, tr := range taken {
			if Overlaps(start, end, tr.StartsAt, tr.EndsAt) {
				free = false
				break
			}
		}

		if free {
			candidates = append(candidates, CandidateRange{StartsAt: start, EndsAt: end})
		}
	}

	return candidates
}
