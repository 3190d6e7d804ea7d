package scheduling

import (
	"fmt"
	"sort"

	"mediastaffing/internal/domain"
)

// span is a half-open interval in minutes since midnight. All interval
// arithmetic inside the engine happens on spans; "HH:MM" strings are parsed
// once at the boundary and formatted back on the way out.
type span struct {
	start int
	end   int
}

// TimeToMinutes parses a wall-clock "HH:MM" string into minutes since
// midnight. Malformed input returns an error rather than a garbage value;
// a miscomputed conflict window is worse than a visible failure.
func TimeToMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: malformed time %q", domain.ErrInvalidInput, s)
	}
	var hh, mm int
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: malformed time %q", domain.ErrInvalidInput, s)
		}
	}
	hh = int(s[0]-'0')*10 + int(s[1]-'0')
	mm = int(s[3]-'0')*10 + int(s[4]-'0')
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("%w: time %q out of range", domain.ErrInvalidInput, s)
	}
	return hh*60 + mm, nil
}

// MinutesToTime formats minutes since midnight as zero-padded "HH:MM".
// Values are expected to stay within one calendar day.
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap: an event ending exactly when a class starts is
// not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// mergeSpans sorts spans by start and folds overlapping or adjacent ones
// into single runs. The input slice is not modified.
func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	merged := []span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// clip restricts s to the window [winStart, winEnd). The second return is
// false when nothing of s falls inside the window.
func (s span) clip(winStart, winEnd int) (span, bool) {
	if s.start < winStart {
		s.start = winStart
	}
	if s.end > winEnd {
		s.end = winEnd
	}
	if s.start >= s.end {
		return span{}, false
	}
	return s, true
}

func (s span) minutes() int {
	return s.end - s.start
}

func (s span) toSlot() domain.TimeSlot {
	return domain.TimeSlot{StartTime: MinutesToTime(s.start), EndTime: MinutesToTime(s.end)}
}

// slotSpan parses a TimeSlot into a span.
func slotSpan(slot domain.TimeSlot) (span, error) {
	start, err := TimeToMinutes(slot.StartTime)
	if err != nil {
		return span{}, err
	}
	end, err := TimeToMinutes(slot.EndTime)
	if err != nil {
		return span{}, err
	}
	return span{start: start, end: end}, nil
}

// MergeTimeSlots consolidates overlapping or adjacent slots into single
// spans, sorted by start time.
func MergeTimeSlots(slots []domain.TimeSlot) ([]domain.TimeSlot, error) {
	spans := make([]span, 0, len(slots))
	for _, slot := range slots {
		s, err := slotSpan(slot)
		if err != nil {
			return nil, err
		}
		spans = append(spans, s)
	}
	merged := mergeSpans(spans)
	out := make([]domain.TimeSlot, len(merged))
	for i, s := range merged {
		out[i] = s.toSlot()
	}
	return out, nil
}

// parseWindow validates and parses an event time window. Inverted and
// midnight-crossing windows are rejected.
func parseWindow(startTime, endTime string) (span, error) {
	start, err := TimeToMinutes(startTime)
	if err != nil {
		return span{}, err
	}
	end, err := TimeToMinutes(endTime)
	if err != nil {
		return span{}, err
	}
	if end <= start {
		return span{}, fmt.Errorf("%w: %s-%s", domain.ErrInvalidTimeWindow, startTime, endTime)
	}
	return span{start: start, end: end}, nil
}

// ValidateWindow checks that startTime and endTime form a valid same-day
// window. Used by callers that persist events before any availability query.
func ValidateWindow(startTime, endTime string) error {
	_, err := parseWindow(startTime, endTime)
	return err
}
