package scheduling

import (
	"sort"

	"mediastaffing/internal/domain"
)

// roundPct converts covered/total minutes to an integer percentage with
// round-half-up semantics.
func roundPct(covered, total int) int {
	if total <= 0 {
		return 0
	}
	return (covered*100 + total/2) / total
}

// markSlots marks the minutes of each free slot, clipped to the window, on
// the coverage bitmap. Index 0 is the window start.
func markSlots(covered []bool, win span, slots []domain.TimeSlot) error {
	for _, slot := range slots {
		s, err := slotSpan(slot)
		if err != nil {
			return err
		}
		s, ok := s.clip(win.start, win.end)
		if !ok {
			continue
		}
		for m := s.start; m < s.end; m++ {
			covered[m-win.start] = true
		}
	}
	return nil
}

// bitmapGaps scans the coverage bitmap for maximal uncovered runs and
// converts them back to wall-clock slots. A trailing run closes at the
// window end exactly.
func bitmapGaps(covered []bool, win span) []domain.TimeSlot {
	gaps := []domain.TimeSlot{}
	gapStart := -1
	for i, c := range covered {
		if !c {
			if gapStart < 0 {
				gapStart = i
			}
			continue
		}
		if gapStart >= 0 {
			gaps = append(gaps, span{start: win.start + gapStart, end: win.start + i}.toSlot())
			gapStart = -1
		}
	}
	if gapStart >= 0 {
		gaps = append(gaps, span{start: win.start + gapStart, end: win.end}.toSlot())
	}
	return gaps
}

// ComputeCoverage builds a minute-resolution coverage bitmap for the selected
// staff against the event window and reports the coverage percentage and the
// uncovered gaps. The availability list is expected to be pre-filtered to one
// role. Returns (nil, nil) when there is no selection or no time window;
// absence of data is not an error.
func ComputeCoverage(selectedStaffIDs []string, availability []*domain.StaffAvailability, startTime, endTime string) (*domain.AllocationResult, error) {
	if len(selectedStaffIDs) == 0 || startTime == "" || endTime == "" {
		return nil, nil
	}
	win, err := parseWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.StaffAvailability, len(availability))
	for _, a := range availability {
		byID[a.Staff.ID] = a
	}

	covered := make([]bool, win.minutes())
	for _, id := range selectedStaffIDs {
		a, ok := byID[id]
		if !ok {
			continue
		}
		if a.IsFullyAvailable {
			for i := range covered {
				covered[i] = true
			}
			break
		}
		if err := markSlots(covered, win, a.AvailableTimeSlots); err != nil {
			return nil, err
		}
	}

	count := 0
	for _, c := range covered {
		if c {
			count++
		}
	}
	return &domain.AllocationResult{
		CoveragePercentage: roundPct(count, win.minutes()),
		Gaps:               bitmapGaps(covered, win),
	}, nil
}

// freeMinutes sums the slot durations of a partially available staff member.
func freeMinutes(a *domain.StaffAvailability) (int, error) {
	total := 0
	for _, slot := range a.AvailableTimeSlots {
		s, err := slotSpan(slot)
		if err != nil {
			return 0, err
		}
		total += s.minutes()
	}
	return total, nil
}

// RecommendAllocation greedily picks a staff subset to cover the event
// window. Any fully available candidate dominates: the first one found is
// recommended alone with full coverage. Otherwise partially available
// candidates are ranked by total free minutes descending and accepted
// whenever one of their free slots covers at least one new minute; the first
// qualifying slot per candidate is taken, without slot-combination
// optimization. Returns (nil, nil) when there is no time window.
func RecommendAllocation(availability []*domain.StaffAvailability, startTime, endTime string) (*domain.AllocationSuggestion, error) {
	if startTime == "" || endTime == "" {
		return nil, nil
	}
	win, err := parseWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}

	for _, a := range availability {
		if a.IsFullyAvailable {
			return &domain.AllocationSuggestion{
				RecommendedStaff: []string{a.Staff.ID},
				CoverageGaps:     []domain.TimeSlot{},
				TotalCoverage:    100,
			}, nil
		}
	}

	type ranked struct {
		avail   *domain.StaffAvailability
		minutes int
	}
	candidates := make([]ranked, 0, len(availability))
	for _, a := range availability {
		if len(a.AvailableTimeSlots) == 0 {
			continue
		}
		m, err := freeMinutes(a)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, ranked{avail: a, minutes: m})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].minutes > candidates[j].minutes })

	covered := make([]bool, win.minutes())
	recommended := []string{}
	var acceptedSlots []span

	for _, cand := range candidates {
		for _, slot := range cand.avail.AvailableTimeSlots {
			s, err := slotSpan(slot)
			if err != nil {
				return nil, err
			}
			s, ok := s.clip(win.start, win.end)
			if !ok {
				continue
			}
			addsCoverage := false
			for m := s.start; m < s.end; m++ {
				if !covered[m-win.start] {
					addsCoverage = true
					break
				}
			}
			if !addsCoverage {
				continue
			}
			for m := s.start; m < s.end; m++ {
				covered[m-win.start] = true
			}
			recommended = append(recommended, cand.avail.Staff.ID)
			acceptedSlots = append(acceptedSlots, s)
			break
		}
	}

	merged := mergeSpans(acceptedSlots)
	total := 0
	for _, s := range merged {
		total += s.minutes()
	}

	gaps := []domain.TimeSlot{}
	current := win.start
	for _, s := range merged {
		if current < s.start {
			gaps = append(gaps, span{start: current, end: s.start}.toSlot())
		}
		if s.end > current {
			current = s.end
		}
	}
	if current < win.end {
		gaps = append(gaps, span{start: current, end: win.end}.toSlot())
	}

	return &domain.AllocationSuggestion{
		RecommendedStaff: recommended,
		CoverageGaps:     gaps,
		TotalCoverage:    roundPct(total, win.minutes()),
	}, nil
}
