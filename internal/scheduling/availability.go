package scheduling

import (
	"fmt"
	"sort"
	"time"

	"mediastaffing/internal/domain"
)

// subtractConflicts walks the conflicts left to right and emits the free
// sub-intervals of the window, clipping each conflict to the window bounds.
func subtractConflicts(win span, conflicts []conflictSpan) []span {
	clipped := make([]span, 0, len(conflicts))
	for _, c := range conflicts {
		if s, ok := c.span.clip(win.start, win.end); ok {
			clipped = append(clipped, s)
		}
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].start < clipped[j].start })

	var free []span
	current := win.start
	for _, c := range clipped {
		if current < c.start {
			free = append(free, span{start: current, end: c.start})
		}
		if c.end > current {
			current = c.end
		}
	}
	if current < win.end {
		free = append(free, span{start: current, end: win.end})
	}
	return free
}

// fullyAvailable builds the verdict for a staff member with no conflicts:
// the whole window is free.
func fullyAvailable(staff *domain.StaffMember, win span) *domain.StaffAvailability {
	return &domain.StaffAvailability{
		Staff:                staff,
		IsFullyAvailable:     true,
		AvailableTimeSlots:   []domain.TimeSlot{win.toSlot()},
		ConflictingTimeSlots: []domain.TimeConflict{},
	}
}

// ComputeAvailability evaluates every staff member against one event window
// and classifies each as fully available, partially available (with the
// exact free sub-intervals and conflict reasons), or unavailable.
//
// With ignoreScheduleConflicts set, every staff member is reported fully
// available and no conflict detection runs. With classSuspended set, subject
// schedule conflicts are skipped; regular schedules and leave dates still
// apply. The computation is a pure function of its inputs; the roster is
// never mutated.
func ComputeAvailability(staffList []*domain.StaffMember, eventDate, startTime, endTime string, ignoreScheduleConflicts, classSuspended bool) ([]*domain.StaffAvailability, error) {
	win, err := parseWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, eventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed event date %q", domain.ErrInvalidInput, eventDate)
	}

	results := make([]*domain.StaffAvailability, 0, len(staffList))
	for _, staff := range staffList {
		if ignoreScheduleConflicts {
			results = append(results, fullyAvailable(staff, win))
			continue
		}

		conflicts, err := detectConflicts(staff, date, win, classSuspended)
		if err != nil {
			return nil, fmt.Errorf("detect conflicts for %s: %w", staff.ID, err)
		}
		if len(conflicts) == 0 {
			results = append(results, fullyAvailable(staff, win))
			continue
		}

		free := subtractConflicts(win, conflicts)
		slots := make([]domain.TimeSlot, len(free))
		for i, s := range free {
			slots[i] = s.toSlot()
		}
		conflictSlots := make([]domain.TimeConflict, len(conflicts))
		for i, c := range conflicts {
			conflictSlots[i] = domain.TimeConflict{
				StartTime: MinutesToTime(c.start),
				EndTime:   MinutesToTime(c.end),
				Reason:    c.reason,
			}
		}
		results = append(results, &domain.StaffAvailability{
			Staff:                staff,
			IsFullyAvailable:     false,
			AvailableTimeSlots:   slots,
			ConflictingTimeSlots: conflictSlots,
		})
	}
	return results, nil
}
