package scheduling

import (
	"fmt"
	"time"

	"mediastaffing/internal/domain"
)

// Conflict reasons reported to callers.
const (
	reasonOnLeave         = "On leave"
	reasonRegularSchedule = "Regular schedule"
	reasonClassFallback   = "Class schedule"
)

const dateLayout = "2006-01-02"

// conflictSpan is a blocked interval in minutes with the reason it blocks.
// Schedule conflicts keep the schedule's own times, not clipped to the
// event window; clipping happens during subtraction.
type conflictSpan struct {
	span
	reason string
}

// onLeave reports whether date falls inside any of the staff member's leave
// ranges (inclusive on both ends).
func onLeave(leaves []domain.LeaveDate, date time.Time) (bool, error) {
	for _, leave := range leaves {
		start, err := time.Parse(dateLayout, leave.StartDate)
		if err != nil {
			return false, fmt.Errorf("%w: malformed leave start date %q", domain.ErrInvalidInput, leave.StartDate)
		}
		end, err := time.Parse(dateLayout, leave.EndDate)
		if err != nil {
			return false, fmt.Errorf("%w: malformed leave end date %q", domain.ErrInvalidInput, leave.EndDate)
		}
		if !date.Before(start) && !date.After(end) {
			return true, nil
		}
	}
	return false, nil
}

// appendScheduleConflicts adds a conflict for each schedule entry on the
// given weekday whose interval overlaps the window.
func appendScheduleConflicts(out []conflictSpan, schedules []domain.Schedule, weekday int, win span, reason string) ([]conflictSpan, error) {
	for _, sched := range schedules {
		if sched.DayOfWeek != weekday {
			continue
		}
		s, err := slotSpan(domain.TimeSlot{StartTime: sched.StartTime, EndTime: sched.EndTime})
		if err != nil {
			return nil, err
		}
		if !Overlaps(s.start, s.end, win.start, win.end) {
			continue
		}
		out = append(out, conflictSpan{span: s, reason: reason})
	}
	return out, nil
}

// detectConflicts produces the blocked intervals for one staff member against
// one event window. A leave date containing the event date dominates: it
// blocks the entire window and no schedule checks run. Otherwise regular
// schedules always apply, and subject schedules apply unless the event is
// class-suspending.
func detectConflicts(staff *domain.StaffMember, date time.Time, win span, classSuspended bool) ([]conflictSpan, error) {
	leave, err := onLeave(staff.LeaveDates, date)
	if err != nil {
		return nil, err
	}
	if leave {
		return []conflictSpan{{span: win, reason: reasonOnLeave}}, nil
	}

	weekday := int(date.Weekday())
	var conflicts []conflictSpan

	// Regular commitments: roster entries with no subject back-reference.
	// Subject-bound entries on the roster are denormalized copies of subject
	// schedule rows; the subject scan below owns them.
	var regular []domain.Schedule
	for _, sched := range staff.Schedules {
		if !sched.IsSubjectBound() {
			regular = append(regular, sched)
		}
	}
	conflicts, err = appendScheduleConflicts(conflicts, regular, weekday, win, reasonRegularSchedule)
	if err != nil {
		return nil, err
	}

	if !classSuspended {
		for _, subject := range staff.SubjectSchedules {
			label := reasonClassFallback
			if subject.Subject != "" {
				label = subject.Subject + " schedule"
			}
			conflicts, err = appendScheduleConflicts(conflicts, subject.Schedules, weekday, win, label)
			if err != nil {
				return nil, err
			}
		}
	}

	return conflicts, nil
}
