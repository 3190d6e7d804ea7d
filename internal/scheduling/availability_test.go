package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediastaffing/internal/domain"
)

// 2024-05-06 is a Monday, 2024-05-07 a Tuesday.
const (
	monday  = "2024-05-06"
	tuesday = "2024-05-07"
)

func staffWithRegular(id string, day int, start, end string) *domain.StaffMember {
	return &domain.StaffMember{
		ID:    id,
		Name:  "Staff " + id,
		Roles: domain.NewRoleSet(domain.RoleVideographer),
		Schedules: []domain.Schedule{
			{ID: "sch-1", DayOfWeek: day, StartTime: start, EndTime: end},
		},
	}
}

func staffWithSubject(id, subject string, day int, start, end string) *domain.StaffMember {
	return &domain.StaffMember{
		ID:    id,
		Name:  "Staff " + id,
		Roles: domain.NewRoleSet(domain.RolePhotographer),
		SubjectSchedules: []domain.SubjectSchedule{
			{
				ID:      "subj-1",
				Subject: subject,
				Schedules: []domain.Schedule{
					{ID: "sch-1", DayOfWeek: day, StartTime: start, EndTime: end, Subject: subject, SubjectScheduleID: "subj-1"},
				},
			},
		},
	}
}

func TestComputeAvailability_RegularScheduleConflict(t *testing.T) {
	staff := staffWithRegular("st-1", 1, "09:00", "10:00")

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, monday, "09:00", "11:00", false, false)
	require.NoError(t, err)
	require.Len(t, got, 1)

	a := got[0]
	assert.False(t, a.IsFullyAvailable)
	assert.Equal(t, []domain.TimeSlot{{StartTime: "10:00", EndTime: "11:00"}}, a.AvailableTimeSlots)
	require.Len(t, a.ConflictingTimeSlots, 1)
	assert.Equal(t, "Regular schedule", a.ConflictingTimeSlots[0].Reason)
	assert.Equal(t, "09:00", a.ConflictingTimeSlots[0].StartTime)
	assert.Equal(t, "10:00", a.ConflictingTimeSlots[0].EndTime)
}

func TestComputeAvailability_IgnoreConflictsOverride(t *testing.T) {
	staff := staffWithRegular("st-1", 1, "09:00", "10:00")
	staff.LeaveDates = []domain.LeaveDate{{StartDate: monday, EndDate: monday}}

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, monday, "09:00", "11:00", true, false)
	require.NoError(t, err)
	require.Len(t, got, 1)

	a := got[0]
	assert.True(t, a.IsFullyAvailable)
	assert.Equal(t, []domain.TimeSlot{{StartTime: "09:00", EndTime: "11:00"}}, a.AvailableTimeSlots)
	assert.Empty(t, a.ConflictingTimeSlots)
}

func TestComputeAvailability_LeaveDominance(t *testing.T) {
	staff := &domain.StaffMember{
		ID:    "st-1",
		Roles: domain.NewRoleSet(domain.RoleVideographer),
		LeaveDates: []domain.LeaveDate{
			{StartDate: "2024-05-01", EndDate: "2024-05-03"},
		},
	}

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, "2024-05-02", "09:00", "11:00", false, false)
	require.NoError(t, err)
	require.Len(t, got, 1)

	a := got[0]
	assert.False(t, a.IsFullyAvailable)
	assert.Empty(t, a.AvailableTimeSlots)
	require.Len(t, a.ConflictingTimeSlots, 1)
	assert.Equal(t, domain.TimeConflict{StartTime: "09:00", EndTime: "11:00", Reason: "On leave"}, a.ConflictingTimeSlots[0])
}

func TestComputeAvailability_LeaveBoundariesInclusive(t *testing.T) {
	staff := &domain.StaffMember{
		ID:         "st-1",
		LeaveDates: []domain.LeaveDate{{StartDate: "2024-05-01", EndDate: "2024-05-03"}},
	}

	for _, date := range []string{"2024-05-01", "2024-05-03"} {
		got, err := ComputeAvailability([]*domain.StaffMember{staff}, date, "09:00", "11:00", false, false)
		require.NoError(t, err)
		assert.False(t, got[0].IsFullyAvailable, "date %s should be on leave", date)
	}

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, "2024-05-04", "09:00", "11:00", false, false)
	require.NoError(t, err)
	assert.True(t, got[0].IsFullyAvailable)
}

func TestComputeAvailability_ClassSuspendedSkipsSubjects(t *testing.T) {
	staff := staffWithSubject("st-1", "CS101", 2, "13:00", "14:00")

	// Suspended: the subject entry does not block.
	got, err := ComputeAvailability([]*domain.StaffMember{staff}, tuesday, "12:00", "15:00", false, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsFullyAvailable)
	assert.Equal(t, []domain.TimeSlot{{StartTime: "12:00", EndTime: "15:00"}}, got[0].AvailableTimeSlots)

	// Not suspended: the subject entry blocks with its label.
	got, err = ComputeAvailability([]*domain.StaffMember{staff}, tuesday, "12:00", "15:00", false, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	a := got[0]
	assert.False(t, a.IsFullyAvailable)
	require.Len(t, a.ConflictingTimeSlots, 1)
	assert.Equal(t, "CS101 schedule", a.ConflictingTimeSlots[0].Reason)
	assert.Equal(t, []domain.TimeSlot{
		{StartTime: "12:00", EndTime: "13:00"},
		{StartTime: "14:00", EndTime: "15:00"},
	}, a.AvailableTimeSlots)
}

func TestComputeAvailability_ClassSuspendedKeepsRegularConflicts(t *testing.T) {
	staff := staffWithRegular("st-1", 2, "13:00", "14:00")

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, tuesday, "12:00", "15:00", false, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].IsFullyAvailable)
	assert.Equal(t, "Regular schedule", got[0].ConflictingTimeSlots[0].Reason)
}

func TestComputeAvailability_SubjectFallbackLabel(t *testing.T) {
	staff := staffWithSubject("st-1", "", 2, "13:00", "14:00")

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, tuesday, "12:00", "15:00", false, false)
	require.NoError(t, err)
	require.Len(t, got[0].ConflictingTimeSlots, 1)
	assert.Equal(t, "Class schedule", got[0].ConflictingTimeSlots[0].Reason)
}

func TestComputeAvailability_TouchingScheduleIsNotConflict(t *testing.T) {
	// Class ends exactly when the event starts.
	staff := staffWithRegular("st-1", 1, "07:00", "09:00")

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, monday, "09:00", "11:00", false, false)
	require.NoError(t, err)
	assert.True(t, got[0].IsFullyAvailable)
}

func TestComputeAvailability_OtherWeekdayDoesNotConflict(t *testing.T) {
	staff := staffWithRegular("st-1", 3, "09:00", "10:00")

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, monday, "09:00", "11:00", false, false)
	require.NoError(t, err)
	assert.True(t, got[0].IsFullyAvailable)
}

func TestComputeAvailability_OverlappingSourceDataTolerated(t *testing.T) {
	// Redundant overlapping entries only need to produce the union of
	// blocked time, not a canonical representation.
	staff := &domain.StaffMember{
		ID: "st-1",
		Schedules: []domain.Schedule{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
			{DayOfWeek: 1, StartTime: "09:30", EndTime: "10:30"},
		},
	}

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, monday, "09:00", "12:00", false, false)
	require.NoError(t, err)
	a := got[0]
	assert.False(t, a.IsFullyAvailable)
	assert.Equal(t, []domain.TimeSlot{{StartTime: "10:30", EndTime: "12:00"}}, a.AvailableTimeSlots)
	assert.Len(t, a.ConflictingTimeSlots, 2)
}

func TestComputeAvailability_FullyBlockedHasNoFreeSlots(t *testing.T) {
	staff := staffWithRegular("st-1", 1, "08:00", "12:00")

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, monday, "09:00", "11:00", false, false)
	require.NoError(t, err)
	a := got[0]
	assert.False(t, a.IsFullyAvailable)
	assert.Empty(t, a.AvailableTimeSlots)
	assert.False(t, a.HasFreeTime())
}

func TestComputeAvailability_EmptyStaffList(t *testing.T) {
	got, err := ComputeAvailability(nil, monday, "09:00", "11:00", false, false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestComputeAvailability_InvalidInputs(t *testing.T) {
	staff := []*domain.StaffMember{staffWithRegular("st-1", 1, "09:00", "10:00")}

	_, err := ComputeAvailability(staff, monday, "11:00", "09:00", false, false)
	require.ErrorIs(t, err, domain.ErrInvalidTimeWindow)

	_, err = ComputeAvailability(staff, "05/06/2024", "09:00", "11:00", false, false)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ComputeAvailability(staff, monday, "nine", "11:00", false, false)
	require.Error(t, err)
}

func TestComputeAvailability_Idempotent(t *testing.T) {
	staff := []*domain.StaffMember{
		staffWithRegular("st-1", 1, "09:00", "10:00"),
		staffWithSubject("st-2", "CS101", 1, "10:00", "11:00"),
	}

	first, err := ComputeAvailability(staff, monday, "09:00", "11:00", false, false)
	require.NoError(t, err)
	second, err := ComputeAvailability(staff, monday, "09:00", "11:00", false, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// The conflicts and free slots of a verdict, clipped to the window, must
// reconstruct the window exactly.
func TestComputeAvailability_ComplementInvariant(t *testing.T) {
	staff := &domain.StaffMember{
		ID: "st-1",
		Schedules: []domain.Schedule{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "09:30"},
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "10:15"},
			{DayOfWeek: 1, StartTime: "10:45", EndTime: "12:30"},
		},
	}

	got, err := ComputeAvailability([]*domain.StaffMember{staff}, monday, "09:00", "12:00", false, false)
	require.NoError(t, err)
	a := got[0]

	var all []domain.TimeSlot
	all = append(all, a.AvailableTimeSlots...)
	for _, c := range a.ConflictingTimeSlots {
		all = append(all, domain.TimeSlot{StartTime: c.StartTime, EndTime: c.EndTime})
	}
	merged, err := MergeTimeSlots(all)
	require.NoError(t, err)

	// Clip the union to the window: it must be one contiguous run covering it.
	require.NotEmpty(t, merged)
	start, err := TimeToMinutes(merged[0].StartTime)
	require.NoError(t, err)
	end, err := TimeToMinutes(merged[len(merged)-1].EndTime)
	require.NoError(t, err)
	assert.Len(t, merged, 1)
	assert.LessOrEqual(t, start, 9*60)
	assert.GreaterOrEqual(t, end, 12*60)
}
