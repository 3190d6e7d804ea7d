package domain

import "context"

// TimeSlot is a half-open wall-clock interval within a single day.
// Used both for free time and for coverage gaps.
// swagger:model TimeSlot
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TimeConflict is a blocked interval with the reason it blocks
// (e.g. "On leave", "Regular schedule", "CS101 schedule").
// swagger:model TimeConflict
type TimeConflict struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// StaffAvailability is the engine's verdict for one staff member against one
// event window. When IsFullyAvailable is true, ConflictingTimeSlots is empty
// and AvailableTimeSlots is the whole window; otherwise AvailableTimeSlots is
// the exact complement of the conflicts within the window and may be empty.
// swagger:model StaffAvailability
type StaffAvailability struct {
	Staff                *StaffMember   `json:"staff"`
	IsFullyAvailable     bool           `json:"is_fully_available"`
	AvailableTimeSlots   []TimeSlot     `json:"available_time_slots"`
	ConflictingTimeSlots []TimeConflict `json:"conflicting_time_slots"`
}

// HasFreeTime reports whether the staff member has any usable time in the
// window. Staff without free time are hidden from role candidate lists.
func (a *StaffAvailability) HasFreeTime() bool {
	return a.IsFullyAvailable || len(a.AvailableTimeSlots) > 0
}

// AllocationResult reports how well a selected staff set covers an event
// window. CoveragePercentage is an integer 0-100; Gaps is empty exactly when
// coverage is 100.
// swagger:model AllocationResult
type AllocationResult struct {
	CoveragePercentage int        `json:"coverage_percentage"`
	Gaps               []TimeSlot `json:"gaps"`
}

// AllocationSuggestion is the greedy recommender's output: staff IDs to
// select, the gaps that remain, and the coverage they achieve together.
// swagger:model AllocationSuggestion
type AllocationSuggestion struct {
	RecommendedStaff []string   `json:"recommended_staff"`
	CoverageGaps     []TimeSlot `json:"coverage_gaps"`
	TotalCoverage    int        `json:"total_coverage"`
}

// AvailabilityService runs the scheduling engine against stored events and
// the roster. Role-scoped calls exclude staff claimed by the complementary
// role on the same event.
type AvailabilityService interface {
	EventAvailability(ctx context.Context, eventID string, role Role) ([]*StaffAvailability, error)
	Coverage(ctx context.Context, eventID string, role Role, selectedStaffIDs []string) (*AllocationResult, error)
	Recommend(ctx context.Context, eventID string, role Role) (*AllocationSuggestion, error)
}
