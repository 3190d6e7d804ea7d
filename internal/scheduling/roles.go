package scheduling

import "mediastaffing/internal/domain"

// CandidatesForRole filters an availability list to staff who can serve the
// target role and are not already claimed by the complementary role on the
// same event. One person cannot be both the videographer and the
// photographer. Staff with zero free time are hidden rather than shown
// disabled.
func CandidatesForRole(availability []*domain.StaffAvailability, role domain.Role, claimedByComplement []string) []*domain.StaffAvailability {
	claimed := make(map[string]struct{}, len(claimedByComplement))
	for _, id := range claimedByComplement {
		claimed[id] = struct{}{}
	}

	out := make([]*domain.StaffAvailability, 0, len(availability))
	for _, a := range availability {
		if !a.Staff.Roles.Has(role) {
			continue
		}
		if _, ok := claimed[a.Staff.ID]; ok {
			continue
		}
		if !a.HasFreeTime() {
			continue
		}
		out = append(out, a)
	}
	return out
}
