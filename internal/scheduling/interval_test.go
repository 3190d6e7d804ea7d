package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediastaffing/internal/domain"
)

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "morning", in: "09:30", want: 570},
		{name: "end of day", in: "23:59", want: 1439},
		{name: "missing padding", in: "9:30", wantErr: true},
		{name: "no separator", in: "0930", wantErr: true},
		{name: "hour out of range", in: "24:00", wantErr: true},
		{name: "minute out of range", in: "12:60", wantErr: true},
		{name: "garbage", in: "ab:cd", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeToMinutes(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	assert.Equal(t, "00:00", MinutesToTime(0))
	assert.Equal(t, "09:05", MinutesToTime(545))
	assert.Equal(t, "23:59", MinutesToTime(1439))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd int
		want                           bool
	}{
		{name: "full overlap", aStart: 540, aEnd: 660, bStart: 540, bEnd: 660, want: true},
		{name: "partial overlap", aStart: 540, aEnd: 660, bStart: 600, bEnd: 720, want: true},
		{name: "containment", aStart: 540, aEnd: 660, bStart: 570, bEnd: 600, want: true},
		{name: "touching endpoints do not conflict", aStart: 540, aEnd: 600, bStart: 600, bEnd: 660, want: false},
		{name: "disjoint", aStart: 540, aEnd: 600, bStart: 700, bEnd: 760, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestMergeTimeSlots(t *testing.T) {
	tests := []struct {
		name string
		in   []domain.TimeSlot
		want []domain.TimeSlot
	}{
		{
			name: "empty",
			in:   nil,
			want: []domain.TimeSlot{},
		},
		{
			name: "disjoint stay separate",
			in: []domain.TimeSlot{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "11:00", EndTime: "12:00"},
			},
			want: []domain.TimeSlot{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "11:00", EndTime: "12:00"},
			},
		},
		{
			name: "overlapping fold into one",
			in: []domain.TimeSlot{
				{StartTime: "09:00", EndTime: "10:30"},
				{StartTime: "10:00", EndTime: "11:00"},
			},
			want: []domain.TimeSlot{{StartTime: "09:00", EndTime: "11:00"}},
		},
		{
			name: "adjacent fold into one",
			in: []domain.TimeSlot{
				{StartTime: "10:00", EndTime: "11:00"},
				{StartTime: "09:00", EndTime: "10:00"},
			},
			want: []domain.TimeSlot{{StartTime: "09:00", EndTime: "11:00"}},
		},
		{
			name: "contained slot disappears",
			in: []domain.TimeSlot{
				{StartTime: "09:00", EndTime: "12:00"},
				{StartTime: "10:00", EndTime: "11:00"},
			},
			want: []domain.TimeSlot{{StartTime: "09:00", EndTime: "12:00"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MergeTimeSlots(tt.in)
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateWindow(t *testing.T) {
	require.NoError(t, ValidateWindow("09:00", "11:00"))

	err := ValidateWindow("11:00", "09:00")
	require.ErrorIs(t, err, domain.ErrInvalidTimeWindow)

	// Zero-length and midnight-crossing windows are rejected outright.
	require.ErrorIs(t, ValidateWindow("09:00", "09:00"), domain.ErrInvalidTimeWindow)
	require.ErrorIs(t, ValidateWindow("22:00", "02:00"), domain.ErrInvalidTimeWindow)

	require.Error(t, ValidateWindow("9am", "11:00"))
}
