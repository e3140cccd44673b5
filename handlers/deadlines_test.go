package handlers

import "testing"

func TestActiveReminderOffset(t *testing.T) {
	tests := []struct {
		daysLeft int
		want     int
	}{
		{120, -1}, // too far out, no reminder yet
		{91, -1},
		{90, 90},
		{45, 90}, // between marks: the 90-day reminder still applies
		{30, 30},
		{8, 30},
		{7, 7},
		{1, 7},
		{0, 7}, // due today, narrowest mark
	}
	for _, tt := range tests {
		if got := activeReminderOffset(tt.daysLeft); got != tt.want {
			t.Errorf("activeReminderOffset(%d) = %d, want %d", tt.daysLeft, got, tt.want)
		}
	}
}
