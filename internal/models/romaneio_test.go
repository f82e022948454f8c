package models

import "testing"

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusInProgress, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusCompleted, false},
		{StatusDraft, StatusDraft, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusDraft, false},
		{StatusInProgress, StatusInProgress, false},
		{StatusCompleted, StatusDraft, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusDraft, false},
		{StatusCancelled, StatusInProgress, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
