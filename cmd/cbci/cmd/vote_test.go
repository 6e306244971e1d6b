package cmd

import "testing"

func TestStatusForScore(t *testing.T) {
	tests := map[int]string{
		1:  "SUCCESS",
		-1: "FAILURE",
		0:  "UNSTABLE",
	}

	for score, expected := range tests {
		if status := statusForScore(score); status != expected {
			t.Errorf("statusForScore(%d): wanted %q but got %q", score, expected, status)
		}
	}
}
