package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, "A+"},
		{90, "A+"},
		{89, "A"},
		{80, "A"},
		{79, "B"},
		{70, "B"},
		{69, "C"},
		{60, "C"},
		{59, "D"},
		{50, "D"},
		{49, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		if got := Grade(tt.pct); got != tt.want {
			t.Errorf("Grade(%d) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name         string
		score, total int
		want         int
	}{
		{"perfect", 10, 10, 100},
		{"rounds half up", 1, 8, 13},
		{"two thirds", 2, 3, 67},
		{"zero total", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.score, tt.total))
		})
	}
}

func TestNewResult(t *testing.T) {
	r := NewResult(7, 10)

	assert.Equal(t, 70, r.Percentage)
	assert.Equal(t, "B", r.Grade)
	assert.Equal(t, "Good work! Review the areas you missed.", r.Message)

	assert.Equal(t, "Keep studying! Review your notes and try again.", NewResult(1, 10).Message)
	assert.Equal(t, "Excellent work! You have mastered this material.", NewResult(9, 10).Message)
}
