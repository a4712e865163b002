package exam

import "math"

// Percentage rounds score/total to the nearest whole percent.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// Grade maps a percentage to a letter. Lower bounds are inclusive.
func Grade(percentage int) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}

func ResultsMessage(percentage int) string {
	switch {
	case percentage >= 90:
		return "Excellent work! You have mastered this material."
	case percentage >= 80:
		return "Great job! You have a strong understanding."
	case percentage >= 70:
		return "Good work! Review the areas you missed."
	case percentage >= 60:
		return "Fair performance. More study is recommended."
	default:
		return "Keep studying! Review your notes and try again."
	}
}

type Result struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Grade      string `json:"grade"`
	Message    string `json:"message"`
}

func NewResult(score, total int) Result {
	pct := Percentage(score, total)
	return Result{
		Score:      score,
		Total:      total,
		Percentage: pct,
		Grade:      Grade(pct),
		Message:    ResultsMessage(pct),
	}
}
