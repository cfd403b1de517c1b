// Package scoring holds the pure score arithmetic of an audit: category
// scores from Likert responses, the overall score from category scores, and
// the qualitative maturity bands both are reported in.
//
// Category scores use the answered-count denominator: a category's score is
// the running average of the questions answered so far, expressed as a
// percentage of the maximum value. It becomes exact once every question in
// the category is answered.
package scoring

const (
	// MinValue and MaxValue bound a Likert response.
	MinValue = 1
	MaxValue = 5
)

// CategoryScore returns round(100 * sum(values) / (denominator * MaxValue)),
// clamped to [0,100]. A non-positive denominator or empty values yield 0.
func CategoryScore(values []int, denominator int) int {
	if denominator <= 0 || len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	score := roundDiv(100*sum, denominator*MaxValue)
	return clamp(score)
}

// CategoryScoreFromResponses scores a category keyed by question id, using the
// number of answered questions as denominator.
func CategoryScoreFromResponses(responses map[string]int) int {
	values := make([]int, 0, len(responses))
	for _, v := range responses {
		values = append(values, v)
	}
	return CategoryScore(values, len(values))
}

// OverallScore returns the rounded mean of the positive category scores, or 0
// when none is positive. Zero therefore means both "not yet scored" and
// "scored zero".
func OverallScore(categoryScores []int) int {
	sum, n := 0, 0
	for _, s := range categoryScores {
		if s > 0 {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return clamp(roundDiv(sum, n))
}

// ValidValue reports whether v is a Likert value.
func ValidValue(v int) bool {
	return v >= MinValue && v <= MaxValue
}

// roundDiv rounds num/den half-up; both must be non-negative and den > 0.
func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
