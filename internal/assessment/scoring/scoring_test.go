package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryScore(t *testing.T) {
	tests := []struct {
		name        string
		values      []int
		denominator int
		want        int
	}{
		{name: "all max", values: []int{5, 5, 5, 5}, denominator: 4, want: 100},
		{name: "all min", values: []int{1, 1, 1, 1}, denominator: 4, want: 20},
		{name: "mixed", values: []int{3, 4}, denominator: 2, want: 70},
		{name: "fixed denominator", values: []int{5, 5}, denominator: 4, want: 50},
		{name: "zero denominator", values: []int{5}, denominator: 0, want: 0},
		{name: "no values", values: nil, denominator: 4, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryScore(tt.values, tt.denominator))
		})
	}
}

func TestCategoryScoreRoundsHalfUp(t *testing.T) {
	// 100*13/(8*5) = 32.5
	assert.Equal(t, 33, CategoryScore([]int{1, 2, 2, 2, 2, 2, 1, 1}, 8))
	assert.Equal(t, 47, CategoryScore([]int{2, 2, 3}, 3))
}

func TestCategoryScoreFromResponsesUsesAnsweredCount(t *testing.T) {
	// privacy has four catalog questions; two answered with 5 score as a
	// running average of the answered ones.
	got := CategoryScoreFromResponses(map[string]int{"privacy-1": 5, "privacy-2": 5})
	assert.Equal(t, 100, got)

	assert.Equal(t, 0, CategoryScoreFromResponses(nil))
}

func TestCategoryScoreBounds(t *testing.T) {
	for a := MinValue; a <= MaxValue; a++ {
		for b := MinValue; b <= MaxValue; b++ {
			for c := MinValue; c <= MaxValue; c++ {
				s := CategoryScoreFromResponses(map[string]int{"q1": a, "q2": b, "q3": c})
				assert.GreaterOrEqual(t, s, 0)
				assert.LessOrEqual(t, s, 100)
				// order independence
				assert.Equal(t, s, CategoryScore([]int{c, a, b}, 3))
			}
		}
	}
}

func TestOverallScore(t *testing.T) {
	assert.Equal(t, 0, OverallScore(nil))
	assert.Equal(t, 0, OverallScore([]int{0, 0}))
	assert.Equal(t, 100, OverallScore([]int{100}))
	assert.Equal(t, 70, OverallScore([]int{60, 80}))
	assert.Equal(t, 70, OverallScore([]int{80, 0, 60}), "zero entries are excluded")
	assert.Equal(t, 70, OverallScore([]int{60, 0, 80}), "order independent")
	assert.Equal(t, 51, OverallScore([]int{50, 51}), "50.5 rounds up")
}

func TestBandFor(t *testing.T) {
	for _, b := range Bands {
		assert.Equal(t, b.Band, BandFor(b.Min), "lower bound %d", b.Min)
		assert.Equal(t, b.Band, BandFor(b.Max), "upper bound %d", b.Max)
	}
	assert.Equal(t, "critical", BandFor(20).String())
	assert.Equal(t, "significant gaps", BandFor(21).String())
	assert.Equal(t, "industry-leading", BandFor(81).String())
}

func TestLikertLabel(t *testing.T) {
	assert.Contains(t, LikertLabel(1), "Not implemented")
	assert.Contains(t, LikertLabel(5), "Optimized")
	assert.Equal(t, "Not assessed", LikertLabel(0))
}

func TestValidValue(t *testing.T) {
	assert.False(t, ValidValue(0))
	assert.True(t, ValidValue(1))
	assert.True(t, ValidValue(5))
	assert.False(t, ValidValue(6))
}
