package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scored(score float64) Attempt {
	return Attempt{Score: &score}
}

func scoredTimed(score float64, seconds int) Attempt {
	return Attempt{Score: &score, TimeTaken: &seconds}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil, MostRecentFirst)

	assert.Equal(t, 0, summary.TotalAttempts)
	assert.Nil(t, summary.BestScore)
	assert.Nil(t, summary.AverageScore)
	assert.Nil(t, summary.AverageTime)
	assert.Nil(t, summary.HasPassed)
	assert.Nil(t, summary.ImprovementTrend)
	assert.Nil(t, summary.ConsistencyScore)
}

func TestSummarize_SingleAttempt(t *testing.T) {
	passing := 70.0
	summary := Summarize([]Attempt{scoredTimed(80, 120)}, &passing, MostRecentFirst)

	assert.Equal(t, 1, summary.TotalAttempts)
	assert.Equal(t, 80.0, *summary.BestScore)
	assert.Equal(t, 80.0, *summary.AverageScore)
	assert.Equal(t, 120.0, *summary.AverageTime)
	assert.True(t, *summary.HasPassed)

	// Trend and consistency need at least two scored attempts.
	assert.Nil(t, summary.ImprovementTrend)
	assert.Nil(t, summary.ConsistencyScore)
}

func TestSummarize_History(t *testing.T) {
	// Most recent first: 72 is the latest attempt.
	attempts := []Attempt{scored(72), scored(85), scored(85)}
	passing := 70.0

	summary := Summarize(attempts, &passing, MostRecentFirst)

	assert.Equal(t, 3, summary.TotalAttempts)
	assert.Equal(t, 85.0, *summary.BestScore)
	assert.Equal(t, 80.7, *summary.AverageScore)
	assert.True(t, *summary.HasPassed)

	// 72 - 85: the user regressed relative to the previous attempt.
	assert.Equal(t, -13.0, *summary.ImprovementTrend)
	assert.NotNil(t, summary.ConsistencyScore)
}

func TestSummarize_OldestFirstOrder(t *testing.T) {
	// Same history as above but supplied oldest first.
	attempts := []Attempt{scored(85), scored(85), scored(72)}
	passing := 70.0

	fromOldest := Summarize(attempts, &passing, OldestFirst)
	fromRecent := Summarize([]Attempt{scored(72), scored(85), scored(85)}, &passing, MostRecentFirst)

	assert.Equal(t, fromRecent, fromOldest)
}

func TestSummarize_HasPassedUsesMostRecentOnly(t *testing.T) {
	passing := 70.0

	// Passed once, then regressed below the bar.
	summary := Summarize([]Attempt{scored(60), scored(90)}, &passing, MostRecentFirst)
	assert.False(t, *summary.HasPassed)
	assert.Equal(t, 90.0, *summary.BestScore)

	// No passing score configured.
	summary = Summarize([]Attempt{scored(90)}, nil, MostRecentFirst)
	assert.Nil(t, summary.HasPassed)
}

func TestSummarize_UnscoredMostRecentAttempt(t *testing.T) {
	passing := 50.0

	// Latest attempt has no score (empty quiz at the time); it cannot pass.
	summary := Summarize([]Attempt{{}, scored(80)}, &passing, MostRecentFirst)

	assert.False(t, *summary.HasPassed)
	assert.Equal(t, 80.0, *summary.BestScore)
	assert.Equal(t, 80.0, *summary.AverageScore)
	// Only one scored attempt: no trend.
	assert.Nil(t, summary.ImprovementTrend)
}

func TestSummarize_AverageTimeExcludesMissing(t *testing.T) {
	attempts := []Attempt{
		scoredTimed(50, 100),
		scored(60), // no recorded time
		scoredTimed(70, 200),
	}

	summary := Summarize(attempts, nil, MostRecentFirst)
	assert.Equal(t, 150.0, *summary.AverageTime)
}

func TestSummarize_NoTimedAttempts(t *testing.T) {
	summary := Summarize([]Attempt{scored(50), scored(60)}, nil, MostRecentFirst)
	assert.Nil(t, summary.AverageTime)
}

func TestSummarize_ConsistencyScore(t *testing.T) {
	// Identical scores: zero deviation, perfect consistency.
	summary := Summarize([]Attempt{scored(80), scored(80), scored(80)}, nil, MostRecentFirst)
	assert.Equal(t, 100.0, *summary.ConsistencyScore)

	// Wildly variable scores: stddev caps at 100, consistency floors at 0.
	summary = Summarize([]Attempt{scored(0), scored(100), scored(0), scored(100)}, nil, MostRecentFirst)
	assert.Equal(t, 50.0, *summary.ConsistencyScore)

	summary = Summarize([]Attempt{scored(70), scored(90)}, nil, MostRecentFirst)
	// stddev of {70,90} is 10.
	assert.Equal(t, 90.0, *summary.ConsistencyScore)
}

func TestSummarize_TrendUsesTwoMostRecentScored(t *testing.T) {
	// Most recent two scored attempts are 90 and 70; older scores ignored.
	attempts := []Attempt{scored(90), {}, scored(70), scored(10)}

	summary := Summarize(attempts, nil, MostRecentFirst)
	assert.Equal(t, 20.0, *summary.ImprovementTrend)
}

func TestStddev(t *testing.T) {
	assert.InDelta(t, 0.0, stddev([]float64{5, 5, 5}), 1e-9)
	assert.InDelta(t, 10.0, stddev([]float64{70, 90}), 1e-9)
	assert.InDelta(t, 50.0, stddev([]float64{0, 100, 0, 100}), 1e-9)
}
