// Package stats computes longitudinal statistics over the attempt history of
// one quiz and user. Like the grading package it is pure: the caller supplies
// already-materialized attempt records and receives a value object back.
package stats

import (
	"math"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/grading"
)

// Order declares how the caller ordered the attempt slice. Making the order
// an explicit parameter keeps "most recent" a caller decision instead of a
// silent convention; the package never sorts by timestamps itself.
type Order int

const (
	MostRecentFirst Order = iota
	OldestFirst
)

// Attempt is the slice of an attempt record this package needs. A nil Score
// marks an attempt over zero questions; a nil TimeTaken marks an attempt
// with no recorded duration.
type Attempt struct {
	Score     *float64
	TimeTaken *int // seconds
}

// Summary aggregates an attempt history. Pointer fields are nil when there
// is not enough data to compute them; the presentation layer renders nil as
// "not enough data yet".
type Summary struct {
	TotalAttempts    int      `json:"total_attempts"`
	BestScore        *float64 `json:"best_score,omitempty"`
	AverageScore     *float64 `json:"average_score,omitempty"`
	AverageTime      *float64 `json:"average_time,omitempty"` // seconds
	HasPassed        *bool    `json:"has_passed,omitempty"`
	ImprovementTrend *float64 `json:"improvement_trend,omitempty"`
	ConsistencyScore *float64 `json:"consistency_score,omitempty"`
}

// Summarize computes aggregate metrics across a user's attempts at one quiz.
//
//   - BestScore / AverageScore ignore attempts without a score.
//   - AverageTime excludes attempts without a recorded time from both
//     numerator and denominator.
//   - HasPassed compares only the most recent attempt against passingScore
//     (not the best attempt — a user who passed once but regressed shows not
//     passed); nil when no passing score is configured.
//   - ImprovementTrend is the two most recent scores' difference
//     (most-recent minus previous), answering "did you do better than last
//     time" rather than fitting a slope.
//   - ConsistencyScore is 100 - min(100, stddev(scores)): identical scores
//     yield 100, highly variable histories approach 0.
//
// Trend and consistency need at least two scored attempts and are nil
// otherwise. Empty input yields a zero-count summary, never an error.
func Summarize(attempts []Attempt, passingScore *float64, order Order) Summary {
	summary := Summary{TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return summary
	}

	recent := attempts
	if order == OldestFirst {
		recent = make([]Attempt, len(attempts))
		for i, a := range attempts {
			recent[len(attempts)-1-i] = a
		}
	}

	// Scored attempts only, preserving most-recent-first order.
	scores := make([]float64, 0, len(recent))
	for _, a := range recent {
		if a.Score != nil {
			scores = append(scores, *a.Score)
		}
	}

	if len(scores) > 0 {
		best := scores[0]
		sum := 0.0
		for _, s := range scores {
			if s > best {
				best = s
			}
			sum += s
		}
		avg := grading.Round1(sum / float64(len(scores)))
		summary.BestScore = &best
		summary.AverageScore = &avg
	}

	var timeSum float64
	var timed int
	for _, a := range recent {
		if a.TimeTaken != nil {
			timeSum += float64(*a.TimeTaken)
			timed++
		}
	}
	if timed > 0 {
		avgTime := grading.Round1(timeSum / float64(timed))
		summary.AverageTime = &avgTime
	}

	if passingScore != nil {
		latest := recent[0]
		passed := latest.Score != nil && *latest.Score >= *passingScore
		summary.HasPassed = &passed
	}

	if len(scores) >= 2 {
		trend := grading.Round1(scores[0] - scores[1])
		summary.ImprovementTrend = &trend

		consistency := grading.Round1(100 - math.Min(100, stddev(scores)))
		summary.ConsistencyScore = &consistency
	}

	return summary
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}
