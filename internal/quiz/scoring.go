package quiz

import (
	"math"

	"github.com/google/uuid"
)

// Score is the result of applying one scoring strategy to a session.
type Score struct {
	RawScore      float64 `json:"raw_score"`
	WeightedScore float64 `json:"weighted_score"`

	// Percentile is reserved for cohort comparison; no strategy sets it.
	Percentile *float64 `json:"percentile,omitempty"`

	TimeBonus       float64 `json:"time_bonus"`
	DifficultyBonus float64 `json:"difficulty_bonus"`
	StreakBonus     float64 `json:"streak_bonus"`

	Components ScoreComponents `json:"components"`
}

// ScoreComponents breaks a weighted score into its signal parts.
type ScoreComponents struct {
	Correctness float64 `json:"correctness"`
	Speed       float64 `json:"speed"`
	Difficulty  float64 `json:"difficulty"`
	Consistency float64 `json:"consistency"`
}

// Strategy is one scoring algorithm over a session and its question set.
// Implementations are pure functions: they never mutate the session, never
// retain state between calls, and degrade every zero-denominator case to 0
// instead of erroring.
type Strategy interface {
	Calculate(session *Session, questions []Question) Score
}

// Simple scores the fraction of questions answered correctly.
type Simple struct{}

func (Simple) Calculate(session *Session, questions []Question) Score {
	raw := rawScore(session, questions)
	return Score{
		RawScore:      raw,
		WeightedScore: raw,
		Components:    ScoreComponents{Correctness: raw},
	}
}

// TimeWeighted deducts from each correct answer the time spent beyond a base
// allowance.
type TimeWeighted struct {
	BaseTimeSeconds  int
	PenaltyPerSecond float64
}

func (tw TimeWeighted) Calculate(session *Session, questions []Question) Score {
	raw := rawScore(session, questions)
	byID := questionsByID(questions)

	var points float64
	for _, r := range session.Responses {
		if _, ok := byID[r.QuestionID]; !ok {
			continue
		}
		base := 0.0
		if r.IsCorrect {
			base = 1.0
		}
		var penalty float64
		if r.TimeTakenSeconds > tw.BaseTimeSeconds {
			penalty = float64(r.TimeTakenSeconds-tw.BaseTimeSeconds) * tw.PenaltyPerSecond
		}
		points += math.Max(0, base-penalty)
	}

	var weighted float64
	if len(questions) > 0 {
		weighted = points / float64(len(questions))
	}

	return Score{
		RawScore:      raw,
		WeightedScore: weighted,
		TimeBonus:     weighted - raw,
		Components:    ScoreComponents{Correctness: raw, Speed: weighted - raw},
	}
}

// DifficultyWeighted scales each question's worth by a difficulty bucket
// multiplier. Skipped questions count toward the maximum but earn nothing.
type DifficultyWeighted struct {
	EasyMultiplier   float64
	MediumMultiplier float64
	HardMultiplier   float64
}

func (dw DifficultyWeighted) Calculate(session *Session, questions []Question) Score {
	raw := rawScore(session, questions)
	byID := questionsByID(questions)

	var earned, maxPossible float64
	for _, r := range session.Responses {
		q, ok := byID[r.QuestionID]
		if !ok {
			continue
		}
		multiplier := dw.multiplier(q.Difficulty)
		maxPossible += multiplier
		if r.IsCorrect {
			earned += multiplier
		}
	}
	for _, idx := range session.SkippedQuestions {
		if idx < 0 || idx >= len(questions) {
			continue
		}
		maxPossible += dw.multiplier(questions[idx].Difficulty)
	}

	var weighted float64
	if maxPossible > 0 {
		weighted = earned / maxPossible
	}

	return Score{
		RawScore:        raw,
		WeightedScore:   weighted,
		DifficultyBonus: weighted - raw,
		Components:      ScoreComponents{Correctness: raw, Difficulty: weighted - raw},
	}
}

func (dw DifficultyWeighted) multiplier(difficulty float64) float64 {
	switch {
	case difficulty < 0.33:
		return dw.EasyMultiplier
	case difficulty < 0.67:
		return dw.MediumMultiplier
	default:
		return dw.HardMultiplier
	}
}

// Adaptive blends correctness with speed, difficulty, streak, and consistency
// signals, each weighted by the caller. Correctness always carries weight 1,
// so all-zero weights reduce to the simple score.
type Adaptive struct {
	TimeWeight        float64
	DifficultyWeight  float64
	StreakWeight      float64
	ConsistencyWeight float64
}

func (a Adaptive) Calculate(session *Session, questions []Question) Score {
	correctness := rawScore(session, questions)
	speed := adaptiveTimeScore(session, questions)
	difficulty := adaptiveDifficultyScore(session, questions)
	streak := streakScore(session.Responses)
	consistency := consistencyScore(session.Responses)

	totalWeight := a.TimeWeight + a.DifficultyWeight + a.StreakWeight + a.ConsistencyWeight
	weighted := (correctness +
		speed*a.TimeWeight +
		difficulty*a.DifficultyWeight +
		streak*a.StreakWeight +
		consistency*a.ConsistencyWeight) / (1 + totalWeight)

	return Score{
		RawScore:        correctness,
		WeightedScore:   weighted,
		TimeBonus:       speed * a.TimeWeight,
		DifficultyBonus: difficulty * a.DifficultyWeight,
		StreakBonus:     streak * a.StreakWeight,
		Components: ScoreComponents{
			Correctness: correctness,
			Speed:       speed,
			Difficulty:  difficulty,
			Consistency: consistency,
		},
	}
}

// rawScore is the simple correct-over-total fraction shared by every
// strategy.
func rawScore(session *Session, questions []Question) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for _, r := range session.Responses {
		if r.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(questions))
}

// adaptiveTimeScore compares expected average time against actual average
// time, capped at 1.
func adaptiveTimeScore(session *Session, questions []Question) float64 {
	var expected float64
	for _, q := range questions {
		expected += float64(q.EstimatedTimeSeconds)
	}
	expected /= float64(max(len(questions), 1))

	var actual float64
	for _, r := range session.Responses {
		actual += float64(r.TimeTakenSeconds)
	}
	actual /= float64(max(len(session.Responses), 1))

	return math.Min(1, expected/math.Max(actual, 1))
}

// adaptiveDifficultyScore is the difficulty-weighted share of responses
// answered correctly.
func adaptiveDifficultyScore(session *Session, questions []Question) float64 {
	byID := questionsByID(questions)

	var all, correct float64
	for _, r := range session.Responses {
		q, ok := byID[r.QuestionID]
		if !ok {
			continue
		}
		all += q.Difficulty
		if r.IsCorrect {
			correct += q.Difficulty
		}
	}
	if all == 0 {
		return 0
	}
	return correct / all
}

// streakScore is the longest consecutive-correct run over the response count,
// in submission order.
func streakScore(responses []QuestionResponse) float64 {
	if len(responses) == 0 {
		return 0
	}
	best, run := 0, 0
	for _, r := range responses {
		if r.IsCorrect {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}
	return float64(best) / float64(len(responses))
}

// consistencyScore maps the coefficient of variation of response times to
// (0, 1]. Fewer than 2 responses, or all-zero times, count as perfectly
// consistent.
func consistencyScore(responses []QuestionResponse) float64 {
	if len(responses) < 2 {
		return 1
	}

	var sum float64
	for _, r := range responses {
		sum += float64(r.TimeTakenSeconds)
	}
	mean := sum / float64(len(responses))
	if mean == 0 {
		return 1
	}

	var variance float64
	for _, r := range responses {
		d := float64(r.TimeTakenSeconds) - mean
		variance += d * d
	}
	variance /= float64(len(responses))

	cv := math.Sqrt(variance) / mean
	return 1 / (1 + cv)
}

func questionsByID(questions []Question) map[uuid.UUID]*Question {
	byID := make(map[uuid.UUID]*Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}
	return byID
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
