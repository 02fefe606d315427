package quiz

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func questionsWithDifficulties(difficulties ...float64) []Question {
	topicID := uuid.New()
	questions := make([]Question, 0, len(difficulties))
	for _, d := range difficulties {
		questions = append(questions, *NewQuestion(TrueFalse{Statement: "stub", CorrectAnswer: true}, topicID, d))
	}
	return questions
}

func response(q Question, correct bool, seconds int) QuestionResponse {
	return QuestionResponse{
		QuestionID:       q.ID,
		IsCorrect:        correct,
		TimeTakenSeconds: seconds,
		Attempts:         1,
	}
}

func sessionWith(responses ...QuestionResponse) *Session {
	s := NewSession(uuid.New(), nil)
	s.Responses = append(s.Responses, responses...)
	return s
}

func TestSimple_Calculate(t *testing.T) {
	questions := questionsWithDifficulties(0.5, 0.5)
	s := sessionWith(
		response(questions[0], true, 10),
		response(questions[1], false, 10),
	)

	score := Simple{}.Calculate(s, questions)

	if !almostEqual(score.RawScore, 0.5) {
		t.Errorf("RawScore = %v, want 0.5", score.RawScore)
	}
	if score.WeightedScore != score.RawScore {
		t.Errorf("WeightedScore = %v, want RawScore %v", score.WeightedScore, score.RawScore)
	}
	if !almostEqual(score.Components.Correctness, 0.5) {
		t.Errorf("Components.Correctness = %v, want 0.5", score.Components.Correctness)
	}
	if score.TimeBonus != 0 || score.DifficultyBonus != 0 || score.StreakBonus != 0 {
		t.Errorf("bonuses = (%v, %v, %v), want all 0", score.TimeBonus, score.DifficultyBonus, score.StreakBonus)
	}
}

func TestTimeWeighted_Calculate(t *testing.T) {
	questions := questionsWithDifficulties(0.5, 0.5, 0.5)
	s := sessionWith(
		response(questions[0], true, 50),
		response(questions[1], true, 60),
		response(questions[2], true, 90),
	)

	score := TimeWeighted{BaseTimeSeconds: 60, PenaltyPerSecond: 0.01}.Calculate(s, questions)

	// 1.0 + 1.0 + (1.0 - 30*0.01) over 3 questions.
	if !almostEqual(score.WeightedScore, 0.9) {
		t.Errorf("WeightedScore = %v, want 0.9", score.WeightedScore)
	}
	if !almostEqual(score.RawScore, 1.0) {
		t.Errorf("RawScore = %v, want 1.0", score.RawScore)
	}
	if !almostEqual(score.TimeBonus, -0.1) {
		t.Errorf("TimeBonus = %v, want -0.1", score.TimeBonus)
	}
	if !almostEqual(score.Components.Speed, -0.1) {
		t.Errorf("Components.Speed = %v, want -0.1", score.Components.Speed)
	}
}

func TestTimeWeighted_PenaltyFloorsAtZero(t *testing.T) {
	questions := questionsWithDifficulties(0.5)
	s := sessionWith(response(questions[0], true, 100_000))

	score := TimeWeighted{BaseTimeSeconds: 60, PenaltyPerSecond: 0.01}.Calculate(s, questions)

	if score.WeightedScore != 0 {
		t.Errorf("WeightedScore = %v, want 0, never negative", score.WeightedScore)
	}
}

func TestTimeWeighted_IgnoresUnknownQuestions(t *testing.T) {
	questions := questionsWithDifficulties(0.5, 0.5)
	stray := *NewQuestion(TrueFalse{Statement: "other quiz", CorrectAnswer: true}, uuid.New(), 0.5)
	s := sessionWith(
		response(questions[0], true, 10),
		response(questions[1], true, 10),
		response(stray, true, 10),
	)

	score := TimeWeighted{BaseTimeSeconds: 60, PenaltyPerSecond: 0.01}.Calculate(s, questions)

	if !almostEqual(score.WeightedScore, 1.0) {
		t.Errorf("WeightedScore = %v, want 1.0 with the stray response excluded", score.WeightedScore)
	}
}

func TestDifficultyWeighted_Calculate(t *testing.T) {
	strategy := DifficultyWeighted{EasyMultiplier: 1.0, MediumMultiplier: 1.5, HardMultiplier: 2.0}
	questions := questionsWithDifficulties(0.2, 0.5, 0.8)

	allCorrect := sessionWith(
		response(questions[0], true, 10),
		response(questions[1], true, 10),
		response(questions[2], true, 10),
	)
	score := strategy.Calculate(allCorrect, questions)
	if !almostEqual(score.WeightedScore, 1.0) {
		t.Errorf("all correct WeightedScore = %v, want 1.0", score.WeightedScore)
	}

	missedEasy := sessionWith(
		response(questions[0], false, 10),
		response(questions[1], true, 10),
		response(questions[2], true, 10),
	)
	score = strategy.Calculate(missedEasy, questions)
	// earned 1.5+2.0 over max 1.0+1.5+2.0.
	if !almostEqual(score.WeightedScore, 3.5/4.5) {
		t.Errorf("missed easy WeightedScore = %v, want %v", score.WeightedScore, 3.5/4.5)
	}
	if !almostEqual(score.RawScore, 2.0/3.0) {
		t.Errorf("missed easy RawScore = %v, want 2/3", score.RawScore)
	}
	if !almostEqual(score.DifficultyBonus, 3.5/4.5-2.0/3.0) {
		t.Errorf("DifficultyBonus = %v, want %v", score.DifficultyBonus, 3.5/4.5-2.0/3.0)
	}
}

func TestDifficultyWeighted_SkipsCountTowardMax(t *testing.T) {
	strategy := DifficultyWeighted{EasyMultiplier: 1.0, MediumMultiplier: 1.5, HardMultiplier: 2.0}
	questions := questionsWithDifficulties(0.2, 0.5, 0.8)

	s := sessionWith(
		response(questions[0], true, 10),
		response(questions[1], true, 10),
	)
	s.SkippedQuestions = []int{2}

	score := strategy.Calculate(s, questions)
	// earned 1.0+1.5, the skipped hard question adds 2.0 to the max.
	if !almostEqual(score.WeightedScore, 2.5/4.5) {
		t.Errorf("WeightedScore = %v, want %v", score.WeightedScore, 2.5/4.5)
	}

	// Out-of-range skip indices are ignored.
	s.SkippedQuestions = append(s.SkippedQuestions, 99, -1)
	again := strategy.Calculate(s, questions)
	if !almostEqual(again.WeightedScore, score.WeightedScore) {
		t.Errorf("WeightedScore with stray skips = %v, want %v", again.WeightedScore, score.WeightedScore)
	}
}

func TestAdaptive_ZeroWeightsReduceToSimple(t *testing.T) {
	questions := questionsWithDifficulties(0.3, 0.6, 0.9)
	s := sessionWith(
		response(questions[0], true, 20),
		response(questions[1], false, 40),
		response(questions[2], true, 80),
	)

	adaptive := Adaptive{}.Calculate(s, questions)
	simple := Simple{}.Calculate(s, questions)

	if adaptive.WeightedScore != simple.WeightedScore {
		t.Errorf("WeightedScore = %v, want exactly the simple score %v", adaptive.WeightedScore, simple.WeightedScore)
	}
	if adaptive.TimeBonus != 0 || adaptive.DifficultyBonus != 0 || adaptive.StreakBonus != 0 {
		t.Errorf("bonuses = (%v, %v, %v), want all 0 with zero weights",
			adaptive.TimeBonus, adaptive.DifficultyBonus, adaptive.StreakBonus)
	}
}

func TestAdaptive_BlendsWeightedSignals(t *testing.T) {
	questions := questionsWithDifficulties(0.5, 0.5)
	s := sessionWith(
		response(questions[0], true, 30),
		response(questions[1], true, 30),
	)

	strategy := Adaptive{TimeWeight: 0.5, DifficultyWeight: 0.5, StreakWeight: 0.5, ConsistencyWeight: 0.5}
	score := strategy.Calculate(s, questions)

	// Every component is 1 here, so the blend stays 1 regardless of weights.
	if !almostEqual(score.WeightedScore, 1.0) {
		t.Errorf("WeightedScore = %v, want 1.0", score.WeightedScore)
	}
	if !almostEqual(score.TimeBonus, 0.5) {
		t.Errorf("TimeBonus = %v, want speed*weight = 0.5", score.TimeBonus)
	}
	if !almostEqual(score.StreakBonus, 0.5) {
		t.Errorf("StreakBonus = %v, want streak*weight = 0.5", score.StreakBonus)
	}
	if !almostEqual(score.Components.Consistency, 1.0) {
		t.Errorf("Components.Consistency = %v, want 1.0 for uniform times", score.Components.Consistency)
	}
}

func TestStreakScore(t *testing.T) {
	questions := questionsWithDifficulties(0.5, 0.5, 0.5, 0.5, 0.5, 0.5)

	var responses []QuestionResponse
	for i, correct := range []bool{true, true, false, true, true, true} {
		responses = append(responses, response(questions[i], correct, 10))
	}

	// Longest run is 3 of 6 responses.
	if got := streakScore(responses); !almostEqual(got, 0.5) {
		t.Errorf("streakScore() = %v, want 0.5", got)
	}

	if got := streakScore(nil); got != 0 {
		t.Errorf("streakScore(nil) = %v, want 0", got)
	}
}

func TestConsistencyScore(t *testing.T) {
	questions := questionsWithDifficulties(0.5, 0.5, 0.5)

	uniform := []QuestionResponse{
		response(questions[0], true, 30),
		response(questions[1], true, 30),
		response(questions[2], true, 30),
	}
	varied := []QuestionResponse{
		response(questions[0], true, 10),
		response(questions[1], true, 50),
		response(questions[2], true, 90),
	}

	uniformScore := consistencyScore(uniform)
	variedScore := consistencyScore(varied)

	if !almostEqual(uniformScore, 1.0) {
		t.Errorf("uniform consistencyScore = %v, want 1.0", uniformScore)
	}
	if variedScore >= uniformScore {
		t.Errorf("varied consistencyScore = %v, want below uniform %v", variedScore, uniformScore)
	}
	if variedScore <= 0 || variedScore > 1 {
		t.Errorf("varied consistencyScore = %v, want within (0, 1]", variedScore)
	}

	if got := consistencyScore(uniform[:1]); got != 1 {
		t.Errorf("single-response consistencyScore = %v, want 1", got)
	}
	zeroTimes := []QuestionResponse{
		response(questions[0], true, 0),
		response(questions[1], true, 0),
	}
	if got := consistencyScore(zeroTimes); got != 1 {
		t.Errorf("all-zero-times consistencyScore = %v, want 1", got)
	}
}

func TestAdaptiveTimeScore(t *testing.T) {
	questions := questionsWithDifficulties(0.5, 0.5) // 60s estimate each

	fast := sessionWith(response(questions[0], true, 30), response(questions[1], true, 30))
	if got := adaptiveTimeScore(fast, questions); !almostEqual(got, 1.0) {
		t.Errorf("fast adaptiveTimeScore = %v, want capped 1.0", got)
	}

	slow := sessionWith(response(questions[0], true, 120), response(questions[1], true, 120))
	if got := adaptiveTimeScore(slow, questions); !almostEqual(got, 0.5) {
		t.Errorf("slow adaptiveTimeScore = %v, want 0.5", got)
	}
}

func TestScoring_EmptyInputsNeverNaN(t *testing.T) {
	strategies := []Strategy{
		Simple{},
		TimeWeighted{BaseTimeSeconds: 60, PenaltyPerSecond: 0.01},
		DifficultyWeighted{EasyMultiplier: 1, MediumMultiplier: 1.5, HardMultiplier: 2},
		Adaptive{TimeWeight: 0.3, DifficultyWeight: 0.3, StreakWeight: 0.2, ConsistencyWeight: 0.2},
	}

	s := NewSession(uuid.New(), nil)
	for _, strategy := range strategies {
		score := strategy.Calculate(s, nil)
		for name, v := range map[string]float64{
			"RawScore":        score.RawScore,
			"WeightedScore":   score.WeightedScore,
			"TimeBonus":       score.TimeBonus,
			"DifficultyBonus": score.DifficultyBonus,
			"StreakBonus":     score.StreakBonus,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%T %s = %v on empty inputs", strategy, name, v)
			}
		}
		if score.RawScore != 0 || score.WeightedScore < 0 {
			t.Errorf("%T = %+v, want zeroed raw score", strategy, score)
		}
	}
}
