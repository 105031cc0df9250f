package battle

import (
	"github.com/studyquest/progression/internal/entities/progression"
)

// StartBattleInput configures a new session and supplies its ordered
// question list.
type StartBattleInput struct {
	Config    progression.BattleConfig
	Questions []progression.Question
}

// StartBattleOutput reports the session that was started.
type StartBattleOutput struct {
	SessionID     string
	QuestionCount int
}

// BeginQuestionOutput presents the question now being asked.
type BeginQuestionOutput struct {
	Question *progression.Question

	// Index is the zero-based position in the question list.
	Index int
}

// SubmitAnswerInput carries one submitted answer for the current question.
type SubmitAnswerInput struct {
	Answer progression.Answer
}

// SubmitAnswerOutput grades the submission. Outside the question phase
// every field is zero and Correct is false; that is the documented no-op,
// not an error.
type SubmitAnswerOutput struct {
	Correct bool
	XP      int

	// Combo is the combo counter after this answer.
	Combo int

	Explanation string
}

// NextQuestionOutput reports where the session advanced to: the next
// question, or the results phase when the list is exhausted.
type NextQuestionOutput struct {
	Phase    progression.BattlePhase
	Question *progression.Question
	Index    int
}

// ShowCapsuleOutput confirms the transition into the knowledge capsule.
type ShowCapsuleOutput struct {
	Phase progression.BattlePhase
}

// EndBattleOutput carries the terminal summary of the session.
type EndBattleOutput struct {
	Results *progression.BattleResults
}
