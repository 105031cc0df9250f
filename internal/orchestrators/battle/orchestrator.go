// Package battle runs a single in-memory quiz battle session: a phase
// machine over an ordered question list with combo- and speed-weighted
// scoring. Sessions are never persisted; a battle that dies with the
// process is simply forfeited.
package battle

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/pkg/clock"
	"github.com/studyquest/progression/internal/pkg/idgen"
)

// bossMultiplier scales every XP award in a boss session.
const bossMultiplier = 1.5

// Service defines the interface for battle session operations. All
// methods operate on the single current session.
type Service interface {
	// StartBattle replaces any current session with a fresh one in the
	// ready phase.
	StartBattle(input *StartBattleInput) (*StartBattleOutput, error)

	// BeginQuestion moves ready to question and stamps the question
	// start time, from which the speed bonus is measured.
	BeginQuestion() (*BeginQuestionOutput, error)

	// SubmitAnswer grades the answer for the current question and moves
	// to feedback. Outside the question phase it returns the zero-value
	// no-op output.
	SubmitAnswer(input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// NextQuestion advances from feedback or capsule to the next
	// question, or to results past the end of the list.
	NextQuestion() (*NextQuestionOutput, error)

	// ShowCapsule moves feedback to capsule.
	ShowCapsule() (*ShowCapsuleOutput, error)

	// SkipCapsule leaves the capsule and advances like NextQuestion.
	SkipCapsule() (*NextQuestionOutput, error)

	// EndBattle reads the session summary without mutating anything.
	EndBattle() (*EndBattleOutput, error)

	// Reset clears the session back to the loading phase.
	Reset()
}

// Config holds the dependencies for the battle orchestrator.
type Config struct {
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	clock clock.Clock
	idGen idgen.Generator

	mu sync.Mutex

	sessionID     string
	config        progression.BattleConfig
	questions     []progression.Question
	phase         progression.BattlePhase
	index         int
	questionStart time.Time

	combo    int
	maxCombo int
	correct  int
	wrong    int
	score    int
	xpEarned int
}

// NewOrchestrator creates a battle orchestrator with the provided
// dependencies.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		clock: cfg.Clock,
		idGen: cfg.IDGenerator,
		phase: progression.PhaseLoading,
	}, nil
}

// BaseXP returns the base point value for a question difficulty.
func BaseXP(d progression.Difficulty) int {
	switch d {
	case progression.DifficultyEasy:
		return 10
	case progression.DifficultyMedium:
		return 15
	case progression.DifficultyHard:
		return 25
	case progression.DifficultyExpert:
		return 40
	default:
		return 10
	}
}

// ComboMultiplier returns the XP multiplier for a combo count.
func ComboMultiplier(combo int) float64 {
	switch {
	case combo <= 1:
		return 1.0
	case combo == 2:
		return 1.2
	case combo == 3:
		return 1.5
	case combo == 4:
		return 1.8
	case combo == 5:
		return 2.0
	default:
		return 2.5
	}
}

// SpeedBonus returns the XP multiplier for an answer's elapsed time.
func SpeedBonus(elapsed time.Duration) float64 {
	switch {
	case elapsed < 3*time.Second:
		return 1.5
	case elapsed < 5*time.Second:
		return 1.3
	case elapsed < 10*time.Second:
		return 1.1
	default:
		return 1.0
	}
}

func (o *orchestrator) StartBattle(input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Config.ZoneID == "" {
		return nil, errors.InvalidArgument("zone ID cannot be empty")
	}
	if len(input.Questions) == 0 {
		return nil, errors.InvalidArgument("at least one question is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.resetLocked()
	o.sessionID = o.idGen.Generate()
	o.config = input.Config
	o.questions = input.Questions
	o.phase = progression.PhaseReady

	slog.Info("battle started",
		"session_id", o.sessionID,
		"zone_id", o.config.ZoneID,
		"boss", o.config.BossBattle,
		"questions", len(o.questions),
	)

	return &StartBattleOutput{
		SessionID:     o.sessionID,
		QuestionCount: len(o.questions),
	}, nil
}

func (o *orchestrator) BeginQuestion() (*BeginQuestionOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase != progression.PhaseReady {
		return nil, errors.FailedPreconditionf("cannot begin question in phase %q", o.phase)
	}

	o.phase = progression.PhaseQuestion
	o.questionStart = o.clock.Now()

	return &BeginQuestionOutput{
		Question: &o.questions[o.index],
		Index:    o.index,
	}, nil
}

func (o *orchestrator) SubmitAnswer(input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	// Late or duplicate submissions are expected from impatient
	// callers; answer them with the zero result, not an error.
	if o.phase != progression.PhaseQuestion {
		return &SubmitAnswerOutput{}, nil
	}

	question := &o.questions[o.index]
	elapsed := o.clock.Now().Sub(o.questionStart)
	correct := answersMatch(question, input.Answer)

	output := &SubmitAnswerOutput{
		Correct:     correct,
		Explanation: question.Explanation,
	}

	if correct {
		o.combo++
		if o.combo > o.maxCombo {
			o.maxCombo = o.combo
		}
		o.correct++
		o.score++
		output.XP = awardXP(question.Difficulty, o.combo, elapsed, o.config.BossBattle)
		o.xpEarned += output.XP
	} else {
		o.combo = 0
		o.wrong++
	}

	output.Combo = o.combo
	o.phase = progression.PhaseFeedback

	return output, nil
}

func (o *orchestrator) NextQuestion() (*NextQuestionOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.advanceLocked()
}

func (o *orchestrator) ShowCapsule() (*ShowCapsuleOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase != progression.PhaseFeedback {
		return nil, errors.FailedPreconditionf("cannot show capsule in phase %q", o.phase)
	}

	o.phase = progression.PhaseCapsule
	return &ShowCapsuleOutput{Phase: o.phase}, nil
}

func (o *orchestrator) SkipCapsule() (*NextQuestionOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.advanceLocked()
}

func (o *orchestrator) EndBattle() (*EndBattleOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase == progression.PhaseLoading {
		return nil, errors.FailedPrecondition("no battle session started")
	}

	// Accuracy and the perfect flag are measured against the whole
	// question list: bailing out early is not a perfect round.
	total := len(o.questions)
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(o.correct) / float64(total)
	}

	return &EndBattleOutput{
		Results: &progression.BattleResults{
			ZoneID:       o.config.ZoneID,
			Score:        o.score,
			MaxScore:     total,
			Accuracy:     accuracy,
			MaxCombo:     o.maxCombo,
			XPEarned:     o.xpEarned,
			PerfectRound: total > 0 && o.correct == total,
		},
	}, nil
}

func (o *orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resetLocked()
}

// advanceLocked moves from feedback or capsule to the next question, or
// to results when the list is exhausted. Caller holds the lock.
func (o *orchestrator) advanceLocked() (*NextQuestionOutput, error) {
	if o.phase != progression.PhaseFeedback && o.phase != progression.PhaseCapsule {
		return nil, errors.FailedPreconditionf("cannot advance in phase %q", o.phase)
	}

	o.index++
	if o.index >= len(o.questions) {
		o.phase = progression.PhaseResults
		return &NextQuestionOutput{Phase: o.phase, Index: o.index}, nil
	}

	o.phase = progression.PhaseQuestion
	o.questionStart = o.clock.Now()

	return &NextQuestionOutput{
		Phase:    o.phase,
		Question: &o.questions[o.index],
		Index:    o.index,
	}, nil
}

func (o *orchestrator) resetLocked() {
	o.sessionID = ""
	o.config = progression.BattleConfig{}
	o.questions = nil
	o.phase = progression.PhaseLoading
	o.index = 0
	o.questionStart = time.Time{}
	o.combo = 0
	o.maxCombo = 0
	o.correct = 0
	o.wrong = 0
	o.score = 0
	o.xpEarned = 0
}

// awardXP computes the XP for one correct answer. The boss multiplier
// applies before the single final rounding.
func awardXP(d progression.Difficulty, combo int, elapsed time.Duration, boss bool) int {
	xp := float64(BaseXP(d)) * ComboMultiplier(combo) * SpeedBonus(elapsed)
	if boss {
		xp *= bossMultiplier
	}
	return int(math.Round(xp))
}

// answersMatch applies the per-type equality rule.
func answersMatch(q *progression.Question, a progression.Answer) bool {
	switch q.Type {
	case progression.QuestionNumeric:
		return numericEqual(q.Content.CorrectAnswer, a.Text)
	case progression.QuestionOrdering, progression.QuestionMatching:
		return sequencesEqual(q.Content.CorrectSequence, a.Sequence)
	default:
		return strings.EqualFold(strings.TrimSpace(q.Content.CorrectAnswer), strings.TrimSpace(a.Text))
	}
}

func numericEqual(expected, got string) bool {
	want, err := strconv.ParseFloat(strings.TrimSpace(expected), 64)
	if err != nil {
		return false
	}
	have, err := strconv.ParseFloat(strings.TrimSpace(got), 64)
	if err != nil {
		return false
	}
	return math.Abs(want-have) < 1e-9
}

// sequencesEqual is order-sensitive: ordering questions grade the order
// itself, and matching answers are submitted in option order.
func sequencesEqual(expected, got []string) bool {
	if len(expected) == 0 || len(expected) != len(got) {
		return false
	}
	for i := range expected {
		if !strings.EqualFold(strings.TrimSpace(expected[i]), strings.TrimSpace(got[i])) {
			return false
		}
	}
	return true
}
