package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyquest/progression/internal/content"
	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/orchestrators/battle"
	"github.com/studyquest/progression/internal/orchestrators/codex"
	"github.com/studyquest/progression/internal/orchestrators/continuity"
	"github.com/studyquest/progression/internal/orchestrators/experience"
	"github.com/studyquest/progression/internal/orchestrators/mastery"
	"github.com/studyquest/progression/internal/pkg/clock"
	"github.com/studyquest/progression/internal/pkg/idgen"
	"github.com/studyquest/progression/internal/services/stats"
)

// bossWinAccuracy is the simulator's own win rule for boss battles. The
// engine never decides boss victories; that call belongs to the caller.
const bossWinAccuracy = 0.7

var simulateCmd = &cobra.Command{
	Use:   "simulate <questions.yaml>",
	Short: "Run a scripted battle end to end and record the outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	qs, err := content.LoadQuestionSet(args[0])
	if err != nil {
		return err
	}

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	// The scripted delays drive a fake clock, so a simulation earns the
	// same speed bonuses a live session with those thinking times would.
	fakeClock := clock.NewFake(time.Now())
	battleSvc, err := battle.NewOrchestrator(&battle.Config{
		Clock:       fakeClock,
		IDGenerator: idgen.NewUUID("battle"),
	})
	if err != nil {
		return err
	}

	started, err := battleSvc.StartBattle(&battle.StartBattleInput{
		Config:    progression.BattleConfig{ZoneID: qs.ZoneID, BossBattle: qs.Boss},
		Questions: qs.BattleQuestions(),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Battle %s: %s, %d questions", started.SessionID, qs.ZoneID, started.QuestionCount)
	if qs.Boss {
		fmt.Print(" (boss)")
	}
	fmt.Println()

	if _, err := battleSvc.BeginQuestion(); err != nil {
		return err
	}

	graded := make([]*battle.SubmitAnswerOutput, 0, len(qs.Questions))
	for _, sq := range qs.Questions {
		fakeClock.Advance(time.Duration(sq.DelayMS) * time.Millisecond)

		answer, err := battleSvc.SubmitAnswer(&battle.SubmitAnswerInput{Answer: sq.Respond})
		if err != nil {
			return err
		}
		graded = append(graded, answer)

		mark := "✗"
		if answer.Correct {
			mark = "✓"
		}
		fmt.Printf("  %s %s (+%d XP, combo %d)\n", mark, sq.Question.ID, answer.XP, answer.Combo)

		if _, err := battleSvc.NextQuestion(); err != nil {
			return err
		}
	}

	ended, err := battleSvc.EndBattle()
	if err != nil {
		return err
	}
	results := ended.Results

	fmt.Printf("\nScore %d/%d, accuracy %.0f%%, max combo %d, %d XP",
		results.Score, results.MaxScore, results.Accuracy*100, results.MaxCombo, results.XPEarned)
	if results.PerfectRound {
		fmt.Print(" - perfect round!")
	}
	fmt.Println()

	// Feed the finished battle back into the durable stores.
	for _, answer := range graded {
		if _, err := a.mastery.RecordAttempt(ctx, &mastery.RecordAttemptInput{
			ProfileID: a.profileID,
			ZoneID:    qs.ZoneID,
			Correct:   answer.Correct,
			Combo:     answer.Combo,
		}); err != nil {
			return err
		}
	}

	outcome, err := a.experience.RecordBattleOutcome(ctx, &experience.RecordBattleOutcomeInput{
		ProfileID:    a.profileID,
		Results:      results,
		BossDefeated: qs.Boss && results.Accuracy >= bossWinAccuracy,
	})
	if err != nil {
		return err
	}
	if outcome.LeveledUp {
		fmt.Printf("Level up! Now level %d\n", outcome.NewLevel)
	}

	if _, err := a.continuity.RecordActivity(ctx, &continuity.RecordActivityInput{
		ProfileID: a.profileID,
	}); err != nil {
		return err
	}

	snapshot, err := a.stats.Snapshot(ctx, &stats.SnapshotInput{ProfileID: a.profileID})
	if err != nil {
		return err
	}
	unlocks, err := a.codex.CheckForNewUnlocks(ctx, &codex.CheckForNewUnlocksInput{
		ProfileID: a.profileID,
		Stats:     snapshot.Stats,
	})
	if err != nil {
		return err
	}
	for _, ch := range unlocks.NewChapters {
		fmt.Printf("New chapter unlocked: %s\n", ch.Title)
	}
	for _, b := range unlocks.NewBonus {
		fmt.Printf("New bonus fragment unlocked: %s\n", b.Title)
	}

	return nil
}
