package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyquest/progression/internal/orchestrators/codex"
	"github.com/studyquest/progression/internal/orchestrators/continuity"
	"github.com/studyquest/progression/internal/services/stats"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record today's activity and show the streak",
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if a.reconciled.StreakExpired {
		fmt.Printf("Your %d-day streak ended while you were away.\n", a.reconciled.Record.PreviousStreak)
	}

	activity, err := a.continuity.RecordActivity(ctx, &continuity.RecordActivityInput{
		ProfileID: a.profileID,
	})
	if err != nil {
		return err
	}

	rec := activity.Record
	fmt.Printf("Streak: %d day(s)  [%s]\n", rec.CurrentStreak, rec.FlameIntensity)
	if activity.ShieldConsumed {
		fmt.Println("A streak shield absorbed the missed day.")
	}
	if activity.Milestone != nil {
		fmt.Printf("Milestone reached: %s (%d days)\n", activity.Milestone.Title, activity.Milestone.Days)
		if activity.Milestone.GrantsShield {
			fmt.Println("You earned a streak shield!")
		}
	}

	message, err := a.continuity.GetMomentumMessage(ctx, &continuity.GetMomentumMessageInput{
		ProfileID: a.profileID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n%s\n%s\n", message.Message.Title, message.Message.Subtitle, message.Message.Encouragement)

	// A longer streak can unlock codex content on its own.
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
		fmt.Printf("\nNew chapter unlocked: %s\n", ch.Title)
	}
	for _, b := range unlocks.NewBonus {
		fmt.Printf("New bonus fragment unlocked: %s\n", b.Title)
	}

	return nil
}
