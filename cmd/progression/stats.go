package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyquest/progression/internal/orchestrators/codex"
	"github.com/studyquest/progression/internal/orchestrators/experience"
	"github.com/studyquest/progression/internal/services/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the profile's progression snapshot",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ledger, err := a.experience.GetLedger(ctx, &experience.GetLedgerInput{ProfileID: a.profileID})
	if err != nil {
		return err
	}
	snapshot, err := a.stats.Snapshot(ctx, &stats.SnapshotInput{ProfileID: a.profileID})
	if err != nil {
		return err
	}
	progress, err := a.codex.GetProgress(ctx, &codex.GetProgressInput{
		ProfileID: a.profileID,
		Stats:     snapshot.Stats,
	})
	if err != nil {
		return err
	}

	st := snapshot.Stats
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Profile\t%s\n", a.profileID)
	fmt.Fprintf(w, "Level\t%d (%d/%d XP)\n", ledger.Ledger.Level, ledger.Ledger.CurrentLevelXP, ledger.Ledger.XPToNextLevel)
	fmt.Fprintf(w, "Total XP\t%d\n", st.TotalXP)
	fmt.Fprintf(w, "Streak\t%d (longest %d)\n", st.CurrentStreak, st.LongestStreak)
	fmt.Fprintf(w, "Zones mastered\t%d\n", st.CompletedZones)
	fmt.Fprintf(w, "Overall mastery\t%.1f%%\n", st.OverallMastery)
	fmt.Fprintf(w, "Bosses defeated\t%d\n", st.BossesDefeated)
	fmt.Fprintf(w, "Perfect games\t%d\n", st.PerfectGames)
	fmt.Fprintf(w, "Subjects started\t%d\n", st.SubjectsStarted)
	p := progress.Progress
	fmt.Fprintf(w, "Codex chapters\t%d/%d unlocked, %d read\n", p.ChaptersUnlocked, p.ChaptersTotal, p.ChaptersRead)
	fmt.Fprintf(w, "Bonus fragments\t%d/%d unlocked, %d read\n", p.BonusUnlocked, p.BonusTotal, p.BonusRead)
	if err := w.Flush(); err != nil {
		return err
	}

	if next := a.codex.GetNextLockedChapter(snapshot.Stats); next != nil {
		fmt.Printf("\nNext chapter: %s (%s)\n", next.Title, next.Requirement.Description)
	}

	return nil
}
