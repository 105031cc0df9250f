package continuity

import (
	"fmt"

	"github.com/studyquest/progression/internal/entities/progression"
)

// MomentumMessageFor picks the encouragement copy for a continuity
// record. Every bucket reads as forward-looking; a lost streak is framed
// as a fresh start, not a failure.
func MomentumMessageFor(rec *progression.ContinuityRecord) progression.MomentumMessage {
	if rec.StreakWasReset && rec.PreviousStreak > 0 {
		return progression.MomentumMessage{
			Title:         "Fresh Start!",
			Subtitle:      fmt.Sprintf("You've built a %d-day streak before", rec.PreviousStreak),
			Encouragement: "You did it once, you can do it again. Day one starts now!",
		}
	}

	streak := rec.CurrentStreak
	switch {
	case streak <= 0:
		return progression.MomentumMessage{
			Title:         "Ready When You Are",
			Subtitle:      "Every great streak starts with a single day",
			Encouragement: "Jump into a battle and light the flame!",
		}
	case streak == 1:
		return progression.MomentumMessage{
			Title:         "The Flame Is Lit!",
			Subtitle:      "Day 1 of your streak",
			Encouragement: "Come back tomorrow to keep it burning!",
		}
	case streak <= 3:
		return progression.MomentumMessage{
			Title:         "Building Momentum",
			Subtitle:      fmt.Sprintf("%d days in a row", streak),
			Encouragement: "A few more days and this becomes a habit!",
		}
	case streak <= 7:
		return progression.MomentumMessage{
			Title:         "On a Roll!",
			Subtitle:      fmt.Sprintf("%d-day streak and climbing", streak),
			Encouragement: "Your flame is getting warmer every day!",
		}
	case streak <= 14:
		return progression.MomentumMessage{
			Title:         "Blazing Hot!",
			Subtitle:      fmt.Sprintf("%d straight days of learning", streak),
			Encouragement: "Two weeks of dedication is no accident. Keep going!",
		}
	case streak <= 30:
		return progression.MomentumMessage{
			Title:         "Unstoppable!",
			Subtitle:      fmt.Sprintf("%d days without missing a beat", streak),
			Encouragement: "You're in rare company now. The 30-day blaze awaits!",
		}
	default:
		return progression.MomentumMessage{
			Title:         "Legendary Dedication",
			Subtitle:      fmt.Sprintf("%d days and counting", streak),
			Encouragement: "Streaks like this change who you are. Incredible work!",
		}
	}
}
