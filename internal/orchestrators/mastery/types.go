package mastery

import (
	"github.com/studyquest/progression/internal/entities/progression"
)

// RecordAttemptInput records one graded answer against a zone.
type RecordAttemptInput struct {
	ProfileID string
	ZoneID    string
	Correct   bool

	// Combo is the in-battle combo at the moment of the attempt, used to
	// track the zone's best combo.
	Combo int
}

// RecordAttemptOutput reports the zone state after the attempt.
type RecordAttemptOutput struct {
	Zone *progression.ZoneMastery

	// TierChanged is set when the recomputed tier differs from the tier
	// before this attempt, in either direction.
	TierChanged bool
}

// GetZoneInput identifies one zone of a profile.
type GetZoneInput struct {
	ProfileID string
	ZoneID    string
}

// GetZoneOutput carries the zone record. Unknown zones read as a fresh
// record with tier none.
type GetZoneOutput struct {
	Zone *progression.ZoneMastery
}

// ListZonesInput identifies the profile to read.
type ListZonesInput struct {
	ProfileID string
}

// ListZonesOutput carries every known zone record keyed by zone ID.
type ListZonesOutput struct {
	Zones map[string]*progression.ZoneMastery
}
