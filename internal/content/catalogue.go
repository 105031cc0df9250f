// Package content loads the static content the engine consumes: the
// codex catalogue and scripted question sets. Content is data, not
// state; nothing in this package is ever written back.
package content

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
)

// Catalogue is the fixed, ordered codex content: chapters, bonus
// fragments, and the subject list the all-subjects requirement is
// measured against.
type Catalogue struct {
	Subjects       []string                    `yaml:"subjects"`
	Chapters       []progression.Chapter       `yaml:"chapters"`
	BonusFragments []progression.BonusFragment `yaml:"bonus_fragments"`
}

// LoadCatalogue loads a catalogue from a YAML file.
func LoadCatalogue(path string) (*Catalogue, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalogue %s", cleanPath)
	}

	var c Catalogue
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "failed to parse catalogue %s", cleanPath)
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid catalogue %s", cleanPath)
	}
	return &c, nil
}

// Validate checks catalogue integrity: IDs must be unique across
// chapters and across bonus fragments.
func (c *Catalogue) Validate() error {
	seen := make(map[string]struct{}, len(c.Chapters))
	for _, ch := range c.Chapters {
		if ch.ID == "" {
			return errors.InvalidArgument("chapter with empty ID")
		}
		if _, dup := seen[ch.ID]; dup {
			return errors.InvalidArgumentf("duplicate chapter ID %q", ch.ID)
		}
		seen[ch.ID] = struct{}{}
	}

	seen = make(map[string]struct{}, len(c.BonusFragments))
	for _, b := range c.BonusFragments {
		if b.ID == "" {
			return errors.InvalidArgument("bonus fragment with empty ID")
		}
		if _, dup := seen[b.ID]; dup {
			return errors.InvalidArgumentf("duplicate bonus fragment ID %q", b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	return nil
}

// DefaultCatalogue returns the built-in catalogue used when no
// catalogue file is configured.
func DefaultCatalogue() *Catalogue {
	return &Catalogue{
		Subjects: []string{"maths", "science", "history", "language"},
		Chapters: []progression.Chapter{
			{
				ID: "ch-awakening", Ordinal: 1, Title: "The Awakening",
				Summary: "A spark of curiosity stirs in the Scholar's Vale.",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementXP, Threshold: 0,
					Description: "Begin your journey",
				},
			},
			{
				ID: "ch-first-steps", Ordinal: 2, Title: "First Steps",
				Summary: "The vale opens its gates to those who persist.",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementXP, Threshold: 100,
					Description: "Earn 100 XP",
				},
			},
			{
				ID: "ch-trial-of-flame", Ordinal: 3, Title: "Trial of Flame",
				Summary: "Only a steady flame lights the deeper paths.",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementStreak, Threshold: 3,
					Description: "Reach a 3-day streak",
				},
			},
			{
				ID: "ch-proving-grounds", Ordinal: 4, Title: "The Proving Grounds",
				Summary: "Mastery of one domain earns passage to the next.",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementZones, Threshold: 1,
					Description: "Master your first zone",
				},
			},
			{
				ID: "ch-gathering-storm", Ordinal: 5, Title: "The Gathering Storm",
				Summary: "Power accumulates quietly before it is tested.",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementXP, Threshold: 500,
					Description: "Earn 500 XP",
				},
			},
			{
				ID: "ch-first-guardian", Ordinal: 6, Title: "The First Guardian",
				Summary: "Every gate in the vale has its keeper.",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementBosses, Threshold: 1,
					Description: "Defeat a zone guardian",
				},
			},
			{
				ID: "ch-flawless", Ordinal: 7, Title: "Flawless",
				Summary: "Perfection is rare, and the vale remembers it.",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementPerfect, Threshold: 3,
					Description: "Complete 3 perfect battles",
				},
			},
			{
				ID: "ch-polymath", Ordinal: 8, Title: "The Polymath",
				Summary: "No domain of knowledge stands alone.",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementAllSubjects, Threshold: 0,
					Description: "Study every subject",
				},
			},
		},
		BonusFragments: []progression.BonusFragment{
			{
				ID: "bf-vale-map", Ordinal: 1, Title: "Map of the Vale",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementXP, Threshold: 50,
					Description: "Earn 50 XP",
				},
			},
			{
				ID: "bf-keepers-diary", Ordinal: 2, Title: "The Keeper's Diary",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementStreak, Threshold: 7,
					Description: "Reach a 7-day streak",
				},
			},
			{
				ID: "bf-gold-sigil", Ordinal: 3, Title: "The Gold Sigil",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementMastery, Threshold: 60,
					Description: "Reach 60% overall mastery",
				},
			},
			{
				ID: "bf-guardians-oath", Ordinal: 4, Title: "The Guardian's Oath",
				Requirement: progression.UnlockRequirement{
					Kind: progression.RequirementBosses, Threshold: 5,
					Description: "Defeat 5 zone guardians",
				},
			},
		},
	}
}
