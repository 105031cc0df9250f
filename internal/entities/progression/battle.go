package progression

// QuestionContent carries the renderable and gradable parts of a question.
// The engine only reads the correct answer; prompt and options belong to
// the UI.
type QuestionContent struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options,omitempty"`

	// CorrectAnswer grades multiple-choice, numeric, and free-text
	// questions. CorrectSequence grades ordering and matching questions.
	CorrectAnswer   string   `yaml:"correct_answer,omitempty"`
	CorrectSequence []string `yaml:"correct_sequence,omitempty"`
}

// Question is one entry of a battle's ordered question list.
type Question struct {
	ID          string          `yaml:"id"`
	Type        QuestionType    `yaml:"type"`
	Difficulty  Difficulty      `yaml:"difficulty"`
	Content     QuestionContent `yaml:"content"`
	Explanation string          `yaml:"explanation,omitempty"`
	Hints       []string        `yaml:"hints,omitempty"`
	Tags        []string        `yaml:"tags,omitempty"`
}

// Answer is a submitted answer. Text grades string and numeric questions;
// Sequence grades ordering and matching questions.
type Answer struct {
	Text     string   `yaml:"text,omitempty"`
	Sequence []string `yaml:"sequence,omitempty"`
}

// BattleConfig configures one battle session.
type BattleConfig struct {
	ZoneID     string
	BossBattle bool
}

// BattleResults is the terminal summary of a battle session.
type BattleResults struct {
	ZoneID       string
	Score        int
	MaxScore     int
	Accuracy     float64
	MaxCombo     int
	XPEarned     int
	PerfectRound bool
}
