package content

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
)

// ScriptedQuestion pairs a question with the answer a simulation should
// submit for it and how long it should pretend to think.
type ScriptedQuestion struct {
	Question progression.Question `yaml:"question"`
	Respond  progression.Answer   `yaml:"respond"`
	DelayMS  int                  `yaml:"delay_ms,omitempty"`
}

// QuestionSet is a complete scripted battle: the zone, the boss flag,
// and the ordered questions with their scripted responses.
type QuestionSet struct {
	ZoneID    string             `yaml:"zone_id"`
	Boss      bool               `yaml:"boss,omitempty"`
	Questions []ScriptedQuestion `yaml:"questions"`
}

// LoadQuestionSet loads a scripted question set from a YAML file.
func LoadQuestionSet(path string) (*QuestionSet, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read question set %s", cleanPath)
	}

	var qs QuestionSet
	if err := yaml.Unmarshal(b, &qs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse question set %s", cleanPath)
	}

	if qs.ZoneID == "" {
		return nil, errors.InvalidArgumentf("question set %s has no zone_id", cleanPath)
	}
	if len(qs.Questions) == 0 {
		return nil, errors.InvalidArgumentf("question set %s has no questions", cleanPath)
	}
	return &qs, nil
}

// BattleQuestions strips the scripted responses, leaving the question
// list a battle session consumes.
func (qs *QuestionSet) BattleQuestions() []progression.Question {
	questions := make([]progression.Question, len(qs.Questions))
	for i, sq := range qs.Questions {
		questions[i] = sq.Question
	}
	return questions
}
