package out

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"quizforge/internal/modules/quiz/domain"
	quizout "quizforge/internal/modules/quiz/port/out"
	apperrors "quizforge/internal/platform/errors"
)

type yamlTest struct {
	Questions []yamlQuestion `yaml:"questions"`
}

type yamlQuestion struct {
	Prompt  string   `yaml:"prompt"`
	Answers []string `yaml:"answers,omitempty"`
	Correct int      `yaml:"correct"`
}

// YAMLTestStore keeps tests in a human-editable YAML document.
type YAMLTestStore struct{}

func NewYAMLTestStore() quizout.TestStore {
	return &YAMLTestStore{}
}

func (s *YAMLTestStore) Load(_ context.Context, path string) (domain.Test, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return domain.Test{}, fmt.Errorf("%w: read %s: %v", apperrors.ErrDamagedFile, path, err)
	}
	var doc yamlTest
	decoder := yaml.NewDecoder(bytes.NewReader(payload))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return domain.Test{}, fmt.Errorf("%w: parse yaml: %v", apperrors.ErrDamagedFile, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return domain.Test{}, fmt.Errorf("%w: parse yaml: multiple documents are not supported", apperrors.ErrDamagedFile)
	}
	records := make([][]string, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		rec := append([]string{q.Prompt}, q.Answers...)
		records = append(records, append(rec, strconv.Itoa(q.Correct)))
	}
	return domain.TestFromRecords(records)
}

func (s *YAMLTestStore) Save(_ context.Context, path string, test domain.Test) error {
	doc := yamlTest{Questions: make([]yamlQuestion, 0, len(test.Questions))}
	for _, q := range test.Questions {
		doc.Questions = append(doc.Questions, yamlQuestion{Prompt: q.Prompt, Answers: q.Answers, Correct: q.Correct})
	}
	buf := bytes.Buffer{}
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return writeFileSync(path, buf.Bytes())
}
