// Package catalog loads and validates the static guidance datasets: the
// stream catalog (domains and subject combinations), the question catalog,
// and the course score matrix. A loaded Catalog is immutable and safe for
// concurrent reads.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Catalog is the read-only context the weighting and ranking engine
// computes against.
type Catalog struct {
	streams   map[string]Stream
	questions QuestionSet
	matrix    map[string]MatrixRow
}

// New builds a Catalog from already-decoded data. Used by Load and by tests
// that construct small catalogs inline.
func New(streams map[string]Stream, questions QuestionSet, matrix map[string]MatrixRow) *Catalog {
	if streams == nil {
		streams = map[string]Stream{}
	}
	if matrix == nil {
		matrix = map[string]MatrixRow{}
	}
	return &Catalog{streams: streams, questions: questions, matrix: matrix}
}

// Load reads and validates the three catalog documents. Each may be JSON or
// YAML, decided by file extension. Any read, parse, or schema failure is
// returned: the service cannot compute without its catalogs.
func Load(streamsPath, questionsPath, matrixPath string) (*Catalog, error) {
	var streams map[string]Stream
	if err := loadDocument(streamsPath, streamsSchema, &streams); err != nil {
		return nil, fmt.Errorf("loading stream catalog: %w", err)
	}

	var questions QuestionSet
	if err := loadDocument(questionsPath, questionsSchema, &questions); err != nil {
		return nil, fmt.Errorf("loading question catalog: %w", err)
	}

	var matrix map[string]MatrixRow
	if err := loadDocument(matrixPath, matrixSchema, &matrix); err != nil {
		return nil, fmt.Errorf("loading course matrix: %w", err)
	}

	cat := New(streams, questions, matrix)
	slog.Info("catalogs loaded",
		"domains", len(cat.streams),
		"courses", len(cat.matrix),
		"core_questions", len(cat.questions.CoreQuestions),
	)
	return cat, nil
}

// Domains returns all known domain names, sorted.
func (c *Catalog) Domains() []string {
	domains := make([]string, 0, len(c.streams))
	for name := range c.streams {
		domains = append(domains, name)
	}
	sort.Strings(domains)
	return domains
}

// Stream returns the stream for a domain.
func (c *Catalog) Stream(domain string) (Stream, bool) {
	s, ok := c.streams[domain]
	return s, ok
}

// CoursesForCombination scans every domain for a combination with the given
// id and returns its base courses followed by its new courses. An unknown id
// yields nil, not an error.
func (c *Catalog) CoursesForCombination(id string) []string {
	for _, domain := range c.Domains() {
		for _, combo := range c.streams[domain].Combinations {
			if combo.ID != id {
				continue
			}
			courses := make([]string, 0, len(combo.Courses)+len(combo.NewCourses))
			courses = append(courses, combo.Courses...)
			courses = append(courses, combo.NewCourses...)
			return courses
		}
	}
	return nil
}

// CourseScores returns the matrix row for a course. Callers must not mutate
// the returned map.
func (c *Catalog) CourseScores(course string) (MatrixRow, bool) {
	row, ok := c.matrix[course]
	return row, ok
}

// QuestionsForDomain returns the core questions followed by the questions
// specific to the given domain. Unknown domains contribute no
// stream-specific questions.
func (c *Catalog) QuestionsForDomain(domain string) []Question {
	specific := c.questions.StreamSpecificQuestions[domain]
	questions := make([]Question, 0, len(c.questions.CoreQuestions)+len(specific))
	questions = append(questions, c.questions.CoreQuestions...)
	questions = append(questions, specific...)
	return questions
}

// loadDocument reads a JSON or YAML file, validates it against the schema,
// and decodes it into out.
func loadDocument(path, schema string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Normalize YAML to JSON so one schema pass covers both formats.
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return fmt.Errorf("converting %s: %w", path, err)
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("%s failed schema validation: %s", path, strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
