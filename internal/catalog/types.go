package catalog

// Option is one selectable answer for a question, paired with the numeric
// value it contributes to the question's criterion.
type Option struct {
	Text  string  `json:"text" yaml:"text"`
	Value float64 `json:"value" yaml:"value"`
}

// Question is a single questionnaire item tagged with the criterion it
// measures.
type Question struct {
	ID        string   `json:"id" yaml:"id"`
	Text      string   `json:"text" yaml:"text"`
	Criterion string   `json:"criterion" yaml:"criterion"`
	Options   []Option `json:"options" yaml:"options"`
}

// QuestionSet holds the universal core questions plus questions scoped to a
// single academic stream.
type QuestionSet struct {
	CoreQuestions           []Question            `json:"core_questions" yaml:"core_questions"`
	StreamSpecificQuestions map[string][]Question `json:"stream_specific_questions" yaml:"stream_specific_questions"`
}

// Combination is a named set of subjects and the courses it leads to.
// Courses lists the established options; NewCourses lists emerging ones and
// is appended after Courses when resolving the course universe.
type Combination struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Courses    []string `json:"courses" yaml:"courses"`
	NewCourses []string `json:"new_courses,omitempty" yaml:"new_courses,omitempty"`
}

// Stream is one academic domain (science, commerce, ...) with its subject
// combinations.
type Stream struct {
	Description  string        `json:"description" yaml:"description"`
	Combinations []Combination `json:"combinations" yaml:"combinations"`
}

// MatrixRow maps criterion tags to a course's score on each criterion.
type MatrixRow = map[string]float64
