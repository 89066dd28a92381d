// Package course turns a free-text request into a validated, multi-step
// course by way of a single LLM call.
package course

import (
	"encoding/json"
	"fmt"
	"math"
)

// Step is one practical instruction in a course. Step is the number the
// model assigned; it is shown as-is and never used for ordering.
type Step struct {
	Step    int    `json:"step"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// QuizQuestion is a four-option multiple-choice knowledge check.
type QuizQuestion struct {
	Question      string    `json:"question"`
	Options       [4]string `json:"options"`
	CorrectAnswer int       `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
}

// Content is a generated course. It is created whole by the Generator and
// never mutated afterwards.
type Content struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     []Step         `json:"content"`
	Quiz        []QuizQuestion `json:"quiz,omitempty"`
}

// Course length bounds.
const (
	MinSteps      = 5
	MaxSteps      = 10
	QuizQuestions = 3
	QuizOptions   = 4
)

// HasQuiz reports whether the course ends with a quiz.
func (c *Content) HasQuiz() bool {
	return c != nil && len(c.Quiz) > 0
}

// IsCorrect reports whether option answers the question.
func (q QuizQuestion) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}

// UnmarshalJSON accepts whole-number floats such as 2.0 for the step number.
func (s *Step) UnmarshalJSON(b []byte) error {
	type plain Step
	var w struct {
		plain
		Step json.Number `json:"step"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	n, err := wholeNumber(w.Step)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	*s = Step(w.plain)
	s.Step = n
	return nil
}

// UnmarshalJSON accepts whole-number floats for correctAnswer.
func (q *QuizQuestion) UnmarshalJSON(b []byte) error {
	type plain QuizQuestion
	var w struct {
		plain
		CorrectAnswer json.Number `json:"correctAnswer"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	n, err := wholeNumber(w.CorrectAnswer)
	if err != nil {
		return fmt.Errorf("correctAnswer: %w", err)
	}
	*q = QuizQuestion(w.plain)
	q.CorrectAnswer = n
	return nil
}

// wholeNumber converts n to an int. An absent number is 0.
func wholeNumber(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s is not a whole number", n)
	}
	return int(f), nil
}

// decodeContent decodes a validated response. Without the quiz any quiz
// field is ignored, whatever its shape.
func decodeContent(raw []byte, withQuiz bool) (*Content, error) {
	if withQuiz {
		var c Content
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return &c, nil
	}

	var steps struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     []Step `json:"content"`
	}
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil, err
	}
	return &Content{Title: steps.Title, Description: steps.Description, Content: steps.Content}, nil
}
