// Package navigation sequences a course through its intro, steps, quiz and
// completion screens.
package navigation

import (
	"math"

	"github.com/abhisek/trainy/internal/course"
)

// Screen identifies which view the cursor selects.
type Screen int

const (
	ScreenNoCourse Screen = iota
	ScreenIntro
	ScreenStep
	ScreenQuiz
	ScreenComplete
)

func (s Screen) String() string {
	switch s {
	case ScreenNoCourse:
		return "no-course"
	case ScreenIntro:
		return "intro"
	case ScreenStep:
		return "step"
	case ScreenQuiz:
		return "quiz"
	case ScreenComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Cursor is the navigation position. StepIndex -1 is the intro and
// StepIndex == len(steps) is the completion screen.
type Cursor struct {
	StepIndex int
	QuizIndex int
	InQuiz    bool
}

// AnswerState is the per-question sub-state.
type AnswerState int

const (
	Unanswered AnswerState = iota
	Selected
	Checked
)

// Answer is the current quiz question's answer. Option is -1 while
// Unanswered.
type Answer struct {
	State   AnswerState
	Option  int
	Correct bool
}

// Navigator owns the loaded course and the cursor over it. All transitions
// that do not apply to the current screen are no-ops.
type Navigator struct {
	content *course.Content
	cursor  Cursor
	answer  Answer
	results map[int]bool // quiz index -> answered correctly
}

// New returns a Navigator with no course loaded.
func New() *Navigator {
	return &Navigator{answer: Answer{Option: -1}}
}

// Load installs content and moves to the intro.
func (n *Navigator) Load(content *course.Content) {
	if content == nil {
		n.GoHome()
		return
	}
	n.content = content
	n.cursor = Cursor{StepIndex: -1}
	n.results = make(map[int]bool)
	n.resetAnswer()
}

// GoHome discards the course from any state.
func (n *Navigator) GoHome() {
	n.content = nil
	n.cursor = Cursor{}
	n.results = nil
	n.resetAnswer()
}

// Content returns the loaded course, or nil.
func (n *Navigator) Content() *course.Content {
	return n.content
}

// Cursor returns the current position.
func (n *Navigator) Cursor() Cursor {
	return n.cursor
}

// Screen returns the screen the cursor selects.
func (n *Navigator) Screen() Screen {
	switch {
	case n.content == nil:
		return ScreenNoCourse
	case n.cursor.InQuiz:
		return ScreenQuiz
	case n.cursor.StepIndex < 0:
		return ScreenIntro
	case n.cursor.StepIndex >= len(n.content.Content):
		return ScreenComplete
	default:
		return ScreenStep
	}
}

// Start leaves the intro for the first step.
func (n *Navigator) Start() {
	if n.Screen() == ScreenIntro {
		n.cursor.StepIndex = 0
	}
}

// Next advances one screen. On a quiz question it requires a checked
// answer.
func (n *Navigator) Next() {
	switch n.Screen() {
	case ScreenIntro:
		n.Start()
	case ScreenStep:
		last := len(n.content.Content) - 1
		switch {
		case n.cursor.StepIndex < last:
			n.cursor.StepIndex++
		case n.content.HasQuiz():
			n.cursor.InQuiz = true
			n.cursor.QuizIndex = 0
			n.resetAnswer()
		default:
			n.cursor.StepIndex = len(n.content.Content)
		}
	case ScreenQuiz:
		if n.answer.State != Checked {
			return
		}
		if n.cursor.QuizIndex < len(n.content.Quiz)-1 {
			n.cursor.QuizIndex++
		} else {
			n.cursor.InQuiz = false
			n.cursor.QuizIndex = 0
			n.cursor.StepIndex = len(n.content.Content)
		}
		n.resetAnswer()
	}
}

// Previous goes back one screen.
func (n *Navigator) Previous() {
	switch n.Screen() {
	case ScreenStep:
		n.cursor.StepIndex--
	case ScreenQuiz:
		if n.cursor.QuizIndex > 0 {
			n.cursor.QuizIndex--
		} else {
			n.cursor.InQuiz = false
			n.cursor.StepIndex = len(n.content.Content) - 1
		}
		n.resetAnswer()
	}
}

// Select marks option as the chosen answer. Ignored once the answer is
// checked or when option is out of range.
func (n *Navigator) Select(option int) {
	if n.Screen() != ScreenQuiz || n.answer.State == Checked {
		return
	}
	if option < 0 || option >= course.QuizOptions {
		return
	}
	n.answer = Answer{State: Selected, Option: option}
}

// Check locks the selected answer and records whether it was correct.
func (n *Navigator) Check() {
	if n.Screen() != ScreenQuiz || n.answer.State != Selected {
		return
	}
	q := n.content.Quiz[n.cursor.QuizIndex]
	n.answer.State = Checked
	n.answer.Correct = q.IsCorrect(n.answer.Option)
	n.results[n.cursor.QuizIndex] = n.answer.Correct
}

// Answer returns the answer sub-state of the current question.
func (n *Navigator) Answer() Answer {
	return n.answer
}

// Question returns the current quiz question, if on one.
func (n *Navigator) Question() (course.QuizQuestion, bool) {
	if n.Screen() != ScreenQuiz {
		return course.QuizQuestion{}, false
	}
	return n.content.Quiz[n.cursor.QuizIndex], true
}

// Step returns the current step, if on one.
func (n *Navigator) Step() (course.Step, bool) {
	if n.Screen() != ScreenStep {
		return course.Step{}, false
	}
	return n.content.Content[n.cursor.StepIndex], true
}

// Position returns the 0-based position within the current section and the
// section length. Both are 0 outside steps and quiz.
func (n *Navigator) Position() (pos, total int) {
	switch n.Screen() {
	case ScreenStep:
		return n.cursor.StepIndex, len(n.content.Content)
	case ScreenQuiz:
		return n.cursor.QuizIndex, len(n.content.Quiz)
	default:
		return 0, 0
	}
}

// Progress returns round(100*(pos+1)/total) within the current section,
// 0 at the intro and 100 on completion.
func (n *Navigator) Progress() int {
	switch n.Screen() {
	case ScreenComplete:
		return 100
	case ScreenStep, ScreenQuiz:
		pos, total := n.Position()
		return int(math.Round(100 * float64(pos+1) / float64(total)))
	default:
		return 0
	}
}

// Score returns how many checked questions were answered correctly and how
// many were checked. A question checked, left and checked again counts its
// latest result.
func (n *Navigator) Score() (correct, answered int) {
	for _, ok := range n.results {
		answered++
		if ok {
			correct++
		}
	}
	return correct, answered
}

// CanNext reports whether Next would change the screen.
func (n *Navigator) CanNext() bool {
	switch n.Screen() {
	case ScreenIntro, ScreenStep:
		return true
	case ScreenQuiz:
		return n.answer.State == Checked
	default:
		return false
	}
}

// CanPrevious reports whether Previous would change the screen.
func (n *Navigator) CanPrevious() bool {
	s := n.Screen()
	return s == ScreenStep || s == ScreenQuiz
}

// IsLastQuestion reports whether the cursor is on the final quiz question.
func (n *Navigator) IsLastQuestion() bool {
	return n.Screen() == ScreenQuiz && n.cursor.QuizIndex == len(n.content.Quiz)-1
}

func (n *Navigator) resetAnswer() {
	n.answer = Answer{State: Unanswered, Option: -1}
}
