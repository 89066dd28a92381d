package course

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/trainy/internal/llm"
)

// Validation schemas. These carry every constraint a course must meet and
// are the single source of truth for Validate and the Generator.
var (
	SchemaWithQuiz    = buildSchema("course_content_full", true, true)
	SchemaWithoutQuiz = buildSchema("course_content_full_no_quiz", false, true)
)

// Response-format schemas sent to providers. Strict structured-output modes
// reject length keywords, so these describe the shape only. Responses are
// always re-checked against the validation schema.
var (
	responseSchemaWithQuiz    = buildSchema("course_content", true, false)
	responseSchemaWithoutQuiz = buildSchema("course_content_no_quiz", false, false)
)

// Schema returns the validation schema for the variant.
func Schema(withQuiz bool) *llm.Schema {
	if withQuiz {
		return SchemaWithQuiz
	}
	return SchemaWithoutQuiz
}

func responseSchema(withQuiz bool) *llm.Schema {
	if withQuiz {
		return responseSchemaWithQuiz
	}
	return responseSchemaWithoutQuiz
}

func buildSchema(name string, withQuiz, constrained bool) *llm.Schema {
	text := func(desc string) map[string]any {
		s := map[string]any{"type": "string", "description": desc}
		if constrained {
			s["minLength"] = 1
		}
		return s
	}

	stepNumber := map[string]any{"type": "integer", "description": "1-based step number"}
	if constrained {
		stepNumber["minimum"] = 1
	}

	steps := map[string]any{
		"type":        "array",
		"description": "Ordered practical steps",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"step":    stepNumber,
				"title":   text("Short step title"),
				"content": text("Instruction for completing the step, as prose without numbered lists"),
			},
			"required":             []any{"step", "title", "content"},
			"additionalProperties": false,
		},
	}
	if constrained {
		steps["minItems"] = MinSteps
		steps["maxItems"] = MaxSteps
	}

	props := map[string]any{
		"title":       text("Course title"),
		"description": text("One-paragraph summary of what the learner will be able to do"),
		"content":     steps,
	}
	required := []any{"title", "description", "content"}

	if withQuiz {
		options := map[string]any{
			"type":        "array",
			"description": "Exactly 4 answer options",
			"items":       text("Answer option"),
		}
		answer := map[string]any{"type": "integer", "description": "0-based index of the correct option"}
		if constrained {
			options["minItems"] = QuizOptions
			options["maxItems"] = QuizOptions
			answer["minimum"] = 0
			answer["maximum"] = QuizOptions - 1
		}

		quiz := map[string]any{
			"type":        "array",
			"description": "Exactly 3 multiple-choice questions about the course",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question":      text("Question text"),
					"options":       options,
					"correctAnswer": answer,
					"explanation":   text("Why the correct option is right"),
				},
				"required":             []any{"question", "options", "correctAnswer", "explanation"},
				"additionalProperties": false,
			},
		}
		if constrained {
			quiz["minItems"] = QuizQuestions
			quiz["maxItems"] = QuizQuestions
		}
		props["quiz"] = quiz
		required = append(required, "quiz")
	} else if constrained {
		// Tolerated and dropped when the quiz is disabled.
		props["quiz"] = map[string]any{}
	}

	return &llm.Schema{
		Name:        name,
		Description: "A practical training course made of ordered steps",
		Strict:      !constrained,
		Definition: map[string]any{
			"type":                 "object",
			"properties":           props,
			"required":             required,
			"additionalProperties": false,
		},
	}
}

// Validate checks an in-memory course against the validation schema for
// the variant.
func Validate(c *Content, withQuiz bool) error {
	if c == nil {
		return fmt.Errorf("nil course content")
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}
	return llm.ValidateJSON(Schema(withQuiz), raw)
}
