package course

import "strings"

const promptTemplate = `Generate course content based on this request: I just joined this establishment as their new employee and I want to learn how to do my job. 
Today I will be learning about the following task: {{request}}.
Return the response as a valid JSON. The content of each step should contain the instruction for the person to learn how to fullfill the step.
I want only practical steps and not theoretical ones, give me at least 5 steps and max 10 steps.
If a step requires handling ingredients or amounts, I want precise quantities and measurements. Avoid numbered lists for the content of the steps`

const quizInstruction = `
After the steps, add a quiz of exactly 3 multiple-choice questions that check what was taught. Each question must have exactly 4 options, the 0-based index of the correct option as correctAnswer, and a short explanation of why that option is correct.`

// BuildPrompt renders the generation prompt for userRequest. The request is
// embedded verbatim. It is pure: equal inputs give equal prompts.
func BuildPrompt(userRequest string, withQuiz bool) string {
	p := strings.Replace(promptTemplate, "{{request}}", userRequest, 1)
	if withQuiz {
		p += quizInstruction
	}
	return p
}
