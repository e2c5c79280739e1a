package thinking

import (
	"fmt"
	"strings"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/promptstyle"
)

type prompt struct {
	system    string
	user      string
	maxTokens int
}

func thinkingProcessPrompt(problemType, description string) prompt {
	return prompt{
		system: promptstyle.ApplySystem(fmt.Sprintf(`You are a thinking skills coach specialized in helping people improve their problem-solving abilities.
Your task is to break down the thinking process for solving a problem into clear, logical steps.
The problem is of type: %s.
Format your response as a JSON object with an array of steps, each containing a title and detailed content.
Make your explanation educational and focused on improving thinking skills.`, problemType)),
		user:      description,
		maxTokens: 1500,
	}
}

func evaluatePrompt(in domain.EvaluateInput) prompt {
	return prompt{
		system: promptstyle.ApplySystem(fmt.Sprintf(`You are a thinking skills evaluator. You'll be given a problem, a user's thinking process, and their expected outcome.
Evaluate the thinking process and provide a score (0-100), feedback, strengths, weaknesses, and suggestions for improvement.
The problem is of type: %s.
Format your response as a JSON object with the following fields: score, feedback, strengths, weaknesses, improvements.`, in.ProblemType)),
		user: fmt.Sprintf("Problem: %s\n\nUser's thinking process: %s\n\nExpected outcome: %s",
			in.Description, in.ThinkingProcess, in.ExpectedOutcome),
	}
}

func exercisePrompt(t domain.ThinkingType) prompt {
	return prompt{
		system: promptstyle.ApplySystem(fmt.Sprintf(`You are an educational expert in cognitive development. Create an exercise for improving %s thinking skills.
Format your response as a JSON object with these fields: title, description, difficulty (Beginner/Intermediate/Advanced),
duration (in minutes), instructions (detailed steps), and evaluation (how to measure success).
Make the exercise engaging, practical, and educational.`, t)),
		user: fmt.Sprintf("Create a %s thinking exercise that can be completed in under 30 minutes.", t),
	}
}

func reversePrompt(in domain.ReverseInput) prompt {
	solution := strings.TrimSpace(in.Solution)
	if solution == "" {
		solution = "(not provided; infer the most plausible solution first)"
	}
	return prompt{
		system: promptstyle.ApplySystem(fmt.Sprintf(`You are a cognitive analysis expert. Given a problem and its solution, reverse-engineer the thinking process that would lead to that solution.
Break down the process into clear steps, each with reasoning. Also identify key principles and insights from this thinking pattern.
The problem is of type: %s.
Format your response as a JSON object with these fields: process (array of step and reasoning objects), principles, insights.`, in.ProblemType)),
		user: fmt.Sprintf("Problem: %s\n\nSolution: %s", in.Problem, solution),
	}
}

func verifyPrompt(in domain.VerifyInput) prompt {
	return prompt{
		system: promptstyle.ApplySystem(`You are a logical reasoning expert. Evaluate whether the given thinking process logically leads to the claimed conclusion.
Identify any logical gaps or errors in the process, and suggest alternative conclusions that could be reached from the same process.
Format your response as a JSON object with these fields: isValid (boolean), confidence (0-1), gaps (array of strings), alternatives (array of strings).`),
		user: fmt.Sprintf("Problem: %s\n\nThinking process: %s\n\nClaimed conclusion: %s",
			in.Problem, in.ThinkingProcess, in.Conclusion),
	}
}
