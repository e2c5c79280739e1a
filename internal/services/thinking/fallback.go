package thinking

import (
	"fmt"

	"github.com/abdos10/think-like-genius/internal/domain"
)

func fallbackThinkingProcess() domain.ThinkingProcess {
	return domain.ThinkingProcess{Steps: []domain.ThinkingStep{{
		Title:   "Error Generating Thinking Process",
		Content: "We encountered an error when trying to generate a thinking process for your problem. Please try again later or with a different problem description.",
	}}}
}

func fallbackEvaluation() domain.Evaluation {
	return domain.Evaluation{
		Score:        0,
		Feedback:     "We couldn't evaluate your thinking process at this time. Please try again later.",
		Strengths:    []string{},
		Weaknesses:   []string{"Error in evaluation process"},
		Improvements: []string{"Please try again with a clearer description"},
	}
}

func fallbackExercise(t domain.ThinkingType) domain.GeneratedExercise {
	return domain.GeneratedExercise{
		Title:        fmt.Sprintf("%s Exercise", t),
		Description:  "This is a practice exercise to improve your thinking skills.",
		Difficulty:   "Intermediate",
		Duration:     20,
		Instructions: "We couldn't generate custom instructions at this time. Please try again later.",
		Evaluation:   "Evaluate your performance based on how well you completed the exercise.",
	}
}

func fallbackReverse() domain.ReverseAnalysis {
	return domain.ReverseAnalysis{
		Process: []domain.ReverseStep{{
			Step:      "Error in analysis",
			Reasoning: "We couldn't analyze this solution at this time. Please try again later.",
		}},
		Principles: []string{"Error occurred during analysis"},
		Insights:   []string{"Please try again with a clearer problem and solution description"},
	}
}

func fallbackVerification() domain.Verification {
	return domain.Verification{
		IsValid:      false,
		Confidence:   0,
		Gaps:         []string{"Error in verification process"},
		Alternatives: []string{"We couldn't verify this thinking process at this time. Please try again later."},
	}
}
