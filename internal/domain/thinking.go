package domain

// Evaluation is the thinking evaluator's verdict.
type Evaluation struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Improvements []string `json:"improvements"`
}

type GeneratedExercise struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Difficulty   string `json:"difficulty"`
	Duration     int    `json:"duration"`
	Instructions string `json:"instructions"`
	Evaluation   string `json:"evaluation"`
}

type ReverseStep struct {
	Step      string `json:"step"`
	Reasoning string `json:"reasoning"`
}

// ReverseAnalysis reconstructs the reasoning behind a known solution.
type ReverseAnalysis struct {
	Process    []ReverseStep `json:"process"`
	Principles []string      `json:"principles"`
	Insights   []string      `json:"insights"`
}

type Verification struct {
	IsValid      bool     `json:"isValid"`
	Confidence   float64  `json:"confidence"`
	Gaps         []string `json:"gaps"`
	Alternatives []string `json:"alternatives"`
}

type EvaluateInput struct {
	ProblemType     string `json:"problemType"`
	Description     string `json:"description"`
	ThinkingProcess string `json:"thinkingProcess"`
	ExpectedOutcome string `json:"expectedOutcome"`
}

type ReverseInput struct {
	ProblemType string `json:"problemType"`
	Problem     string `json:"problem"`
	Solution    string `json:"solution"`
}

type VerifyInput struct {
	Problem         string `json:"problem"`
	ThinkingProcess string `json:"thinkingProcess"`
	Conclusion      string `json:"conclusion"`
}
