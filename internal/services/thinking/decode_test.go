package thinking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"```{\"a\":1}```":         `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, stripFences(in), "input %q", in)
	}
}

func TestExtractObjectIgnoresBracesInStrings(t *testing.T) {
	obj, ok := extractObject(`Sure! Here you go: {"feedback":"use {curly} braces \"}\"","score":3} trailing`)
	require.True(t, ok)
	assert.Equal(t, `{"feedback":"use {curly} braces \"}\"","score":3}`, obj)

	_, ok = extractObject(`{"unterminated": true`)
	assert.False(t, ok)
}

func TestDecodeJSONEmbeddedObject(t *testing.T) {
	var out struct {
		Score int `json:"score"`
	}
	require.NoError(t, decodeJSON("Here is the evaluation:\n{\"score\": 77}\nThanks", &out))
	assert.Equal(t, 77, out.Score)

	assert.Error(t, decodeJSON("no json here", &out))
	assert.Error(t, decodeJSON("   ", &out))
}

func TestFlexTypes(t *testing.T) {
	var out struct {
		Duration   flexInt   `json:"duration"`
		Confidence flexFloat `json:"confidence"`
		Steps      flexText  `json:"steps"`
		Valid      flexBool  `json:"valid"`
	}
	require.NoError(t, decodeJSON(`{"duration":"25 minutes","confidence":"0.8","steps":["a","b"],"valid":"true"}`, &out))
	assert.Equal(t, flexInt(25), out.Duration)
	assert.InDelta(t, 0.8, float64(out.Confidence), 1e-9)
	assert.Equal(t, flexText("a\nb"), out.Steps)
	assert.True(t, bool(out.Valid))
}

func TestFlexFloatRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{`"NaN"`, `"Inf"`, `"-Infinity"`, `"+inf"`} {
		var f flexFloat
		assert.Error(t, json.Unmarshal([]byte(raw), &f), raw)
	}
	var f flexFloat
	require.NoError(t, json.Unmarshal([]byte(`"85%"`), &f))
	assert.InDelta(t, 85, float64(f), 1e-9)
}

func TestExtractStepsNumbered(t *testing.T) {
	text := "Here is how to think about it:\n\n1. Understand the problem: restate it in your own words.\nIdentify the unknowns.\n2) Break it down\nSplit into sub-problems.\n3. Verify"
	steps := extractSteps(text)
	require.Len(t, steps, 3)
	assert.Equal(t, "Understand the problem", steps[0].Title)
	assert.Equal(t, "restate it in your own words.\nIdentify the unknowns.", steps[0].Content)
	assert.Equal(t, "Break it down", steps[1].Title)
	assert.Equal(t, "Split into sub-problems.", steps[1].Content)
	assert.Equal(t, "Verify", steps[2].Title)
	assert.Equal(t, "", steps[2].Content)
}

func TestExtractStepsStepLabelsAndHeadings(t *testing.T) {
	steps := extractSteps("**Step 1:** Gather facts\nCollect data.\nStep 2:\nWeigh options")
	require.Len(t, steps, 2)
	assert.Equal(t, "Gather facts", steps[0].Title)
	assert.Equal(t, "Collect data.", steps[0].Content)
	assert.Equal(t, "Step 2", steps[1].Title)
	assert.Equal(t, "Weigh options", steps[1].Content)

	steps = extractSteps("## Frame the question\nWhat are we solving?\n## Generate options\nList at least three.")
	require.Len(t, steps, 2)
	assert.Equal(t, "Frame the question", steps[0].Title)
	assert.Equal(t, "List at least three.", steps[1].Content)
}

func TestExtractStepsParagraphs(t *testing.T) {
	steps := extractSteps("First consider the constraints.\n\nThen explore alternatives.")
	require.Len(t, steps, 2)
	assert.Equal(t, "Step 1", steps[0].Title)
	assert.Equal(t, "Then explore alternatives.", steps[1].Content)
}

func TestExtractStepsRejectsBrokenJSON(t *testing.T) {
	assert.Nil(t, extractSteps(`{"steps": [`))
	assert.Nil(t, extractSteps(""))
}
