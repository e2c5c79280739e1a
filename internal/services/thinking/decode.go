package thinking

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/abdos10/think-like-genius/internal/domain"
)

var errNoJSONObject = errors.New("no json object in model output")

// stripFences removes a leading ```lang line and the trailing ``` from model
// output. Text without a leading fence is returned trimmed.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	s = s[firstNL+1:]
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractObject returns the first balanced {...} in s. Braces inside JSON
// strings are ignored.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeJSON parses model output into out: fenced or bare JSON first, then
// the first embedded object.
func decodeJSON(content string, out any) error {
	text := stripFences(content)
	if text == "" {
		return errNoJSONObject
	}
	firstErr := json.Unmarshal([]byte(text), out)
	if firstErr == nil {
		return nil
	}
	obj, ok := extractObject(text)
	if !ok {
		return fmt.Errorf("%w: %v", errNoJSONObject, firstErr)
	}
	if err := json.Unmarshal([]byte(obj), out); err != nil {
		return fmt.Errorf("decode embedded object: %w", err)
	}
	return nil
}

// flexInt accepts 20, 20.4, "20" and "20 minutes".
type flexInt int

var leadingNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

func (f *flexInt) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(raw); err == nil {
		raw = unq
	}
	m := leadingNumber.FindString(raw)
	if m == "" {
		return fmt.Errorf("not a number: %s", string(b))
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return err
	}
	*f = flexInt(int(v + 0.5))
	return nil
}

// flexFloat accepts numbers and numeric strings. NaN and infinities are
// rejected.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSuffix(strings.TrimSpace(unq), "%")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("not a finite number: %s", string(b))
	}
	*f = flexFloat(v)
	return nil
}

// flexText accepts a string or a list of strings (joined by newlines).
type flexText string

func (f *flexText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexText(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*f = flexText(strings.Join(list, "\n"))
	return nil
}

// flexBool accepts true/false and their string forms.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	raw := strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`))
	switch raw {
	case "true", "yes", "valid":
		*f = true
	case "false", "no", "invalid", "null", "":
		*f = false
	default:
		return fmt.Errorf("not a bool: %s", string(b))
	}
	return nil
}

// ---------------- Step extraction ----------------

var (
	headingLine  = regexp.MustCompile(`^\s{0,3}#{1,6}\s+(.+?)\s*#*\s*$`)
	stepLine     = regexp.MustCompile(`(?i)^\s*(?:\*\*)?step\s+(\d+)(?:\*\*)?\s*[:.)\-]?\s*(.*)$`)
	numberedLine = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.+)$`)
	blankLine    = regexp.MustCompile(`\n\s*\n`)
)

// extractSteps recovers thinking steps from prose. Numbered lines, "Step N"
// lines and markdown headings start a step; the lines that follow become its
// content. Text without such markers is split into paragraphs.
func extractSteps(text string) []domain.ThinkingStep {
	text = strings.TrimSpace(stripFences(text))
	if text == "" || strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return nil
	}

	var steps []domain.ThinkingStep
	var body []string
	flush := func() {
		if len(steps) == 0 {
			return
		}
		last := &steps[len(steps)-1]
		content := strings.TrimSpace(strings.Join(body, "\n"))
		switch {
		case last.Content == "":
			last.Content = content
		case content != "":
			last.Content += "\n" + content
		}
		body = body[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		title, inline, ok := matchStepStart(line, len(steps)+1)
		if !ok {
			if len(steps) > 0 {
				body = append(body, strings.TrimSpace(line))
			}
			continue
		}
		flush()
		steps = append(steps, domain.ThinkingStep{Title: title, Content: inline})
	}
	flush()

	if len(steps) > 0 {
		return steps
	}
	return paragraphSteps(text)
}

func matchStepStart(line string, n int) (title, inline string, ok bool) {
	var raw string
	switch {
	case headingLine.MatchString(line):
		raw = headingLine.FindStringSubmatch(line)[1]
	case stepLine.MatchString(line):
		raw = stepLine.FindStringSubmatch(line)[2]
		if strings.TrimSpace(cleanMarkup(raw)) == "" {
			return fmt.Sprintf("Step %d", n), "", true
		}
	case numberedLine.MatchString(line):
		raw = numberedLine.FindStringSubmatch(line)[2]
	default:
		return "", "", false
	}
	raw = cleanMarkup(raw)
	if i := strings.Index(raw, ": "); i > 0 {
		return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+2:]), true
	}
	return strings.TrimSuffix(strings.TrimSpace(raw), ":"), "", true
}

func cleanMarkup(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}

func paragraphSteps(text string) []domain.ThinkingStep {
	var steps []domain.ThinkingStep
	for _, para := range blankLine.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		steps = append(steps, domain.ThinkingStep{
			Title:   fmt.Sprintf("Step %d", len(steps)+1),
			Content: para,
		})
	}
	return steps
}
