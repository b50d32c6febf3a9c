package types

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reBlockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLineComment   = regexp.MustCompile(`(?m)^\s*//.*$`)
	reInlineComment = regexp.MustCompile(`(?m)\s//.*$`)
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// SanitizeModelJSON removes code fences, comments, and trailing commas from
// a model answer and keeps the outermost object
func SanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	// Strip triple-backtick fences if present
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")

	raw = reBlockComment.ReplaceAllString(raw, "")
	raw = reLineComment.ReplaceAllString(raw, "")
	raw = reInlineComment.ReplaceAllString(raw, "")
	raw = reTrailingComma.ReplaceAllString(raw, "$1")

	// Keep only the outermost {...}
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

// ParseExpressionReport parses a model answer. Answers that are not JSON,
// or JSON that does not match the report shape, yield an empty report so
// callers treat them as "no face found".
func ParseExpressionReport(raw string) *ExpressionReport {
	raw = SanitizeModelJSON(raw)
	if !strings.HasPrefix(raw, "{") {
		return &ExpressionReport{}
	}

	var report ExpressionReport
	if err := json.Unmarshal([]byte(raw), &report); err == nil && len(report.Faces) > 0 {
		return &report
	}

	// Some models answer with a single face object
	var face FaceReport
	if err := json.Unmarshal([]byte(raw), &face); err == nil && len(face.Expressions) > 0 {
		return &ExpressionReport{Faces: []FaceReport{face}}
	}
	return &ExpressionReport{}
}
