package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"anyfactor/internal/domain"
)

// failedEvidence marks a qualitative response that could not be parsed.
// There is no regex fallback for qualitative output.
const failedEvidence = "extraction failed"

var (
	codeFencePattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	numberPattern    = regexp.MustCompile(`[-+]?(?:\d+(?:\.\d+)?|\.\d+)(?:[eE][-+]?\d+)?`)
)

// StripCodeFence removes a Markdown code-fence wrapper (with optional
// language tag) from a model response.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := codeFencePattern.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}

// ParseNumericResponse turns a model response into a NumericResult for the
// given form type. Structured JSON is the primary path; malformed output
// falls back to scanning the text for numeric substrings.
func ParseNumericResponse(raw string, form domain.FormType) *domain.NumericResult {
	cleaned := StripCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return fallbackNumbers(raw, form)
	}

	result := &domain.NumericResult{}
	if form == domain.FormType10K {
		result.Annual = coerceFloat(fields["annual"])
	}
	result.Quarterly = coerceFloat(fields["quarterly"])
	return result
}

// ParseScoreResponse turns a model response into a ScoreResult, truncating
// evidence to evidenceMax characters. A structured-parse failure yields a
// nil score with a failure marker.
func ParseScoreResponse(raw string, evidenceMax int) *domain.ScoreResult {
	cleaned := StripCodeFence(raw)

	var fields struct {
		Score    json.RawMessage `json:"score"`
		Evidence string          `json:"evidence"`
	}
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return &domain.ScoreResult{Evidence: failedEvidence}
	}

	return &domain.ScoreResult{
		Score:    coerceInt(fields.Score),
		Evidence: truncate(fields.Evidence, evidenceMax),
	}
}

// coerceFloat converts a raw JSON field to a float. JSON null, the literal
// string "null" in any case, absence, and non-numeric strings are all
// treated as missing. Thousands separators and currency symbols are
// stripped before conversion.
func coerceFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil
	}
	return parseNumberString(str)
}

func coerceInt(raw json.RawMessage) *int {
	f := coerceFloat(raw)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func parseNumberString(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	num, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &num
}

// fallbackNumbers scans raw text for signed decimal or exponential numbers
// after stripping thousands separators. For a 10-Q the first match is the
// quarterly value; for a 10-K the first two matches are annual and
// quarterly respectively.
func fallbackNumbers(raw string, form domain.FormType) *domain.NumericResult {
	stripped := strings.ReplaceAll(raw, ",", "")
	matches := numberPattern.FindAllString(stripped, 2)

	result := &domain.NumericResult{}
	var values []*float64
	for _, m := range matches {
		if num, err := strconv.ParseFloat(m, 64); err == nil {
			values = append(values, &num)
		}
	}

	if form == domain.FormType10K {
		if len(values) > 0 {
			result.Annual = values[0]
		}
		if len(values) > 1 {
			result.Quarterly = values[1]
		}
		return result
	}
	if len(values) > 0 {
		result.Quarterly = values[0]
	}
	return result
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
