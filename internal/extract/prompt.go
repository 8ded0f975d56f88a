package extract

import "fmt"

// extractionTemperature pins every model call at the provider minimum so
// repeated runs over identical inputs stay as close to deterministic as
// the providers allow.
const extractionTemperature = 0.0

const numericSystemPrompt = "You are a precise financial data extraction assistant. Return only the requested JSON object with numeric values."

const qualitativeSystemPrompt = "You are a careful analyst of SEC filings. Return only the requested JSON object."

const classifierSystemPrompt = "You classify financial data requests. Answer with exactly one word."

// BuildClassifierPrompt asks for a one-word classification of the feature,
// with contrastive examples of each category.
func BuildClassifierPrompt(featureName string) string {
	return fmt.Sprintf(`Classify the following requested feature as "numeric" or "qualitative".

A numeric feature is a quantity reported in a filing, such as "book value", "total revenue", "number of employees", or "long-term debt".
A qualitative feature is a theme or exposure judged from the filing's text, such as "AI exposure", "supply chain risk", "climate commitment", or "regulatory pressure".

Feature: "%s"

Answer with one word, numeric or qualitative:`, featureName)
}

// BuildNumeric10QPrompt requests the quarterly value of a numeric feature
// from a 10-Q excerpt.
func BuildNumeric10QPrompt(chunk, featureName string) string {
	return fmt.Sprintf(`Extract the "%s" from this excerpt of an SEC 10-Q filing.

Return ONLY a JSON object of the form {"quarterly": <number or null>} with no explanation and no additional text.
If the value is reported in thousands, millions, or billions, convert it to the absolute numeric value.
If the value cannot be located in this excerpt, return null for the field. Do not guess values that are not in the excerpt.

Filing excerpt:
%s`, featureName, chunk)
}

// BuildNumeric10KPrompt requests the annual value and, when separately
// disclosed, the Q4-only value of a numeric feature from a 10-K excerpt.
func BuildNumeric10KPrompt(chunk, featureName string) string {
	return fmt.Sprintf(`Extract the "%s" from this excerpt of an SEC 10-K filing.

Return ONLY a JSON object of the form {"annual": <number or null>, "quarterly": <number or null>} with no explanation and no additional text.
"annual" is the value for the full fiscal year. "quarterly" is the fourth-quarter-only value if it is separately disclosed in this excerpt; otherwise return null for it.
If a value is reported in thousands, millions, or billions, convert it to the absolute numeric value.
If a value cannot be located in this excerpt, return null for that field. Do not guess values that are not in the excerpt.

Filing excerpt:
%s`, featureName, chunk)
}

// BuildQualitativePrompt requests a 1-10 score with short supporting
// evidence for a qualitative feature.
func BuildQualitativePrompt(chunk, featureName string) string {
	return fmt.Sprintf(`Assess the company's "%s" based on this excerpt of an SEC filing.

Return ONLY a JSON object of the form {"score": <1-10>, "evidence": "<specific facts from the excerpt>"} with no explanation and no additional text.

Scoring rubric:
1-2: absent or negligible
3-4: minor mentions
5-6: moderate presence
7-8: significant focus
9-10: core to the business

Base the score and evidence only on this excerpt. If the excerpt contains nothing relevant, return {"score": null, "evidence": ""}.

Filing excerpt:
%s`, featureName, chunk)
}
