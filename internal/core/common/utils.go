package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes a leading ```json or ``` marker and a trailing ```
// marker from an LLM response, along with surrounding whitespace.
func StripFences(response string) string {
	s := strings.TrimSpace(response)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractObject returns the substring spanning the first '{' through the last
// '}' of s. The greedy span keeps nested objects intact when the model wraps
// its output in prose.
func ExtractObject(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || start >= end {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// ParseJSON cleans and unmarshals an LLM response into a type T.
// It handles common LLM quirks like surrounding markdown or extra text.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, err := ExtractObject(StripFences(response))
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}
