package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DecodeModelJSON parses a JSON object out of language-model output. Models
// frequently wrap their reply in markdown code fences or surround it with
// prose, so plain json.Unmarshal is only the first attempt.
func DecodeModelJSON(input string, target interface{}) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return fmt.Errorf("empty model output")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := stripCodeFences(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := firstJSONValue(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no parseable JSON in model output: %s", truncateForError(input))
}

var (
	fencedJSON = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedAny  = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
)

// stripCodeFences returns the body of a ```json ... ``` (or bare ```) block.
func stripCodeFences(input string) string {
	if m := fencedJSON.FindStringSubmatch(input); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := fencedAny.FindStringSubmatch(input); len(m) > 1 {
		body := strings.TrimSpace(m[1])
		if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
			return body
		}
	}
	return ""
}

// firstJSONValue finds the first balanced JSON object or array embedded in
// surrounding text.
func firstJSONValue(input string) string {
	if start := strings.IndexAny(input, "{["); start >= 0 {
		open := rune(input[start])
		close := '}'
		if open == '[' {
			close = ']'
		}
		return balancedSlice(input[start:], open, close)
	}
	return ""
}

// balancedSlice extracts a brace-balanced prefix, ignoring braces inside
// string literals.
func balancedSlice(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return input[:i+1]
			}
		}
	}
	return ""
}

func truncateForError(s string) string {
	if len(s) <= 120 {
		return s
	}
	return s[:120] + "..."
}
