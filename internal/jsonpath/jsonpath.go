// Package jsonpath pulls the transcript string out of a service response.
package jsonpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultPath is used when no path is configured.
const DefaultPath = "text"

var (
	ErrInvalidJSON = errors.New("response is not valid JSON")
	ErrMissing     = errors.New("value not found")
	ErrNotString   = errors.New("value is not a string")
)

// ExtractText returns the string at path in body. Extraction is strict: the
// body must be valid JSON and the value must exist and be a JSON string.
// An empty string is a valid result.
func ExtractText(body []byte, path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	if !gjson.ValidBytes(body) {
		return "", ErrInvalidJSON
	}
	gp, err := Compile(path)
	if err != nil {
		return "", err
	}

	res := gjson.GetBytes(body, gp)
	if !res.Exists() {
		return "", fmt.Errorf("%q: %w", path, ErrMissing)
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("%q is %s: %w", path, res.Type, ErrNotString)
	}
	return res.Str, nil
}

// Compile converts a dotted path with bracket indexes, such as
// "results[0].alternatives[0].transcript", into gjson path syntax.
func Compile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	var parts []string
	for _, token := range strings.Split(path, ".") {
		key, idxs, err := ParseKeyAndIndexes(token)
		if err != nil {
			return "", err
		}
		if key != "" {
			parts = append(parts, escape(key))
		}
		for _, idx := range idxs {
			if idx < 0 {
				return "", fmt.Errorf("negative index %d in %s", idx, token)
			}
			parts = append(parts, strconv.Itoa(idx))
		}
	}
	return strings.Join(parts, "."), nil
}

// ParseKeyAndIndexes parses a token like "foo[0][1]" or "[0]" or "bar" into base key and indexes.
func ParseKeyAndIndexes(token string) (string, []int, error) {
	if token == "" {
		return "", nil, fmt.Errorf("empty token")
	}
	idxs := []int{}
	br := strings.Index(token, "[")
	if br == -1 {
		return token, idxs, nil
	}
	key := token[:br]
	rest := token[br:]
	for len(rest) > 0 {
		if !strings.HasPrefix(rest, "[") {
			return "", nil, fmt.Errorf("invalid index syntax in %s", token)
		}
		closePos := strings.Index(rest, "]")
		if closePos == -1 {
			return "", nil, fmt.Errorf("missing closing ] in %s", token)
		}
		numStr := rest[1:closePos]
		if numStr == "" {
			return "", nil, fmt.Errorf("empty index in %s", token)
		}
		n, err := strconv.Atoi(numStr)
		if err != nil {
			return "", nil, fmt.Errorf("invalid index '%s' in %s", numStr, token)
		}
		idxs = append(idxs, n)
		rest = rest[closePos+1:]
	}
	return key, idxs, nil
}

// escape quotes gjson metacharacters in a literal key.
func escape(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '"':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
