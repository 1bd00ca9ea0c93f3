package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errEmptyInput = errors.New("empty input")

// parseInput splits a console line into a method name and optional JSON
// object arguments. A method written as "" is sent as the empty name.
func parseInput(line string) (string, map[string]any, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, errEmptyInput
	}

	method, rest, _ := strings.Cut(line, " ")
	if method == `""` {
		method = ""
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return method, nil, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(rest), &args); err != nil {
		return "", nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	return method, args, nil
}
