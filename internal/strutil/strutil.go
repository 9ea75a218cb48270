// Package strutil provides the token replacement helpers shared by the
// scaffold path interpolation and the file templating helpers.
package strutil

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/stencilworks/stencil/internal/errors"
)

// Replace substitutes every literal occurrence of token in input with value.
// Tokens are matched verbatim; pattern metacharacters carry no special
// meaning. A non-string input yields an empty string, a non-string token
// returns the input unchanged.
func Replace(input, token interface{}, value string) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	tok, ok := token.(string)
	if !ok {
		return s
	}
	return strings.ReplaceAll(s, tok, value)
}

// EscapeRegex escapes regular expression metacharacters in s so the result
// matches s verbatim when used as a pattern.
func EscapeRegex(s string) string {
	return regexp.QuoteMeta(s)
}

// Capitalize uppercases the first character of a string, leaving the
// remainder unchanged. Non-string and empty inputs yield an empty string.
func Capitalize(v interface{}) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ReplaceInFileLines rewrites a file line by line, substituting every
// occurrence of token with value. Matches at the start of a line count the
// same as matches anywhere else.
func ReplaceInFileLines(path, token, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeReadFailed, "reading file", err).WithPath(path)
	}

	var out strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		if !first {
			out.WriteByte('\n')
		}
		first = false
		line := scanner.Text()
		if strings.Contains(line, token) {
			line = strings.ReplaceAll(line, token, value)
		}
		out.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIOError(errors.ErrCodeReadFailed, "scanning file", err).WithPath(path)
	}
	if strings.HasSuffix(string(data), "\n") {
		out.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(out.String()), 0644); err != nil {
		return errors.NewIOError(errors.ErrCodeWriteFailed, "writing file", err).WithPath(path)
	}
	return nil
}
