package value

import (
	"fmt"
	"strings"

	"github.com/gqlengine/gql/internal/regex"
	"github.com/gqlengine/gql/types"
)

// TextValue is a UTF-8 string.
type TextValue string

func (v TextValue) Type() types.Type { return types.Text }
func (v TextValue) String() string   { return string(v) }

func (v TextValue) Eq(other Value) bool {
	o, ok := other.(TextValue)
	return ok && v == o
}

func (v TextValue) Compare(other Value) (Ordering, bool) {
	o, ok := other.(TextValue)
	if !ok {
		return Equal, false
	}
	switch {
	case v < o:
		return Less, true
	case v > o:
		return Greater, true
	default:
		return Equal, true
	}
}

// Add implements string concatenation, Text's only arithmetic operator.
func (v TextValue) Add(other Value) (Value, error) {
	o, ok := other.(TextValue)
	if !ok {
		return nil, fmt.Errorf("+ requires Text")
	}
	return v + o, nil
}

// Like implements SQL LIKE: '%' matches any run of characters, '_'
// matches exactly one.
func (v TextValue) Like(pattern TextValue) bool {
	return likeMatch(string(v), string(pattern))
}

func likeMatch(s, pattern string) bool {
	return likeRec([]rune(s), []rune(pattern))
}

func likeRec(s, p []rune) bool {
	if len(p) == 0 {
		return len(s) == 0
	}
	switch p[0] {
	case '%':
		if likeRec(s, p[1:]) {
			return true
		}
		for len(s) > 0 {
			s = s[1:]
			if likeRec(s, p[1:]) {
				return true
			}
		}
		return false
	case '_':
		if len(s) == 0 {
			return false
		}
		return likeRec(s[1:], p[1:])
	default:
		if len(s) == 0 || s[0] != p[0] {
			return false
		}
		return likeRec(s[1:], p[1:])
	}
}

// Glob implements a shell-style GLOB match ('*' any run, '?' one char,
// '[...]' a character class), distinct from LIKE's SQL wildcards.
func (v TextValue) Glob(pattern TextValue) bool {
	return globMatch(string(v), string(pattern))
}

func globMatch(s, pattern string) bool {
	sr, pr := []rune(s), []rune(pattern)
	return globRec(sr, pr)
}

func globRec(s, p []rune) bool {
	if len(p) == 0 {
		return len(s) == 0
	}
	switch p[0] {
	case '*':
		if globRec(s, p[1:]) {
			return true
		}
		for len(s) > 0 {
			s = s[1:]
			if globRec(s, p[1:]) {
				return true
			}
		}
		return false
	case '?':
		if len(s) == 0 {
			return false
		}
		return globRec(s[1:], p[1:])
	case '[':
		end := indexRune(p, ']')
		if end < 0 || len(s) == 0 {
			return false
		}
		class := p[1:end]
		neg := len(class) > 0 && (class[0] == '!' || class[0] == '^')
		if neg {
			class = class[1:]
		}
		matched := strings.ContainsRune(string(class), s[0])
		if matched == neg {
			return false
		}
		return globRec(s[1:], p[end+1:])
	default:
		if len(s) == 0 || s[0] != p[0] {
			return false
		}
		return globRec(s[1:], p[1:])
	}
}

func indexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}

// Regex implements REGEXP via the pluggable regex engine registry.
func (v TextValue) Regex(pattern TextValue) (bool, error) {
	m, d, err := regex.New("", string(pattern))
	if err != nil {
		return false, err
	}
	defer d.Dispose()
	return m.Match(string(v)), nil
}
