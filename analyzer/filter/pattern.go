package filter

import (
	"fmt"
	"github.com/dlclark/regexp2"
	"strings"
	"time"
	"unicode"
)

const matchTimeout = 100 * time.Millisecond

var closingDelimiters = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
}

// compilePattern compiles PHP style delimited pattern (e.g. %Foo%i) or a bare expression
func compilePattern(pattern string) (*regexp2.Regexp, error) {
	expr, options, err := splitDelimited(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(expr, options)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

func splitDelimited(pattern string) (string, regexp2.RegexOptions, error) {
	if len(pattern) < 2 {
		return pattern, regexp2.None, nil
	}
	opening := pattern[0]
	if opening == '\\' || opening > unicode.MaxASCII || unicode.IsLetter(rune(opening)) ||
		unicode.IsDigit(rune(opening)) || unicode.IsSpace(rune(opening)) {
		return pattern, regexp2.None, nil
	}
	closing := opening
	if pair, ok := closingDelimiters[opening]; ok {
		closing = pair
	}
	end := strings.LastIndexByte(pattern, closing)
	if end <= 0 {
		return pattern, regexp2.None, nil
	}
	modifiers := pattern[end+1:]
	for _, r := range modifiers {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return pattern, regexp2.None, nil
		}
	}
	options := regexp2.None
	for _, modifier := range modifiers {
		switch modifier {
		case 'i':
			options |= regexp2.IgnoreCase
		case 'm':
			options |= regexp2.Multiline
		case 's':
			options |= regexp2.Singleline
		case 'x':
			options |= regexp2.IgnorePatternWhitespace
		case 'u', 'D':
		default:
			return "", regexp2.None, fmt.Errorf("unsupported pattern modifier %q in %q", modifier, pattern)
		}
	}
	return pattern[1:end], options, nil
}
