package intake

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonDigits   = regexp.MustCompile(`\D`)
	firstNumber = regexp.MustCompile(`\d+`)
	spaces      = regexp.MustCompile(`\s+`)
)

// phoneDigits is the length of a national mobile number.
const phoneDigits = 10

// NormalizePhone keeps the digits of s and returns the last ten of them.
func NormalizePhone(s string) string {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) > phoneDigits {
		digits = digits[len(digits)-phoneDigits:]
	}
	return digits
}

// FirstNumber returns the first run of ASCII digits in s.
func FirstNumber(s string) (int, bool) {
	match := firstNumber.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// namePrefixes are longest-first so "my name is" wins over "name is".
var namePrefixes = []string{
	"my name is",
	"my name's",
	"name is",
	"this is",
	"i am",
	"i'm",
	"मेरा नाम है",
	"मेरा नाम",
	"नाम है",
	"मेरा",
}

// CleanName strips conversational lead-ins such as "my name is" from a spoken answer.
func CleanName(answer string) string {
	name := strings.TrimSpace(answer)
	lower := strings.ToLower(name)
	for _, prefix := range namePrefixes {
		if hasWordPrefix(lower, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}
	name = strings.TrimSpace(strings.TrimSuffix(name, "है"))
	name = strings.Trim(name, " .,!")
	return spaces.ReplaceAllString(name, " ")
}

// hasWordPrefix is strings.HasPrefix that also requires prefix to end on a word
// boundary, so "मेरा" does not match the name "मेराज".
func hasWordPrefix(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[len(prefix):])
	return next == utf8.RuneError || !isWordRune(next)
}

// containsWord reports whether word occurs in s with no letters or digits directly
// around it. A trailing plural "s" is allowed.
func containsWord(s, word string) bool {
	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		rest := strings.TrimPrefix(s[end:], "s")
		after, _ := utf8.DecodeRuneInString(rest)
		if (start == 0 || !isWordRune(before)) && (rest == "" || !isWordRune(after)) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

// collapse lowercases s and squeezes whitespace.
func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(strings.ToLower(s), " "))
}
