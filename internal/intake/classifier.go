package intake

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	stageLanguage = "detect_language"
	stageTrade    = "extract_trade"

	maxTradeWords = 4
)

// Classifier detects the language and trade of a worker's opening message.
type Classifier struct {
	resolver *Resolver
}

func NewClassifier(opts Options) *Classifier {
	return &Classifier{resolver: opts.resolver("classifier")}
}

// DetectLanguage always returns a supported language. A model reply naming something
// outside the supported set maps to English; a failed call uses keyword detection.
func (c *Classifier) DetectLanguage(ctx context.Context, text string) Language {
	lang, origin := Resolve(ctx, c.resolver, stageLanguage,
		func(ctx context.Context) (Language, error) {
			reply, err := c.resolver.Ask(ctx, languagePrompt(text))
			if err != nil {
				return "", err
			}
			word := cleanLabel(firstLine(reply))
			if word == "" {
				return "", errEmptyReply
			}
			return ParseLanguage(word), nil
		},
		func() Language { return LanguageFromKeywords(text) },
	)
	c.resolver.logger.Debug("language detected", zap.String("language", string(lang)), zap.String("origin", string(origin)))
	return lang
}

// ExtractTrade returns a short lowercase trade label, never empty.
func (c *Classifier) ExtractTrade(ctx context.Context, text string) string {
	trade, origin := Resolve(ctx, c.resolver, stageTrade,
		func(ctx context.Context) (string, error) {
			reply, err := c.resolver.Ask(ctx, tradePrompt(text))
			if err != nil {
				return "", err
			}
			trade := cleanLabel(firstLine(reply))
			switch trade {
			case "", "unknown", "none", "n/a", "na", "null":
				return "", fmt.Errorf("%w: no trade in %q", errMalformedReply, reply)
			}
			if len(strings.Fields(trade)) > maxTradeWords {
				return "", fmt.Errorf("%w: trade too long: %q", errMalformedReply, trade)
			}
			return trade, nil
		},
		func() string { return TradeFromKeywords(text) },
	)
	c.resolver.logger.Debug("trade extracted", zap.String("trade", trade), zap.String("origin", string(origin)))
	return trade
}

func languagePrompt(text string) string {
	return fmt.Sprintf(`Detect the language of the following text written by a worker in India.
Reply with exactly one word from this list: english, hindi, marathi, kannada, tamil, telugu, bengali.
Romanized text (for example Hindi written in Latin letters) counts as that language.

Text: %s`, text)
}

func tradePrompt(text string) string {
	return fmt.Sprintf(`Extract the worker's trade or occupation from the text below.
Reply with only the trade in English, lowercase, one to three words (for example: plumber, electrician, mason, house painter).
If no trade is mentioned reply with: unknown

Text: %s`, text)
}

func firstLine(s string) string {
	s = StripCodeFence(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return s
}

// cleanLabel lowercases a one-line model answer and drops quotes and punctuation.
func cleanLabel(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '/':
			b.WriteRune(' ')
		}
	}
	return collapse(b.String())
}

type scriptRule struct {
	language Language
	table    *unicode.RangeTable
}

var scriptRules = []scriptRule{
	{Kannada, unicode.Kannada},
	{Tamil, unicode.Tamil},
	{Telugu, unicode.Telugu},
	{Bengali, unicode.Bengali},
	{Hindi, unicode.Devanagari},
}

// marathiMarkers separate Marathi from Hindi, which share the Devanagari script.
var marathiMarkers = []string{"आहे", "माझे", "माझं", "माझा", "नाव", "करतो"}

type keywordRule struct {
	language Language
	words    []string
}

// romanizedKeywords are matched as whole words against Latin-script text.
var romanizedKeywords = []keywordRule{
	{Hindi, []string{"mera", "meri", "naam", "hai", "hoon", "hun", "kaam", "saal", "mujhe", "karta", "chahiye"}},
	{Marathi, []string{"maza", "majha", "mazha", "aahe", "nav", "karto", "pahije", "varsha"}},
	{Kannada, []string{"nanna", "hesaru", "naanu", "kelasa", "maadtini", "varsha"}},
	{Tamil, []string{"en", "peyar", "naan", "velai", "irukku", "seiven"}},
	{Telugu, []string{"naa", "peru", "nenu", "pani", "undi", "chestanu"}},
	{Bengali, []string{"amar", "ami", "kaj", "kori", "achhe", "bochor"}},
}

// LanguageFromKeywords guesses the language from script and common romanized words.
func LanguageFromKeywords(text string) Language {
	counts := make(map[Language]int, len(scriptRules))
	for _, r := range text {
		for _, rule := range scriptRules {
			if unicode.Is(rule.table, r) {
				counts[rule.language]++
				break
			}
		}
	}
	best, bestCount := English, 0
	for _, rule := range scriptRules {
		if counts[rule.language] > bestCount {
			best, bestCount = rule.language, counts[rule.language]
		}
	}
	if bestCount > 0 {
		if best == Hindi {
			for _, marker := range marathiMarkers {
				if strings.Contains(text, marker) {
					return Marathi
				}
			}
		}
		return best
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}
	for _, rule := range romanizedKeywords {
		hits := 0
		for _, w := range rule.words {
			if seen[w] {
				hits++
			}
		}
		// a single ambiguous word is not enough
		if hits > bestCount && hits >= 2 {
			best, bestCount = rule.language, hits
		}
	}
	return best
}

type tradeRule struct {
	trade    string
	keywords []string
}

// tradeKeywords is checked in order; the first trade with a matching keyword wins.
var tradeKeywords = []tradeRule{
	{"plumber", []string{"plumber", "plumbing", "pipe fitter", "प्लंबर", "नलसाज", "ಪ್ಲಂಬರ್", "பிளம்பர்", "ప్లంబర్", "প্লাম্বার"}},
	{"electrician", []string{"electrician", "electrical", "wireman", "wiring", "इलेक्ट्रीशियन", "बिजली", "ಎಲೆಕ್ಟ್ರಿಷಿಯನ್", "எலக்ட்ரீஷியன்", "ఎలక్ట్రీషియన్", "ইলেকট্রিশিয়ান"}},
	{"mason", []string{"mason", "masonry", "bricklayer", "राजमिस्त्री", "ಮೇಸ್ತ್ರಿ", "கொத்தனார்", "మేస్త్రి", "রাজমিস্ত্রি"}},
	{"carpenter", []string{"carpenter", "carpentry", "बढ़ई", "सुतार", "ಬಡಗಿ", "தச்சர்", "వడ్రంగి", "ছুতার"}},
	{"painter", []string{"painter", "painting", "पेंटर", "ಪೇಂಟರ್", "பெயிண்டர்", "పెయింటర్", "রংমিস্ত্রি"}},
	{"welder", []string{"welder", "welding", "वेल्डर", "ವೆಲ್ಡರ್", "வெல்டர்", "వెల్డర్", "ওয়েল্ডার"}},
	{"tile setter", []string{"tile setter", "tiling", "tiles", "टाइल"}},
	{"mechanic", []string{"mechanic", "मैकेनिक", "ಮೆಕ್ಯಾನಿಕ್", "மெக்கானிக்", "మెకానిక్", "মেকানিক"}},
	{"driver", []string{"driver", "ड्राइवर", "ಡ್ರೈವರ್", "டிரைவர்", "డ్రైవర్", "ড্রাইভার"}},
	{"helper", []string{"helper", "labourer", "laborer", "मजदूर", "हेल्पर"}},
}

// matchesKeyword matches Latin keywords as whole words ("driver" is not in
// "screwdriver"). Indic keywords match as substrings since they take attached suffixes.
func matchesKeyword(text, kw string) bool {
	if isASCII(kw) {
		return containsWord(text, kw)
	}
	return strings.Contains(text, kw)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// TradeFromKeywords returns the first known trade mentioned in text, or DefaultTrade.
func TradeFromKeywords(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range tradeKeywords {
		for _, kw := range rule.keywords {
			if matchesKeyword(lower, kw) {
				return rule.trade
			}
		}
	}
	return DefaultTrade
}
