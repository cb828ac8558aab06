package correct

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

var (
	spaceBeforePunct = regexp.MustCompile(`[ \t]+([,.;:!?])`)
	missingSpaceSep  = regexp.MustCompile(`([,;:])(\p{L})`)
	missingSpaceEnd  = regexp.MustCompile(`(\p{Ll}[.!?])(\p{Lu})`)
)

// pronounForms maps lowercase first-person forms to their capitalized form.
var pronounForms = map[string]string{
	"i":    "I",
	"i'm":  "I'm",
	"i've": "I've",
	"i'll": "I'll",
	"i'd":  "I'd",
}

// RuleCorrector applies a fixed set of mechanical fixes: whitespace
// normalisation, punctuation spacing, doubled words, the pronoun "I",
// sentence capitalisation and a closing full stop on every paragraph.
type RuleCorrector struct{}

func NewRuleCorrector() *RuleCorrector {
	return &RuleCorrector{}
}

func (r *RuleCorrector) Name() string { return "rules" }

// Correct rewrites text paragraph by paragraph. Blank lines are preserved.
func (r *RuleCorrector) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return strings.Join(lo.Map(lines, func(line string, _ int) string {
		return correctLine(line)
	}), "\n"), nil
}

func correctLine(line string) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}
	words = dropDoubledWords(words)
	words = lo.Map(words, func(w string, _ int) string {
		if fixed, ok := pronounForms[w]; ok {
			return fixed
		}
		return w
	})
	out := strings.Join(words, " ")
	out = spaceBeforePunct.ReplaceAllString(out, "$1")
	out = missingSpaceSep.ReplaceAllString(out, "$1 $2")
	out = missingSpaceEnd.ReplaceAllString(out, "$1 $2")
	out = capitalizeSentences(out)
	return terminate(out)
}

// dropDoubledWords removes a word that repeats the previous one, ignoring
// case. Only purely alphabetic words are considered.
func dropDoubledWords(words []string) []string {
	out := make([]string, 0, len(words))
	for i, w := range words {
		if i > 0 && isAlpha(w) && strings.EqualFold(w, words[i-1]) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func capitalizeSentences(s string) string {
	runes := []rune(s)
	capNext := true
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r):
			if capNext {
				runes[i] = unicode.ToUpper(r)
			}
			capNext = false
		case r == '.' || r == '!' || r == '?':
			capNext = true
		case unicode.IsSpace(r) || r == '"' || r == '\'' || r == '(':
		default:
			capNext = false
		}
	}
	return string(runes)
}

func terminate(s string) string {
	last := []rune(s)[len([]rune(s))-1]
	if unicode.IsLetter(last) || unicode.IsDigit(last) {
		return s + "."
	}
	return s
}
