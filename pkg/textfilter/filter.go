// Package textfilter keeps oracle-generated dialogue presentable and counts
// topic mentions in conversation history.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps words to softer alternatives. Oracle output is shown to
// players verbatim, so NPC lines pass through the filter before storage.
var replacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"hell":         "heck",
	"ass":          "butt",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"asshole":      "jerk",
	"goddamn":      "gosh-dang",
	"bullshit":     "baloney",
	"dumbass":      "dummy",
	"jackass":      "jerk",
	"prick":        "jerk",
	"dickhead":     "jerk",
	"motherfucker": "mother-trucker",
}

// DialogueFilter replaces unwanted words in NPC dialogue while preserving
// the case pattern of the original word.
type DialogueFilter struct {
	patterns map[string]*regexp.Regexp
}

// NewDialogueFilter precompiles a word-boundary pattern per filtered word.
func NewDialogueFilter() *DialogueFilter {
	f := &DialogueFilter{patterns: make(map[string]*regexp.Regexp, len(replacements))}
	for word := range replacements {
		f.patterns[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return f
}

// Filter returns the text with all filtered words replaced.
func (f *DialogueFilter) Filter(text string) string {
	result := text
	for word, re := range f.patterns {
		replacement := replacements[word]
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}
	return result
}

// Contains reports whether the text contains any filtered word.
func (f *DialogueFilter) Contains(text string) bool {
	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// preserveCase applies the case pattern of the original word to the
// replacement.
func preserveCase(original, replacement string) string {
	if original == "" {
		return replacement
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}
	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}
	// Mixed case: mirror the original character by character.
	out := make([]rune, 0, len(replacement))
	origRunes := []rune(original)
	for i, r := range replacement {
		if i < len(origRunes) && unicode.IsUpper(origRunes[i]) {
			out = append(out, unicode.ToUpper(r))
		} else {
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}
