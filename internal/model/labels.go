package model

import (
	"strings"
	"unicode"
)

// TitleFromKey turns a property key back into a display title. Keys produced
// by DeriveKey separate words with '_' and nest with '.', so both act as word
// breaks ("address.city" becomes "Address City"). Legacy ids may use '-',
// spaces or camelCase, which are split as well. Every word is capitalized and
// digit runs become their own word ("line2" becomes "Line 2").
func TitleFromKey(key string) string {
	words := keyWords(key)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

func keyWords(key string) []string {
	var (
		words   []string
		current []rune
		prev    rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			prev = 0
			continue
		}
		if len(current) > 0 && wordBreak(prev, r) {
			flush()
		}
		current = append(current, r)
		prev = r
	}
	flush()
	return words
}

func wordBreak(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
