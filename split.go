package main

import "strings"

// splitAbout splits s about occurrences of the (possibly multi-character)
// separator sep, performing at most maxSplits splits; the final piece keeps
// the remainder. maxSplits < 0 means unlimited. With noEmpty set, empty
// pieces are dropped.
func splitAbout(s, sep string, maxSplits int, noEmpty bool) []string {
	var out []string
	splits := 0
	for sep != "" && (maxSplits < 0 || splits < maxSplits) {
		i := strings.Index(s, sep)
		if i < 0 {
			break
		}
		piece := s[:i]
		s = s[i+len(sep):]
		if !noEmpty || piece != "" {
			out = append(out, piece)
		}
		splits++
	}
	if !noEmpty || s != "" {
		out = append(out, s)
	}
	return out
}

// splitTok tokenizes s treating every rune of seps as an independent
// separator, the way IFS splitting historically worked. Runs of separators
// are collapsed and leading separators are skipped. With maxTokens > 0 the
// final token keeps the whole remainder, trailing separators included.
func splitTok(s, seps string, maxTokens int) []string {
	var out []string
	rs := []rune(s)
	pos, end := 0, len(rs)

	isSep := func(r rune) bool { return strings.ContainsRune(seps, r) }

	for pos < end && (maxTokens <= 0 || len(out)+1 < maxTokens) {
		for pos < end && isSep(rs[pos]) {
			pos++
		}
		if pos == end {
			break
		}
		tokEnd := pos
		for tokEnd < end && !isSep(rs[tokEnd]) {
			tokEnd++
		}
		out = append(out, string(rs[pos:tokEnd]))
		pos = tokEnd + 1
	}

	if pos < end {
		for pos < end && isSep(rs[pos]) {
			pos++
		}
		if pos < end {
			out = append(out, string(rs[pos:]))
		}
	}
	return out
}

// splitChars splits text into per-character fields. Outside array mode the
// last of varsLeft fields absorbs the remaining tail as one piece.
func splitChars(text string, array bool, varsLeft int) []string {
	runes := []rune(text)
	var chars []string
	for i := range runes {
		if array || i+1 < varsLeft {
			chars = append(chars, string(runes[i]))
		} else {
			chars = append(chars, string(runes[i:]))
			break
		}
	}
	return chars
}
