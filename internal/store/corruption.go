package store

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// CorruptionReason tags why a raw value was rejected before parsing.
type CorruptionReason string

const (
	ReasonBareLeadingO   CorruptionReason = "bare_leading_o"
	ReasonObjectObject   CorruptionReason = "object_object"
	ReasonLeadingObject  CorruptionReason = "leading_object_word"
	ReasonBracketObject  CorruptionReason = "leading_bracket_object"
	ReasonFunctionSource CorruptionReason = "function_source"
	ReasonUndefined      CorruptionReason = "undefined_literal"
	ReasonNaN            CorruptionReason = "nan_literal"
	ReasonInfinity       CorruptionReason = "infinity_literal"
	ReasonNotJSON        CorruptionReason = "not_json"
	ReasonParseError     CorruptionReason = "parse_error"
)

// The backing store has been seen handing back a stringified object reference
// ("[object Object]" and friends) instead of JSON, without erroring. Those
// strings sometimes survive a parse attempt, so they are pattern-filtered
// before any parse happens.
type corruptionCheck struct {
	Reason CorruptionReason
	Match  func(trimmed string) bool
}

var objectObjectRe = regexp.MustCompile(`(?i)\[object\s+object\]`)
var leadingObjectRe = regexp.MustCompile(`(?i)^object\s+object`)

// Safe continuations after a leading "o": real JSON never starts with a bare
// "o", but key names and values like "object"/"on"/"off"/"or"/"other"/"owner"
// leak in from toString artifacts and must not trip the bare-o guard.
var safeOContinuations = []string{"bject", "n", "ff", "r", "ther", "wner"}

// corruptionChecks is evaluated in order, short-circuiting on first match.
var corruptionChecks = []corruptionCheck{
	{ReasonBareLeadingO, func(s string) bool {
		lower := strings.ToLower(s)
		if !strings.HasPrefix(lower, "o") {
			return false
		}
		rest := lower[1:]
		for _, cont := range safeOContinuations {
			if strings.HasPrefix(rest, cont) {
				return false
			}
		}
		return true
	}},
	{ReasonObjectObject, func(s string) bool { return objectObjectRe.MatchString(s) }},
	{ReasonLeadingObject, func(s string) bool { return leadingObjectRe.MatchString(s) }},
	{ReasonBracketObject, func(s string) bool { return strings.HasPrefix(strings.ToLower(s), "[object") }},
	{ReasonFunctionSource, func(s string) bool { return strings.HasPrefix(strings.ToLower(s), "function") }},
	{ReasonUndefined, func(s string) bool { return strings.EqualFold(s, "undefined") }},
	{ReasonNaN, func(s string) bool { return strings.EqualFold(s, "nan") }},
	{ReasonInfinity, func(s string) bool { return strings.EqualFold(s, "infinity") }},
}

// DetectCorruption runs the pattern table against a trimmed raw value.
func DetectCorruption(trimmed string) (CorruptionReason, bool) {
	for _, check := range corruptionChecks {
		if check.Match(trimmed) {
			return check.Reason, true
		}
	}
	return "", false
}

// looksLikeJSON is a cheap structural pre-check applied after the pattern
// table: anything a JSON document cannot start with is rejected without
// paying for a full parse.
func looksLikeJSON(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return true
	}
	switch trimmed {
	case "true", "false", "null":
		return true
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// suspiciousKeyName flags key names that themselves look like toString
// artifacts ("object", "undefined", or a bare leading "o").
func suspiciousKeyName(key string) bool {
	lower := strings.ToLower(key)
	if strings.Contains(lower, "object") || strings.Contains(lower, "undefined") {
		return true
	}
	return corruptionChecks[0].Match(key)
}
