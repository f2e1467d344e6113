package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCorruption_AllCases(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantReason CorruptionReason
		wantHit    bool
	}{
		{name: "lone o", raw: "o", wantReason: ReasonBareLeadingO, wantHit: true},
		{name: "bare leading o", raw: "oops", wantReason: ReasonBareLeadingO, wantHit: true},
		{name: "bare leading O uppercase", raw: "Oops", wantReason: ReasonBareLeadingO, wantHit: true},
		{name: "object Object literal", raw: "[object Object]", wantReason: ReasonObjectObject, wantHit: true},
		{name: "object Object embedded", raw: `{"a":"[object Object]"}`, wantReason: ReasonObjectObject, wantHit: true},
		{name: "leading object word", raw: "object Object stuff", wantReason: ReasonLeadingObject, wantHit: true},
		{name: "leading bracket object", raw: "[objectFoo", wantReason: ReasonBracketObject, wantHit: true},
		{name: "function source", raw: "function () { return 1 }", wantReason: ReasonFunctionSource, wantHit: true},
		{name: "undefined literal", raw: "undefined", wantReason: ReasonUndefined, wantHit: true},
		{name: "nan literal", raw: "NaN", wantReason: ReasonNaN, wantHit: true},
		{name: "infinity literal", raw: "Infinity", wantReason: ReasonInfinity, wantHit: true},

		// Safe continuations after a leading "o" must not trip the bare-o
		// guard; they fall through to later checks or pass entirely.
		{name: "on passes", raw: "on"},
		{name: "off passes", raw: "off"},
		{name: "or passes", raw: "or"},
		{name: "other passes", raw: "other"},
		{name: "owner passes", raw: "owner"},

		{name: "json object passes", raw: `{"id":"1"}`},
		{name: "json array passes", raw: `[]`},
		{name: "json string passes", raw: `"hello"`},
		{name: "null passes", raw: "null"},
		{name: "number passes", raw: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, hit := DetectCorruption(tt.raw)
			require.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.Equal(t, tt.wantReason, reason)
			}
		})
	}
}

func TestDetectCorruption_OrderShortCircuits(t *testing.T) {
	// "object" is a safe continuation of the bare-o guard, so the value
	// falls through to the leading-word check instead.
	reason, hit := DetectCorruption("object Object")
	require.True(t, hit)
	assert.Equal(t, ReasonLeadingObject, reason)
}

func TestLooksLikeJSON(t *testing.T) {
	assert.True(t, looksLikeJSON(`{"a":1}`))
	assert.True(t, looksLikeJSON(`[1,2]`))
	assert.True(t, looksLikeJSON(`"str"`))
	assert.True(t, looksLikeJSON("true"))
	assert.True(t, looksLikeJSON("false"))
	assert.True(t, looksLikeJSON("null"))
	assert.True(t, looksLikeJSON("3.14"))
	assert.True(t, looksLikeJSON("-7"))

	assert.False(t, looksLikeJSON(""))
	assert.False(t, looksLikeJSON("hello"))
	assert.False(t, looksLikeJSON("NaN"))
	assert.False(t, looksLikeJSON("Infinity"))
	assert.False(t, looksLikeJSON("-Infinity"))
}

func TestSuspiciousKeyName(t *testing.T) {
	assert.True(t, suspiciousKeyName("object"))
	assert.True(t, suspiciousKeyName("myObjectKey"))
	assert.True(t, suspiciousKeyName("undefined"))
	assert.True(t, suspiciousKeyName("o"))
	assert.True(t, suspiciousKeyName("oops_key"))

	assert.False(t, suspiciousKeyName("vehicles"))
	assert.False(t, suspiciousKeyName("user"))
	assert.False(t, suspiciousKeyName("theme_mode"))
	assert.False(t, suspiciousKeyName("owner_name"))
}
