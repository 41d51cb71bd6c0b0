package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirect(t *testing.T) {
	got, ok := Direct(" {\"a\":1} ")
	assert.True(t, ok)
	assert.Equal(t, " {\"a\":1} ", got)
}

func TestFenced(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "json block", input: "```json\n{\"key\": \"value\"}\n```", want: `{"key": "value"}`, wantOK: true},
		{name: "mixed case tag", input: "```Json\n{}\n```", want: `{}`, wantOK: true},
		{name: "skips untagged block", input: "```\nplain\n```\n```json\n[1]\n```", want: `[1]`, wantOK: true},
		{name: "skips other language", input: "```python\nprint(1)\n```", wantOK: false},
		{name: "unterminated", input: "```json\n{\"a\": 1}", wantOK: false},
		{name: "no fence", input: `{"a": 1}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Fenced(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFencedBlocks_ReturnsAllInOrder(t *testing.T) {
	input := "first:\n```json\n{\"n\": 1}\n```\nsecond:\n```json\n{\"n\": 2}\n```"
	assert.Equal(t, []string{`{"n": 1}`, `{"n": 2}`}, FencedBlocks(input))
	assert.Empty(t, FencedBlocks("nothing here"))
}

func TestBraces(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "object with prose", input: "As requested: {\"a\": {\"b\": 1}} thanks", want: `{"a": {"b": 1}}`, wantOK: true},
		{name: "no closing brace", input: "{\"a\": 1", wantOK: false},
		{name: "closing before opening", input: "} then {", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Braces(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDefaultStrategiesOrder(t *testing.T) {
	names := make([]string, 0, len(DefaultStrategies))
	for _, s := range DefaultStrategies {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"direct", "fenced", "braces"}, names)
	assert.False(t, DefaultStrategies[0].Sanitize)
	assert.True(t, DefaultStrategies[1].Sanitize)
	assert.True(t, DefaultStrategies[2].Sanitize)
}
