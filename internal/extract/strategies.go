package extract

import (
	"strings"
)

// Strategy locates a JSON candidate inside a raw reply.
// Find returns false when the strategy does not apply to the text.
type Strategy struct {
	Name     string
	Find     func(text string) (string, bool)
	Sanitize bool
}

// DefaultStrategies is the ordered extraction pipeline; the first success wins.
var DefaultStrategies = []Strategy{
	{Name: "direct", Find: Direct},
	{Name: "fenced", Find: Fenced, Sanitize: true},
	{Name: "braces", Find: Braces, Sanitize: true},
}

// Direct returns the whole text.
func Direct(text string) (string, bool) {
	return text, true
}

const fence = "```"

// Fenced returns the interior of the first ```json fenced block.
// The language tag match is case-insensitive.
func Fenced(text string) (string, bool) {
	blocks := FencedBlocks(text)
	if len(blocks) == 0 {
		return "", false
	}
	return blocks[0], true
}

// FencedBlocks returns the interiors of every ```json fenced block in order.
func FencedBlocks(text string) []string {
	var blocks []string
	remaining := text

	for {
		openIdx := strings.Index(remaining, fence)
		if openIdx == -1 {
			return blocks
		}
		afterFence := remaining[openIdx+len(fence):]

		if len(afterFence) < 4 || !strings.EqualFold(afterFence[:4], "json") {
			remaining = afterFence
			continue
		}
		body := afterFence[4:]

		closeIdx := strings.Index(body, fence)
		if closeIdx == -1 {
			return blocks
		}

		blocks = append(blocks, strings.TrimSpace(body[:closeIdx]))
		remaining = body[closeIdx+len(fence):]
	}
}

// Braces returns the span from the first '{' to the last '}' inclusive.
func Braces(text string) (string, bool) {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last == -1 || last <= first {
		return "", false
	}
	return text[first : last+1], true
}
