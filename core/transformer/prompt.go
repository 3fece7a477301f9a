// ABOUTME: Prompt construction for LLM-backed transformers
// ABOUTME: Maps each enhancement mode to rewriting instructions

package transformer

import (
	"fmt"
	"strings"

	"commonplace-api/core/domain"
)

const systemPrompt = `You rewrite community posts written by members of a local organisation.
Return plain text only: no markdown, no HTML, no headings markup, no commentary.
Separate paragraphs with a single blank line.
Keep the author's voice, facts, names, dates and places exactly as given.`

var modeInstructions = map[domain.EnhanceMode]string{
	domain.ModePolish:   "Polish the text: fix grammar, spelling and punctuation and improve flow. Do not add new information.",
	domain.ModeExpand:   "Expand the text: add helpful detail and elaboration to each point while staying consistent with the original.",
	domain.ModeSimplify: "Simplify the text: use short sentences and plain words so it is easy to read. Remove repetition.",
}

// Instructions returns the rewriting instructions for a mode
func Instructions(mode domain.EnhanceMode) (string, error) {
	instructions, ok := modeInstructions[mode]
	if !ok {
		return "", fmt.Errorf("unsupported mode %q", mode)
	}
	return instructions, nil
}

// BuildPrompt returns the system and user prompts for one transformation
func BuildPrompt(text, title string, mode domain.EnhanceMode) (string, string, error) {
	instructions, err := Instructions(mode)
	if err != nil {
		return "", "", err
	}

	var user strings.Builder
	user.WriteString(instructions)
	user.WriteString("\n\n")
	if title = strings.TrimSpace(title); title != "" {
		user.WriteString("Title: ")
		user.WriteString(title)
		user.WriteString("\n\n")
	}
	user.WriteString("Text:\n")
	user.WriteString(text)

	return systemPrompt, user.String(), nil
}
