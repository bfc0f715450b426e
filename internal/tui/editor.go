package tui

import (
	"strings"

	"quizdeck-cli/internal/model"
)

// The edit view is a single textarea holding the question in a small text
// format: the prompt (markdown, any number of lines), then a "---" divider,
// then one choice per line. "[x]" marks a correct choice, "[ ]" (or no
// marker at all) an incorrect one.

const choiceDivider = "---"

func questionToEditorText(q model.Question) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(q.Prompt))
	if len(q.Choices) > 0 {
		b.WriteString("\n\n")
		b.WriteString(choiceDivider)
		b.WriteString("\n")
		for _, c := range q.Choices {
			if c.Correct {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
			b.WriteString(c.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func parseEditorText(s string) (prompt string, choices []model.Choice) {
	lines := strings.Split(s, "\n")
	divider := -1
	for i, ln := range lines {
		if strings.TrimSpace(ln) == choiceDivider {
			divider = i
			break
		}
	}
	if divider < 0 {
		return strings.TrimSpace(s), nil
	}

	prompt = strings.TrimSpace(strings.Join(lines[:divider], "\n"))
	for _, ln := range lines[divider+1:] {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		c := model.Choice{}
		switch {
		case strings.HasPrefix(ln, "[x] "), strings.HasPrefix(ln, "[X] "):
			c.Correct = true
			c.Text = strings.TrimSpace(ln[4:])
		case strings.HasPrefix(ln, "[ ] "):
			c.Text = strings.TrimSpace(ln[4:])
		case ln == "[x]", ln == "[X]", ln == "[ ]":
			continue
		default:
			c.Text = ln
		}
		if c.Text != "" {
			choices = append(choices, c)
		}
	}
	return prompt, choices
}
