// Package prompt composes the ordered message sequence sent to the
// generation backend. Message order is a contract the backend depends on
// for instruction-following priority: system persona first, then the
// context-framing system message for chat modes, then the user query.
package prompt

import (
	"fmt"
	"strings"

	"notesmd-be/pkg/llm"
	"notesmd-be/pkg/persona"
)

type Builder struct {
	template    persona.Template
	context     string
	query       string
	level       int
	wantDiagram bool
}

func NewBuilder(template persona.Template, context, query string) *Builder {
	return &Builder{
		template: template,
		context:  context,
		query:    query,
	}
}

// WithLevel attaches the caller's 1-5 self-rated familiarity. Zero means
// unrated.
func (b *Builder) WithLevel(level int) *Builder {
	b.level = level
	return b
}

// WithDiagram appends the diagram directive to the persona prompt.
func (b *Builder) WithDiagram() *Builder {
	b.wantDiagram = true
	return b
}

func (b *Builder) Build() []llm.Message {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: b.systemPrompt()},
	}

	if b.template.ChatMode {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: b.chatFraming(),
		})
	}

	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: b.userPrompt(),
	})

	return messages
}

func (b *Builder) systemPrompt() string {
	if b.wantDiagram {
		return b.template.System + persona.DiagramDirective
	}
	return b.template.System
}

func (b *Builder) chatFraming() string {
	var s strings.Builder
	s.WriteString("The user's notes and the chat history so far:\n\n")
	s.WriteString(b.context)
	return s.String()
}

func (b *Builder) userPrompt() string {
	if b.template.ChatMode {
		// Chat modes carry the context in the framing system message; the
		// user message is the literal query.
		return b.query
	}

	var s strings.Builder
	s.WriteString("Notes:\n")
	s.WriteString(b.context)
	s.WriteString("\n\n")

	switch b.template.Mode {
	case persona.ModeDiagramOnly:
		s.WriteString("Now, based on these notes, generate the mermaid syntax of only the key ")
		s.WriteString("important meaningful diagrams (not more than 2) to make understanding easier.")
	default:
		s.WriteString("Now, based on these notes, generate further notes for the following query. ")
		s.WriteString("If needed, refer to the context. The query is as follows:\n")
		s.WriteString(b.query)
		if b.level > 0 {
			s.WriteString(fmt.Sprintf("\n\nSelf-rated familiarity with this topic: %d/5. %s", b.level, levelDirective(b.level)))
		}
	}

	return s.String()
}

func levelDirective(level int) string {
	switch {
	case level <= 2:
		return "Explain with child-level simplicity and vivid, concrete examples."
	case level == 3:
		return "Balance accessible explanations with technical accuracy."
	default:
		return "Go into deep technical detail; skip the basics."
	}
}
