package prompt

import (
	"strings"
	"testing"

	"notesmd-be/pkg/llm"
	"notesmd-be/pkg/persona"
)

func defaultTemplate() persona.Template {
	return persona.Template{Mode: persona.ModeDefault, System: "You are a note assistant."}
}

func chatTemplate() persona.Template {
	return persona.Template{Mode: persona.ModeTutor, System: "You are a tutor.", ChatMode: true}
}

func TestBuildDefaultModeOrder(t *testing.T) {
	msgs := NewBuilder(defaultTemplate(), "===== cell.md =====\ncontent\n", "what is a cell").Build()

	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %q, want system", msgs[0].Role)
	}
	if msgs[0].Content != "You are a note assistant." {
		t.Errorf("system message = %q", msgs[0].Content)
	}
	if msgs[1].Role != llm.RoleUser {
		t.Errorf("second message role = %q, want user", msgs[1].Role)
	}
	if !strings.Contains(msgs[1].Content, "what is a cell") {
		t.Errorf("user message missing literal query: %q", msgs[1].Content)
	}
	if !strings.Contains(msgs[1].Content, "===== cell.md =====") {
		t.Errorf("user message missing context: %q", msgs[1].Content)
	}
}

func TestBuildLevelAnnotation(t *testing.T) {
	tests := []struct {
		level        int
		wantFragment string
	}{
		{1, "child-level simplicity"},
		{3, "technical accuracy"},
		{5, "deep technical detail"},
	}

	for _, tt := range tests {
		msgs := NewBuilder(defaultTemplate(), "ctx", "q").WithLevel(tt.level).Build()
		user := msgs[len(msgs)-1].Content

		if !strings.Contains(user, tt.wantFragment) {
			t.Errorf("level %d: user message %q missing %q", tt.level, user, tt.wantFragment)
		}
	}
}

func TestBuildNoLevelByDefault(t *testing.T) {
	msgs := NewBuilder(defaultTemplate(), "ctx", "q").Build()
	user := msgs[len(msgs)-1].Content

	if strings.Contains(user, "familiarity") {
		t.Errorf("unrated query should carry no level annotation: %q", user)
	}
}

func TestBuildDiagramDirective(t *testing.T) {
	msgs := NewBuilder(defaultTemplate(), "ctx", "q").WithDiagram().Build()

	if !strings.Contains(msgs[0].Content, "```mermaid") {
		t.Errorf("system message missing diagram directive: %q", msgs[0].Content)
	}

	plain := NewBuilder(defaultTemplate(), "ctx", "q").Build()
	if strings.Contains(plain[0].Content, "```mermaid") {
		t.Errorf("diagram directive present without WithDiagram: %q", plain[0].Content)
	}
}

func TestBuildChatModeOrder(t *testing.T) {
	msgs := NewBuilder(chatTemplate(), "===== cell.md =====\ncontent\n", "why?").Build()

	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != "You are a tutor." {
		t.Errorf("first message = %+v, want persona system message", msgs[0])
	}
	if msgs[1].Role != llm.RoleSystem || !strings.Contains(msgs[1].Content, "===== cell.md =====") {
		t.Errorf("second message = %+v, want context-framing system message", msgs[1])
	}
	if msgs[2].Role != llm.RoleUser || msgs[2].Content != "why?" {
		t.Errorf("third message = %+v, want the literal user query", msgs[2])
	}
}

func TestBuildDiagramOnlyUserPrompt(t *testing.T) {
	tpl := persona.Template{Mode: persona.ModeDiagramOnly, System: "Diagrams only."}
	msgs := NewBuilder(tpl, "document body", "").Build()

	user := msgs[len(msgs)-1].Content
	if !strings.Contains(user, "document body") {
		t.Errorf("user message missing document content: %q", user)
	}
	if !strings.Contains(user, "not more than 2") {
		t.Errorf("user message missing the two-diagram cap: %q", user)
	}
}
