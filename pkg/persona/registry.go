// Package persona maps chat/generation modes to their system-prompt
// templates. Template bodies are data, not logic: the default and
// diagram-only prompts are inline constants, the tutor and business prompts
// are external assets.
package persona

import (
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"

	"notesmd-be/pkg/apperrors"
)

type Mode string

const (
	ModeDefault     Mode = "default"
	ModeTutor       Mode = "tutor"
	ModeBusiness    Mode = "business"
	ModeDiagramOnly Mode = "diagram-only"
)

// Template is an immutable system prompt shared read-only across requests.
type Template struct {
	Mode   Mode
	System string
	// ChatMode templates get a second system message framing notes plus the
	// accumulated chat history.
	ChatMode bool
}

const defaultSystemPrompt = "You are a helpful assistant which helps generate further notes " +
	"based on the tags, keywords and instructions provided by the user. Ground every answer " +
	"in the notes and reference material supplied with the request."

// DiagramDirective is appended to the default prompt when the caller asks
// for a diagram. The ```mermaid fence is a wire-level contract with the
// backend's output format; extraction depends on it exactly.
const DiagramDirective = "\n\nAdditionally, include exactly one diagram that best illustrates " +
	"your answer, as mermaid syntax inside a fenced code block opened with ```mermaid and " +
	"closed with ```. Pick the mermaid diagram type that fits the query."

const diagramOnlySystemPrompt = "You are a helpful assistant which generates only suitable " +
	"mermaid diagrams for notes, based solely on the document content provided. Emit the " +
	"mermaid syntax of at most two key, meaningful diagrams that make the material easier to " +
	"understand, each inside a fenced code block opened with ```mermaid and closed with ```."

const (
	tutorAssetFile    = "tutor_prompt.txt"
	businessAssetFile = "business_prompt.txt"
)

// Registry resolves modes to templates. External assets are re-read when
// their cache entry expires, so prompt edits show up without a restart.
type Registry struct {
	assetDir string
	assets   *cache.Cache
}

func NewRegistry(assetDir string) *Registry {
	return &Registry{
		assetDir: assetDir,
		assets:   cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *Registry) Resolve(mode Mode) (Template, error) {
	switch mode {
	case ModeDefault:
		return Template{Mode: mode, System: defaultSystemPrompt}, nil
	case ModeDiagramOnly:
		return Template{Mode: mode, System: diagramOnlySystemPrompt}, nil
	case ModeTutor:
		return r.fromAsset(mode, tutorAssetFile)
	case ModeBusiness:
		return r.fromAsset(mode, businessAssetFile)
	default:
		return Template{}, apperrors.MalformedInput("unknown persona mode %q", string(mode))
	}
}

func (r *Registry) fromAsset(mode Mode, filename string) (Template, error) {
	if text, found := r.assets.Get(filename); found {
		return Template{Mode: mode, System: text.(string), ChatMode: true}, nil
	}

	data, err := os.ReadFile(filepath.Join(r.assetDir, filename))
	if err != nil {
		return Template{}, apperrors.Configuration("persona asset %q unavailable: %w", filename, err)
	}

	text := string(data)
	r.assets.Set(filename, text, cache.DefaultExpiration)
	return Template{Mode: mode, System: text, ChatMode: true}, nil
}
