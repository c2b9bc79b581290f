package dto

type AskRequest struct {
	Query string `json:"query" validate:"required"`
	// Level is the caller's 1-5 self-rated familiarity; zero means unrated.
	Level       int  `json:"level" validate:"omitempty,min=1,max=5"`
	WantDiagram bool `json:"want_diagram"`
}

type AskResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
	// Diagram is null unless a diagram was requested and the answer carried
	// a mermaid block.
	Diagram  *string `json:"diagram"`
	Filename string  `json:"filename"`
	// Persisted is false when the answer was generated but could not be
	// durably saved.
	Persisted bool `json:"persisted"`
}

type DiagramResponse struct {
	Answer    string  `json:"answer"`
	Diagram   *string `json:"diagram"`
	Persisted bool    `json:"persisted"`
}

type ChatRequest struct {
	Query string `json:"query" validate:"required"`
}

type ChatResponse struct {
	Query     string `json:"query"`
	Answer    string `json:"answer"`
	Filename  string `json:"filename"`
	Persisted bool   `json:"persisted"`
}
