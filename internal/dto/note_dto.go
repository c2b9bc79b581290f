package dto

type ListNotesResponse struct {
	Notes []string `json:"notes"`
}

type ListSubsectionsResponse struct {
	Subsections []string `json:"subsections"`
}

type ShowSubsectionResponse struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type UpdateSubsectionRequest struct {
	Content string `json:"content" validate:"required"`
}

type UpdateSubsectionResponse struct {
	Name string `json:"name"`
}

type AppendSubsectionRequest struct {
	Content string `json:"content" validate:"required"`
}

type AppendSubsectionResponse struct {
	Name string `json:"name"`
}

type UploadReferenceResponse struct {
	Filename string `json:"filename"`
}

type ChatTurnDTO struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type ListChatTurnsResponse struct {
	Turns []ChatTurnDTO `json:"turns"`
}
