package model

// ChatRequest is the POST /api/v1/chat payload.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the conversational reply plus the matched event cards,
// possibly empty.
type ChatResponse struct {
	Response string         `json:"response"`
	Events   []EventSummary `json:"events"`
}
