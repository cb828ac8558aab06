package types

import "time"

// Stats is the triple of writing statistics sent with a saved essay.
type Stats struct {
	WordCount      int `json:"wordCount"`
	ParagraphCount int `json:"paragraphCount"`
	BackspaceCount int `json:"backspaceCount"`
}

type Essay struct {
	ID            int64     `json:"id"`
	OriginalText  string    `json:"originalText"`
	CorrectedText string    `json:"correctedText"`
	SessionID     string    `json:"sessionId,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Stats
}

// SaveResponse is the JSON body returned by the save endpoint.
type SaveResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

type CorrectionResponse struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}
