package coach

// GenerateRequest is the structured form of POST /generate
type GenerateRequest struct {
	Context   string `json:"context" validate:"required,notblank,max=20000"`
	Sentiment string `json:"sentiment" validate:"omitempty,max=32"`
}
