package port

import "context"

// ImagePart is one inline image payload for the model request.
type ImagePart struct {
	Data     string // base64-encoded content
	MIMEType string
}

// ModelRequest carries the ordered parts of one verification call: zero or
// more image parts followed by a single text instruction.
type ModelRequest struct {
	Parts       []ImagePart
	Instruction string
	Credential  string
}

// ModelClient abstracts the external multimodal model API. Implementations
// return the raw text response; verdict interpretation happens in the domain.
type ModelClient interface {
	GenerateText(ctx context.Context, req ModelRequest) (string, error)
}
