package port

import "context"

// VerifyInput carries everything needed to verify one document.
type VerifyInput struct {
	Content     []byte
	ContentType string
	Template    string
	UserData    map[string]string
	Credential  string
}

// DocumentVerifier abstracts the per-document verification pipeline. All
// outcomes — including failures — come back as a plain verdict string.
type DocumentVerifier interface {
	Verify(ctx context.Context, input VerifyInput) string
}
