package verifier_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docverify/internal/normalize"
	"docverify/internal/port"
	"docverify/internal/verifier"
	"docverify/internal/verifier/gemini"
	"docverify/mocks"
)

func newClient(model port.ModelClient) *verifier.Client {
	return verifier.NewClient(normalize.New(0), model)
}

func TestVerify_MissingCredentialShortCircuits(t *testing.T) {
	model := new(mocks.MockModelClient)
	client := newClient(model)

	verdict := client.Verify(context.Background(), port.VerifyInput{
		Content:     []byte("bytes"),
		ContentType: "image/jpeg",
		Template:    "Verifique {name}.",
		UserData:    map[string]string{"name": "Maria"},
		Credential:  "",
	})

	assert.Equal(t, "API Error: A chave da API do Gemini não foi fornecida.", verdict)
	model.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestVerify_ImageDocument(t *testing.T) {
	model := new(mocks.MockModelClient)
	content := []byte{0xFF, 0xD8, 0xFF}

	model.On("GenerateText", mock.Anything, mock.MatchedBy(func(req port.ModelRequest) bool {
		return len(req.Parts) == 1 &&
			req.Parts[0].MIMEType == "image/jpeg" &&
			req.Parts[0].Data == base64.StdEncoding.EncodeToString(content) &&
			req.Instruction == `Verifique se o nome corresponde a "Maria Souza".` &&
			req.Credential == "run-key"
	})).Return("CORRETO", nil)

	client := newClient(model)
	verdict := client.Verify(context.Background(), port.VerifyInput{
		Content:     content,
		ContentType: "image/jpeg",
		Template:    `Verifique se o nome corresponde a "{name}".`,
		UserData:    map[string]string{"name": "Maria Souza"},
		Credential:  "run-key",
	})

	assert.Equal(t, "CORRETO", verdict)
	model.AssertExpectations(t)
}

func TestVerify_TextDocumentWrapsInstruction(t *testing.T) {
	model := new(mocks.MockModelClient)

	model.On("GenerateText", mock.Anything, mock.MatchedBy(func(req port.ModelRequest) bool {
		return len(req.Parts) == 0 &&
			strings.Contains(req.Instruction, "CONTEÚDO DO ARQUIVO:\n---\ntexto do termo\n---") &&
			strings.Contains(req.Instruction, "INSTRUÇÕES:\nVerifique Maria.")
	})).Return("INCORRETO: data ausente", nil)

	client := newClient(model)
	verdict := client.Verify(context.Background(), port.VerifyInput{
		Content:     []byte("texto do termo"),
		ContentType: "text/plain",
		Template:    "Verifique {name}.",
		UserData:    map[string]string{"name": "Maria"},
		Credential:  "run-key",
	})

	assert.Equal(t, "INCORRETO: data ausente", verdict)
	model.AssertExpectations(t)
}

func TestVerify_UnsupportedTypeBecomesVerdict(t *testing.T) {
	model := new(mocks.MockModelClient)
	client := newClient(model)

	verdict := client.Verify(context.Background(), port.VerifyInput{
		Content:     []byte("PK"),
		ContentType: "application/zip",
		Template:    "x",
		Credential:  "run-key",
	})

	assert.Contains(t, verdict, "API Error: ")
	assert.Contains(t, verdict, "application/zip")
	model.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestVerify_InvalidCredentialVerdict(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("GenerateText", mock.Anything, mock.Anything).
		Return("", &gemini.InvalidCredentialError{Err: errors.New("API key not valid")})

	client := newClient(model)
	verdict := client.Verify(context.Background(), port.VerifyInput{
		Content:     []byte("x"),
		ContentType: "image/png",
		Template:    "x",
		Credential:  "bad-key",
	})

	assert.Equal(t, "API Error: A chave da API fornecida é inválida. Por favor, verifique e tente novamente.", verdict)
}

func TestVerify_GenericModelErrorVerdict(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("GenerateText", mock.Anything, mock.Anything).
		Return("", errors.New("gemini API error (status 500): internal"))

	client := newClient(model)
	verdict := client.Verify(context.Background(), port.VerifyInput{
		Content:     []byte("x"),
		ContentType: "image/png",
		Template:    "x",
		Credential:  "run-key",
	})

	assert.Equal(t, "API Error: gemini API error (status 500): internal", verdict)
}
