// Package verifier runs one document verification against the external
// model API: normalize the file, render the instruction, send the combined
// payload, and hand back the verdict text.
package verifier

import (
	"context"
	"errors"
	"log"

	"docverify/internal/normalize"
	"docverify/internal/port"
	"docverify/internal/prompt"
	"docverify/internal/verifier/gemini"
)

// Operator-facing verdict strings for the failure paths. The distinct
// prefixes let callers distinguish credential problems from transport ones
// without this package ever raising.
const (
	verdictMissingCredential = "API Error: A chave da API do Gemini não foi fornecida."
	verdictInvalidCredential = "API Error: A chave da API fornecida é inválida. Por favor, verifique e tente novamente."
	verdictGenericPrefix     = "API Error: "
)

// Client orchestrates one verification call per document. It implements
// port.DocumentVerifier.
type Client struct {
	normalizer *normalize.Normalizer
	model      port.ModelClient
}

// NewClient creates a verification client.
func NewClient(normalizer *normalize.Normalizer, model port.ModelClient) *Client {
	return &Client{normalizer: normalizer, model: model}
}

// Verify runs the full pipeline for one document and returns the verdict
// string. Every failure resolves to a descriptive result string — this
// method never returns an error, so the orchestrator treats all outcomes
// uniformly.
func (c *Client) Verify(ctx context.Context, input port.VerifyInput) string {
	if input.Credential == "" {
		return verdictMissingCredential
	}

	prepared, err := c.normalizer.Normalize(input.Content, input.ContentType)
	if err != nil {
		log.Printf("verifier: normalization failed (%s): %v", input.ContentType, err)
		return verdictGenericPrefix + err.Error()
	}

	instruction := prompt.Render(input.Template, input.UserData)
	if prepared.Text != "" {
		instruction = prompt.WrapTextContent(prepared.Text, instruction)
	}

	verdict, err := c.model.GenerateText(ctx, port.ModelRequest{
		Parts:       prepared.Parts,
		Instruction: instruction,
		Credential:  input.Credential,
	})
	if err != nil {
		log.Printf("verifier: model call failed: %v", err)
		var credErr *gemini.InvalidCredentialError
		if errors.As(err, &credErr) {
			return verdictInvalidCredential
		}
		return verdictGenericPrefix + err.Error()
	}

	return verdict
}
