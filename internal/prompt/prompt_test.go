package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docverify/internal/prompt"
)

func TestRender_SubstitutesAllOccurrences(t *testing.T) {
	got := prompt.Render("{a}-{a}", map[string]string{"a": "x"})
	assert.Equal(t, "x-x", got)
}

func TestRender_EmptyDataIsIdentity(t *testing.T) {
	tpl := `Verifique se o nome corresponde a "{name}" e o CPF a "{cpf}".`
	assert.Equal(t, tpl, prompt.Render(tpl, map[string]string{}))
}

func TestRender_UnknownPlaceholdersUntouched(t *testing.T) {
	got := prompt.Render("{name} / {unknown}", map[string]string{"name": "Maria"})
	assert.Equal(t, "Maria / {unknown}", got)
}

func TestRender_FullAddress(t *testing.T) {
	data := map[string]string{
		"address":      "Rua A, 10",
		"neighborhood": "Centro",
		"city":         "SP",
		"zipCode":      "01001000",
	}
	got := prompt.Render("{fullAddress}", data)
	assert.Equal(t, "Rua A, 10, Centro, SP - CEP: 01001000", got)
}

func TestRender_FullAddressEmptyZipOmitsSuffix(t *testing.T) {
	data := map[string]string{
		"address":      "Rua A, 10",
		"neighborhood": "Centro",
		"city":         "SP",
		"zipCode":      "",
	}
	got := prompt.Render("{fullAddress}", data)
	assert.Equal(t, "Rua A, 10, Centro, SP", got)
}

func TestRender_FullAddressSkipsEmptyComponents(t *testing.T) {
	data := map[string]string{
		"address": "Rua A, 10",
		"city":    "SP",
		"zipCode": "01001000",
	}
	got := prompt.Render("{fullAddress}", data)
	assert.Equal(t, "Rua A, 10, SP - CEP: 01001000", got)
}

func TestRender_FullAddressAllOccurrences(t *testing.T) {
	data := map[string]string{"city": "SP"}
	got := prompt.Render("{fullAddress} | {fullAddress}", data)
	assert.Equal(t, "SP | SP", got)
}

func TestRender_GenericPassRunsFirst(t *testing.T) {
	// A user-data value may itself mention the composite token's fields; the
	// composite pass must still resolve from the data map, not the template.
	data := map[string]string{"name": "João", "address": "Av. B", "city": "RJ"}
	got := prompt.Render(`Nome: {name}. Endereço: {fullAddress}.`, data)
	assert.Equal(t, "Nome: João. Endereço: Av. B, RJ.", got)
}

func TestDefaultTemplateFor(t *testing.T) {
	assert.Contains(t, prompt.DefaultTemplateFor(prompt.DocTypeIdentidade), "{cpf}")
	assert.Equal(t, prompt.DefaultNewTypeTemplate, prompt.DefaultTemplateFor("Contrato Social"))
}

func TestWrapTextContent(t *testing.T) {
	got := prompt.WrapTextContent("linha 1", "Responda APENAS com \"CORRETO\".")
	assert.Contains(t, got, "CONTEÚDO DO ARQUIVO:\n---\nlinha 1\n---")
	assert.Contains(t, got, "INSTRUÇÕES:\nResponda APENAS com \"CORRETO\".")
}
