package prompt

// Document type names seeded on first run. Admins can add or remove types at
// runtime; these mirror the checklist the workboard started with.
const (
	DocTypeTermoResponsabilidade = "Termo de Responsabilidade"
	DocTypeCartaRecomendacao     = "Carta de Recomendação"
	DocTypeRelatorioPedido       = "Relatório de Pedido com Valores"
	DocTypeComprovanteEndereco   = "Comprovante de Endereço"
	DocTypeIdentidade            = "Foto de Identidade"
)

// DefaultTemplates are the built-in verification prompts per document type.
// Prompt authoring enforces the CORRETO/INCORRETO answer convention the
// reconciler depends on; the pipeline itself never validates it.
var DefaultTemplates = map[string]string{
	DocTypeTermoResponsabilidade: `Analise este termo de responsabilidade. Verifique se o nome completo corresponde a "{name}", o CPF a "{cpf}" e a data de nascimento a "{dateOfBirth}". Responda APENAS com "CORRETO" se todos estiverem presentes e corretos, ou "INCORRETO" com o motivo.`,
	DocTypeCartaRecomendacao:     `Analise esta carta de recomendação. Verifique se o nome completo do recomendado corresponde a "{name}". Verifique também se há uma data válida no documento. Responda APENAS com "CORRETO" se todas as condições forem atendidas, ou "INCORRETO" com o motivo.`,
	DocTypeRelatorioPedido:       `Analise este relatório de pedido. Extraia o valor total do pedido. Responda APENAS com o valor total formatado como "Valor Total: R$ X.XXX,XX". Se não encontrar, responda "Valor não encontrado".`,
	DocTypeComprovanteEndereco:   `Analise este comprovante de endereço. Verifique se o nome corresponde a "{name}", se o endereço é compatível com "{fullAddress}" e se a data de emissão é recente (últimos 3 meses). Responda APENAS com "CORRETO" ou "INCORRETO" com o motivo.`,
	DocTypeIdentidade:            `Analise este documento de identidade. Verifique se o nome completo corresponde a "{name}", o CPF a "{cpf}" e a data de nascimento a "{dateOfBirth}". Responda APENAS com "CORRETO" ou "INCORRETO" com o motivo.`,
}

// DefaultNewTypeTemplate is the fallback for document types without a stored
// prompt, applied at consumption time.
const DefaultNewTypeTemplate = `Este é um novo tipo de documento. Por favor, defina um prompt de análise. Verifique se o nome corresponde a "{name}". Responda APENAS com "CORRETO" ou "INCORRETO" com o motivo.`

// DefaultTemplateFor returns the built-in template for a document type,
// falling back to the generic new-type template.
func DefaultTemplateFor(documentType string) string {
	if tpl, ok := DefaultTemplates[documentType]; ok {
		return tpl
	}
	return DefaultNewTypeTemplate
}
