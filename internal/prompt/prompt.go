// Package prompt renders verification instruction templates. Templates hold
// {key} placeholders resolved against a person's user-data map, plus the
// composite {fullAddress} placeholder assembled from the address fields.
package prompt

import "strings"

// Placeholder token for the composite address, resolved after the generic
// substitution pass. It is not itself a user-data key.
const fullAddressToken = "{fullAddress}"

// Render substitutes every {key} occurrence for each key present in data,
// leaving unknown placeholders untouched, then resolves {fullAddress}.
// Substitution order matters: the generic pass runs first so the composite
// token is still present for the second pass.
func Render(template string, data map[string]string) string {
	rendered := template
	for key, value := range data {
		rendered = strings.ReplaceAll(rendered, "{"+key+"}", value)
	}

	if strings.Contains(rendered, fullAddressToken) {
		rendered = strings.ReplaceAll(rendered, fullAddressToken, composeFullAddress(data))
	}

	return rendered
}

// composeFullAddress joins the non-empty address components with ", " and
// appends a "- CEP: <zip>" suffix only when the zip code is present.
func composeFullAddress(data map[string]string) string {
	var parts []string
	for _, key := range []string{"address", "neighborhood", "city"} {
		if v := data[key]; v != "" {
			parts = append(parts, v)
		}
	}

	zip := ""
	if v := data["zipCode"]; v != "" {
		zip = "- CEP: " + v
	}

	return strings.TrimSpace(strings.Join(parts, ", ") + " " + zip)
}

// WrapTextContent builds the final instruction for text-file documents: the
// extracted content is presented first, followed by the rendered instructions.
func WrapTextContent(text, instruction string) string {
	return "Analise o conteúdo do arquivo de texto abaixo e depois siga as instruções.\n\n" +
		"CONTEÚDO DO ARQUIVO:\n---\n" + text + "\n---\n\nINSTRUÇÕES:\n" + instruction
}
