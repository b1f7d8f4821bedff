package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
	"docverify/internal/validator"
)

var testFields = []domain.UserDataField{
	{Key: "name", Label: "Nome Completo", Type: domain.FieldTypeText},
	{Key: "cpf", Label: "CPF", Type: domain.FieldTypeTel, Validation: domain.FieldValidationCPF},
	{Key: "zipCode", Label: "CEP", Type: domain.FieldTypeTel, Validation: domain.FieldValidationZipCode},
	{Key: "dateOfBirth", Label: "Data de Nascimento", Type: domain.FieldTypeDate, Validation: domain.FieldValidationDateOfBirth},
}

func validData() domain.UserData {
	return domain.UserData{
		"name":        "Maria Souza",
		"cpf":         "12345678901",
		"zipCode":     "01001000",
		"dateOfBirth": "1990-04-12",
	}
}

func TestValidateFields_CleanData(t *testing.T) {
	errs := validator.ValidateFields(testFields, validData())
	assert.Empty(t, errs)
}

func TestValidateFields_MissingValueIsRequired(t *testing.T) {
	data := validData()
	data["name"] = ""

	errs := validator.ValidateFields(testFields, data)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Key)
	assert.Equal(t, "Este campo é obrigatório.", errs[0].Message)
}

func TestValidateFields_CPFLength(t *testing.T) {
	data := validData()
	data["cpf"] = "123"

	errs := validator.ValidateFields(testFields, data)
	require.Len(t, errs, 1)
	assert.Equal(t, "cpf", errs[0].Key)
}

func TestValidateFields_CPFNonNumeric(t *testing.T) {
	data := validData()
	data["cpf"] = "1234567890a"

	errs := validator.ValidateFields(testFields, data)
	require.Len(t, errs, 1)
	assert.Equal(t, "cpf", errs[0].Key)
}

func TestValidateFields_ZipCodeLength(t *testing.T) {
	data := validData()
	data["zipCode"] = "0100100"

	errs := validator.ValidateFields(testFields, data)
	require.Len(t, errs, 1)
	assert.Equal(t, "zipCode", errs[0].Key)
}

func TestValidateFields_FutureBirthDate(t *testing.T) {
	data := validData()
	data["dateOfBirth"] = time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")

	errs := validator.ValidateFields(testFields, data)
	require.Len(t, errs, 1)
	assert.Equal(t, "dateOfBirth", errs[0].Key)
	assert.Equal(t, "A data de nascimento não pode ser no futuro.", errs[0].Message)
}

func TestValidateFields_MalformedDate(t *testing.T) {
	data := validData()
	data["dateOfBirth"] = "12/04/1990"

	errs := validator.ValidateFields(testFields, data)
	require.Len(t, errs, 1)
	assert.Equal(t, "Data inválida.", errs[0].Message)
}

func TestValidateFields_MultipleFailures(t *testing.T) {
	data := domain.UserData{"name": "Maria Souza"}

	errs := validator.ValidateFields(testFields, data)
	assert.Len(t, errs, 3)
}
