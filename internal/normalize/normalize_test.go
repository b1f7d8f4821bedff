package normalize_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
	"docverify/internal/normalize"
)

func TestNormalize_Image(t *testing.T) {
	n := normalize.New(0)
	content := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}

	prepared, err := n.Normalize(content, "image/jpeg")
	require.NoError(t, err)

	require.Len(t, prepared.Parts, 1)
	assert.Equal(t, "image/jpeg", prepared.Parts[0].MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(content), prepared.Parts[0].Data)
	assert.Empty(t, prepared.Text)
}

func TestNormalize_ImageKeepsOriginalMIMEType(t *testing.T) {
	n := normalize.New(0)

	prepared, err := n.Normalize([]byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.Len(t, prepared.Parts, 1)
	assert.Equal(t, "image/png", prepared.Parts[0].MIMEType)
}

func TestNormalize_PlainText(t *testing.T) {
	n := normalize.New(0)

	prepared, err := n.Normalize([]byte("conteúdo do termo"), "text/plain")
	require.NoError(t, err)

	assert.Empty(t, prepared.Parts)
	assert.Equal(t, "conteúdo do termo", prepared.Text)
}

func TestNormalize_UnsupportedTypeNamesTheType(t *testing.T) {
	n := normalize.New(0)

	prepared, err := n.Normalize([]byte("PK\x03\x04"), "application/zip")
	require.Error(t, err)
	assert.Nil(t, prepared)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	assert.Contains(t, err.Error(), "application/zip")
}

func TestNormalize_CorruptPDFFails(t *testing.T) {
	n := normalize.New(1.5)

	prepared, err := n.Normalize([]byte("not a pdf at all"), "application/pdf")
	require.Error(t, err)
	assert.Nil(t, prepared, "no partial output on failure")
}
