package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
)

func sampleAnalysis() domain.Analysis {
	verdict := "INCORRETO: CPF não corresponde"
	return domain.Analysis{
		PersonName:    "Ana Souza",
		OverallStatus: domain.OverallStatusCompletedPending,
		UserData:      domain.UserData{"name": "Ana Souza"},
		CreatedAt:     time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Checklist: []domain.ChecklistItem{
			{DocumentType: "Foto de Identidade", Status: domain.ChecklistStatusSuccess, Result: &verdict},
			{DocumentType: "Carta de Recomendação", Status: domain.ChecklistStatusPending},
		},
	}
}

func TestWriter_OneRowPerChecklistItem(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteAnalyses([]domain.Analysis{sampleAnalysis()}))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, columns, records[0])
	assert.Equal(t, "Ana Souza", records[1][0])
	assert.Equal(t, "completed_pending", records[1][1])
	assert.Equal(t, "Foto de Identidade", records[1][2])
	assert.Equal(t, "INCORRETO: CPF não corresponde", records[1][4])
	assert.Equal(t, "2026-03-14 09:30:00", records[1][6])

	assert.Equal(t, "Carta de Recomendação", records[2][2])
	assert.Equal(t, "", records[2][4])
}

func TestWriter_EmptyChecklistStillExports(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	analysis := domain.Analysis{PersonName: "Sem Docs", OverallStatus: domain.OverallStatusPendingDocs}
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteAnalyses([]domain.Analysis{analysis}))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Sem Docs", records[1][0])
	assert.Equal(t, "pending_docs", records[1][1])
}

func TestWriteXLSX_RoundTrips(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteXLSX(&buf, []domain.Analysis{sampleAnalysis()}))
	assert.Greater(t, buf.Len(), 0)
}
