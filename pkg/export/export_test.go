package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Roll", "Name"},
		Rows: []map[string]string{
			{"Roll": "1", "Name": "Amina"},
			{"Roll": "2", "Name": "Rahim"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, utf8BOM))
	assert.Equal(t, "Roll,Name\n1,Amina\n2,Rahim\n", string(out[len(utf8BOM):]))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset(), "Report")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Roll", "Name"}, {"1", "Amina"}, {"2", "Rahim"}}, rows)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter("")
	out, err := exporter.Render(sampleDataset(), "Final List")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	doc, err := exporter.RenderDocument(Document{
		Title:    "Student",
		Sections: []DocumentSection{{Heading: "Identity", Fields: []DocumentField{{Label: "UID", Value: "2025-001"}}}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	_, err = exporter.RenderDocument(Document{Title: "empty"})
	assert.Error(t, err)
}
