package datatable_test

import (
	"bytes"
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"datatable"
)

func mount(t *testing.T, opts datatable.Options) (*datatable.Registry, *datatable.Table) {
	t.Helper()
	page := datatable.NewPage()
	page.AddContainer(opts.ContainerID)
	reg := datatable.NewRegistry(page)
	tbl, err := reg.Create(opts)
	require.NoError(t, err)
	return reg, tbl
}

func TestSingleCellDocument(t *testing.T) {
	reg, _ := mount(t, datatable.Options{ContainerID: "g", NumRows: datatable.Int(1), NumColumns: datatable.Int(1)})

	got, err := reg.ToJSON("g")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"rowNames":[""],"columnNames":[],"data":[[{"Value":null,"Status":"Active"}]]}`, got)

	again, err := reg.ToJSON("g")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestTypedNumberExports(t *testing.T) {
	reg, tbl := mount(t, datatable.Options{ContainerID: "g", NumRows: datatable.Int(1), NumColumns: datatable.Int(1)})

	cell, err := tbl.Cell(0, 0)
	require.NoError(t, err)
	f, err := cell.Field(tbl.FieldIndex("Value"))
	require.NoError(t, err)

	f.Focus()
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1,000")})
	f.Blur()

	got, err := reg.ToJSON("g")
	require.NoError(t, err)

	var doc struct {
		Data [][]map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Equal(t, float64(1000), doc.Data[0][0]["Value"])
}

func TestDocumentShape(t *testing.T) {
	_, tbl := mount(t, datatable.Options{
		ContainerID: "g",
		NumRows:     datatable.Int(2),
		NumColumns:  datatable.Int(3),
		FieldNames:  []string{"Count", "Open"},
		FieldTypes:  []datatable.FieldType{datatable.NumberType, datatable.BooleanType},
	})
	require.NoError(t, tbl.SetRowName(0, "north"))
	require.NoError(t, tbl.SetFieldValue(1, 2, 0, 5))
	require.NoError(t, tbl.SetFieldValue(1, 2, 1, true))
	require.NoError(t, tbl.DisableField(0, 0, 0))

	doc := tbl.Document()
	assert.Equal(t, datatable.DocumentVersion, doc.Version)
	assert.Equal(t, []string{"north", ""}, doc.RowNames)
	assert.Empty(t, doc.ColumnNames)
	require.Len(t, doc.Data, 2)
	require.Len(t, doc.Data[0], 3)

	v, _ := doc.Data[1][2].Get("Count")
	assert.Equal(t, 5, v)
	v, _ = doc.Data[1][2].Get("Open")
	assert.Equal(t, true, v)
	v, _ = doc.Data[0][0].Get("Count")
	assert.Nil(t, v)

	b, err := json.Marshal(doc.Data[1][2])
	require.NoError(t, err)
	assert.Equal(t, `{"Count":5,"Open":true}`, string(b))
}

func TestWriteXLSX(t *testing.T) {
	_, tbl := mount(t, datatable.Options{ContainerID: "g", NumRows: datatable.Int(2), NumColumns: datatable.Int(2)})
	require.NoError(t, tbl.SetFieldValue(0, 1, 0, 7))
	require.NoError(t, tbl.SetFieldValue(1, 0, 1, "Inactive"))
	require.NoError(t, tbl.SetRowName(1, "south"))

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Value", "Status"}, f.GetSheetList())

	cases := []struct {
		sheet, cell, want string
	}{
		{"Value", "B1", "Column 1"},
		{"Value", "A2", "Row 1"},
		{"Value", "A3", "south"},
		{"Value", "C2", "7"},
		{"Value", "B2", ""},
		{"Status", "B3", "Inactive"},
		{"Status", "C3", "Active"},
	}
	for _, c := range cases {
		got, err := f.GetCellValue(c.sheet, c.cell)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s!%s", c.sheet, c.cell)
	}
}

func TestWriteText(t *testing.T) {
	_, tbl := mount(t, datatable.Options{ContainerID: "g", NumRows: datatable.Int(1), NumColumns: datatable.Int(2)})
	require.NoError(t, tbl.SetFieldValue(0, 1, 0, 12345))

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "Value: 12,345")
	assert.Contains(t, out, "Status: Active")
	assert.Contains(t, out, "Row 1")
}
