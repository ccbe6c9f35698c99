package datatable

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/xuri/excelize/v2"
)

// DocumentVersion is bumped on any incompatible change to Document.Data.
const DocumentVersion = 1

// Document is the export form of a table.
type Document struct {
	Version  int      `json:"version"`
	RowNames []string `json:"rowNames"`
	// ColumnNames is reserved and currently always empty.
	ColumnNames []string   `json:"columnNames"`
	Data        [][]Record `json:"data"`
}

// Document walks the live grid, row-major, headers excluded. Two calls
// with no mutation in between encode identically.
func (t *Table) Document() Document {
	doc := Document{
		Version:     DocumentVersion,
		RowNames:    t.RowNames(),
		ColumnNames: []string{},
		Data:        make([][]Record, t.NumRows()),
	}
	for r := range doc.Data {
		doc.Data[r] = make([]Record, t.NumColumns())
		for c := range doc.Data[r] {
			rec, err := t.CellData(r, c)
			if err != nil {
				// unreachable while counts and tree agree
				panic(fmt.Sprintf("datatable: document: %v", err))
			}
			doc.Data[r][c] = rec
		}
	}
	return doc
}

// ToJSON encodes Document compactly.
func (t *Table) ToJSON() (string, error) {
	b, err := json.Marshal(t.Document())
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", t.cfg.ContainerID, err)
	}
	return string(b), nil
}

// ============================================================================
// spreadsheet and text renditions
// ============================================================================

// WriteXLSX writes a workbook with one sheet per field. Each sheet is laid
// out like the grid: row headers down column A, column headers across row
// 1, typed values in between. Unset numbers stay empty.
func (t *Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	rows := t.RowNames()
	cols := t.ColumnHeaders()
	used := map[string]bool{}
	first := ""

	for i, d := range t.cfg.Schema {
		sheet := sheetName(d.Name, i, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if first == "" {
			first = sheet
		}

		if err := setCell(f, sheet, 1, 1, t.cfg.RowsLabel+" / "+t.cfg.ColumnsLabel); err != nil {
			return err
		}
		for c, name := range cols {
			if err := setCell(f, sheet, c+2, 1, name); err != nil {
				return err
			}
		}
		for r, name := range rows {
			if name == "" {
				name = t.cfg.RowLabel + " " + fmt.Sprint(r+1)
			}
			if err := setCell(f, sheet, 1, r+2, name); err != nil {
				return err
			}
			for c := range cols {
				v, err := t.FieldValue(r, c, i)
				if err != nil {
					return err
				}
				if v == nil {
					continue
				}
				if err := setCell(f, sheet, c+2, r+2, v); err != nil {
					return err
				}
			}
		}
	}

	if first != "" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
		idx, err := f.GetSheetIndex(first)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}
	return f.Write(w)
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, ref, v)
}

// sheetName fits a field name to the workbook's sheet name rules: no
// []:*?/\ characters, at most 31 characters, unique.
func sheetName(field string, i int, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, field)
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	// "Sheet1" is the placeholder dropped at the end
	if name == "" || used[name] || strings.EqualFold(name, "Sheet1") {
		name = fmt.Sprintf("Field %d", i+1)
	}
	used[name] = true
	return name
}

// WriteText renders the grid as a plain text table. Each cell lists its
// fields one per line as "Name: value", values formatted for the locale.
func (t *Table) WriteText(w io.Writer) error {
	tbl := tablewriter.NewWriter(w)

	header := make([]any, 0, t.NumColumns()+1)
	header = append(header, "")
	for _, name := range t.ColumnHeaders() {
		header = append(header, name)
	}
	tbl.Header(header...)

	for r, name := range t.RowNames() {
		if name == "" {
			name = t.cfg.RowLabel + " " + fmt.Sprint(r+1)
		}
		line := make([]string, 0, t.NumColumns()+1)
		line = append(line, name)
		for c := 0; c < t.NumColumns(); c++ {
			rec, err := t.CellData(r, c)
			if err != nil {
				return err
			}
			parts := make([]string, rec.Len())
			for i := range parts {
				parts[i] = rec.NameAt(i) + ": " + t.cfg.Numbers.Format(rec.At(i))
			}
			line = append(line, strings.Join(parts, "\n"))
		}
		if err := tbl.Append(line); err != nil {
			return err
		}
	}
	return tbl.Render()
}
