package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Cell fill colors for status and note columns.
const (
	fillPass = "98FB98" // pale green, requirement met
	fillFail = "F08080" // light coral, attention needed
	fillNote = "FFA500" // orange, adviser note present
)

// statusClear marks a status cell with nothing to report.
const statusClear = "None"

// XLSXExporter renders datasets into a styled xlsx workbook. Status
// columns are colored green when clear and coral otherwise; note columns
// are highlighted orange when they carry content.
type XLSXExporter struct {
	statusColumns map[string]bool
	noteColumns   map[string]bool
}

// NewXLSXExporter builds an xlsx exporter. Columns not named in either
// list are rendered without a fill.
func NewXLSXExporter(statusColumns, noteColumns []string) *XLSXExporter {
	e := &XLSXExporter{
		statusColumns: make(map[string]bool, len(statusColumns)),
		noteColumns:   make(map[string]bool, len(noteColumns)),
	}
	for _, column := range statusColumns {
		e.statusColumns[column] = true
	}
	for _, column := range noteColumns {
		e.noteColumns[column] = true
	}
	return e
}

// Render produces the workbook bytes with one sheet of the given name.
func (e *XLSXExporter) Render(data Dataset, sheet string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	if sheet == "" {
		sheet = "Sheet1"
	}

	file := excelize.NewFile()
	defer file.Close() //nolint:errcheck
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name xlsx sheet: %w", err)
	}

	styles, err := newCellStyles(file)
	if err != nil {
		return nil, err
	}

	for col, header := range data.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("resolve header cell: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write xlsx header: %w", err)
		}
		if err := file.SetCellStyle(sheet, cell, cell, styles.header); err != nil {
			return nil, fmt.Errorf("style xlsx header: %w", err)
		}
		if err := e.setColumnWidth(file, sheet, col+1, header); err != nil {
			return nil, err
		}
	}

	for rowIndex, row := range data.Rows {
		for col, header := range data.Headers {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIndex+2)
			if err != nil {
				return nil, fmt.Errorf("resolve xlsx cell: %w", err)
			}
			value := row[header]
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write xlsx cell: %w", err)
			}
			if err := file.SetCellStyle(sheet, cell, cell, e.styleFor(styles, header, value)); err != nil {
				return nil, fmt.Errorf("style xlsx cell: %w", err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *XLSXExporter) setColumnWidth(file *excelize.File, sheet string, col int, header string) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return fmt.Errorf("resolve xlsx column: %w", err)
	}
	width := float64(len(header)) + 4
	if width < 14 {
		width = 14
	}
	if err := file.SetColWidth(sheet, name, name, width); err != nil {
		return fmt.Errorf("set xlsx column width: %w", err)
	}
	return nil
}

type cellStyles struct {
	header int
	plain  int
	pass   int
	fail   int
	note   int
}

func newCellStyles(file *excelize.File) (cellStyles, error) {
	baseFont := &excelize.Font{Size: 14}
	newStyle := func(style *excelize.Style) (int, error) {
		id, err := file.NewStyle(style)
		if err != nil {
			return 0, fmt.Errorf("register xlsx style: %w", err)
		}
		return id, nil
	}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}

	var styles cellStyles
	var err error
	if styles.header, err = newStyle(&excelize.Style{Font: &excelize.Font{Size: 14, Bold: true}}); err != nil {
		return cellStyles{}, err
	}
	if styles.plain, err = newStyle(&excelize.Style{Font: baseFont}); err != nil {
		return cellStyles{}, err
	}
	if styles.pass, err = newStyle(&excelize.Style{Font: baseFont, Fill: fill(fillPass)}); err != nil {
		return cellStyles{}, err
	}
	if styles.fail, err = newStyle(&excelize.Style{Font: baseFont, Fill: fill(fillFail)}); err != nil {
		return cellStyles{}, err
	}
	if styles.note, err = newStyle(&excelize.Style{Font: baseFont, Fill: fill(fillNote)}); err != nil {
		return cellStyles{}, err
	}
	return styles, nil
}

func (e *XLSXExporter) styleFor(styles cellStyles, header, value string) int {
	switch {
	case e.statusColumns[header] && value == statusClear:
		return styles.pass
	case e.statusColumns[header]:
		return styles.fail
	case e.noteColumns[header] && value != statusClear && value != "" && value != " ":
		return styles.note
	default:
		return styles.plain
	}
}
