package reporting

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/lab"
)

const (
	historySheet = "History"
	summarySheet = "Summary"
)

type workbookStyles struct {
	header int
	body   int
}

func createWorkbookStyles(fx *excelize.File) (workbookStyles, error) {
	var styles workbookStyles
	var err error

	if styles.header, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return styles, err
	}

	if styles.body, err = fx.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	}); err != nil {
		return styles, err
	}

	return styles, nil
}

// ExportWorkbook writes a run's generation history and final best cell to an
// XLSX file with a history sheet and a summary sheet, grounded on
// GridReporter.WriteGridReportXLSX's NewFile/NewStyle/SetCellStyle/SaveAs
// sequence.
func ExportWorkbook(path string, history []lab.GenerationStats, best cell.CellData) error {
	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName(fx.GetSheetName(0), historySheet)
	if _, err := fx.NewSheet(summarySheet); err != nil {
		return err
	}

	styles, err := createWorkbookStyles(fx)
	if err != nil {
		return err
	}

	if err := writeHistorySheet(fx, history, styles); err != nil {
		return err
	}
	if err := writeSummarySheet(fx, best, styles); err != nil {
		return err
	}

	fx.SetActiveSheet(0)
	return fx.SaveAs(path)
}

func writeHistorySheet(fx *excelize.File, history []lab.GenerationStats, styles workbookStyles) error {
	sheet := historySheet

	fx.SetColWidth(sheet, "A", "A", 10)
	fx.SetColWidth(sheet, "B", "B", 14)
	fx.SetColWidth(sheet, "C", "C", 18)
	fx.SetColWidth(sheet, "D", "D", 22)

	headers := []string{"Algo ID", "Generation", "Best Score", "Timestamp"}
	for i, h := range headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, c, h)
	}
	if err := fx.SetCellStyle(sheet, "A1", "D1", styles.header); err != nil {
		return err
	}

	for i, s := range history {
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), strconv.Itoa(s.AlgoID))
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.Generation)
		fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), s.BestScore)
		fx.SetCellValue(sheet, fmt.Sprintf("D%d", row), s.Timestamp.Format("2006-01-02 15:04:05"))
		if err := fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), styles.body); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(fx *excelize.File, best cell.CellData, styles workbookStyles) error {
	sheet := summarySheet

	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "B", 20)

	fx.SetCellValue(sheet, "A1", "Metric")
	fx.SetCellValue(sheet, "B1", "Value")
	if err := fx.SetCellStyle(sheet, "A1", "B1", styles.header); err != nil {
		return err
	}

	rows := [][2]any{
		{"Best score", best.Score},
		{"Genome length", len(best.Genome)},
		{"Version", best.Version},
	}
	for i, r := range rows {
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), r[0])
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), r[1])
		if err := fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styles.body); err != nil {
			return err
		}
	}
	return nil
}
