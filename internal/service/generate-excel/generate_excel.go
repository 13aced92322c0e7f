package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"agro-cost/internal/storage"
)

const sheet = "Work orders"

var baseHeaders = []string{"ID", "Date", "Phase", "Activity", "Description", "Total cost"}

type GenerateExcelStorage interface {
	GetWorkOrdersReport(ctx context.Context, filter storage.WorkOrderFilter) ([]storage.WorkOrderReportRow, []storage.Employee, error)
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

// GenerateExcel builds the work order cost report: one row per order and one
// column per employee holding that employee's line cost on the order.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, filter storage.WorkOrderFilter) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	rows, employees, err := g.storage.GetWorkOrdersReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}

	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("%s: money style: %w", op, err)
	}

	for i, name := range baseHeaders {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}

	// employee columns start right after the fixed ones
	empColMap := make(map[int64]int, len(employees))
	baseLen := len(baseHeaders)
	for i, emp := range employees {
		colIdx := baseLen + i + 1
		empColMap[emp.ID] = colIdx
		f.SetCellValue(sheet, cellName(colIdx, 1), emp.FullName())
	}

	lastCol := baseLen + len(employees)
	f.SetCellStyle(sheet, "A1", cellName(lastCol, 1), headerStyle)

	var grandTotal float64
	for rowIdx, r := range rows {
		rowNum := rowIdx + 2

		f.SetCellValue(sheet, cellName(1, rowNum), r.ID)
		f.SetCellValue(sheet, cellName(2, rowNum), r.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, cellName(3, rowNum), r.PhaseName)
		f.SetCellValue(sheet, cellName(4, rowNum), r.ActivityName)
		f.SetCellValue(sheet, cellName(5, rowNum), r.Description)
		f.SetCellValue(sheet, cellName(6, rowNum), r.TotalCost)
		grandTotal += r.TotalCost

		for empID, cost := range r.EmployeeCost {
			if colIdx, ok := empColMap[empID]; ok {
				f.SetCellValue(sheet, cellName(colIdx, rowNum), cost)
			}
		}
	}

	if len(rows) > 0 {
		totalRow := len(rows) + 2
		f.SetCellValue(sheet, cellName(5, totalRow), "Total")
		f.SetCellValue(sheet, cellName(6, totalRow), grandTotal)
		f.SetCellStyle(sheet, cellName(5, totalRow), cellName(6, totalRow), headerStyle)
		f.SetCellStyle(sheet, cellName(6, 2), cellName(lastCol, len(rows)+1), moneyStyle)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "D", 15)
	f.SetColWidth(sheet, "E", "E", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
