package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
)

// XLSXFileName variante xlsx del consolidado
const XLSXFileName = "resultados_cix_consolidados.xlsx"

const sheetName = "Evaluaciones"

// ConsolidatedXLSX el mismo consolidado que ConsolidatedCSV como libro xlsx
func ConsolidatedXLSX(records []model.Evaluation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	cols := model.TableColumns()
	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for r := range records {
		row := records[r].Row()
		row["id"] = records[r].ID
		row["created_at"] = records[r].CreatedAt
		for i, col := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, row[col]); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
