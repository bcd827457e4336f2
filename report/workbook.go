// Package report writes the tabular summary workbook that accompanies the
// figures: group means, model coefficients, and top riders.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/veloscope/stagereport/analysis"
	"github.com/veloscope/stagereport/pkg/errors"
	"github.com/veloscope/stagereport/pkg/log"
)

const (
	sheetGroups = "Group Means"
	sheetModel  = "Model"
	sheetRiders = "Top Riders"
)

// WriteWorkbook writes the summary workbook to path, creating the parent
// directory if needed. The top-riders sheet is omitted when riders is empty.
func WriteWorkbook(path string, gs *analysis.GroupSummary, m *analysis.InteractionModel, riders []analysis.RiderTotal) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewOutputError("create output directory", dir, err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeGroupSheet(f, gs); err != nil {
		return errors.NewOutputError("build workbook", path, err)
	}
	if err := writeModelSheet(f, m); err != nil {
		return errors.NewOutputError("build workbook", path, err)
	}
	if len(riders) > 0 {
		if err := writeRiderSheet(f, riders); err != nil {
			return errors.NewOutputError("build workbook", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewOutputError("save workbook", path, err)
	}
	slog.Info("saved summary workbook", log.Path(path))
	return nil
}

func writeGroupSheet(f *excelize.File, gs *analysis.GroupSummary) error {
	if err := f.SetSheetName("Sheet1", sheetGroups); err != nil {
		return err
	}
	headers := []string{"Stage Class", "Rider Class", "Entries", "Total Points", "Mean Points", "Std Dev"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetGroups, cell, h); err != nil {
			return err
		}
		if err := f.SetColWidth(sheetGroups, cell[:1], cell[:1], 16); err != nil {
			return err
		}
	}
	for i, c := range gs.Cells() {
		row := i + 2
		values := []interface{}{c.StageClass, c.RiderClass, c.Count, c.Sum, c.Mean, c.Std}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetGroups, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeModelSheet(f *excelize.File, m *analysis.InteractionModel) error {
	if _, err := f.NewSheet(sheetModel); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetModel, "A1", "Term"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetModel, "B1", "Coefficient"); err != nil {
		return err
	}
	for i, term := range m.Terms {
		row := i + 2
		if err := f.SetCellValue(sheetModel, fmt.Sprintf("A%d", row), term); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetModel, fmt.Sprintf("B%d", row), m.Coef[i]); err != nil {
			return err
		}
	}
	statRow := len(m.Terms) + 3
	if err := f.SetCellValue(sheetModel, fmt.Sprintf("A%d", statRow), "R²"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetModel, fmt.Sprintf("B%d", statRow), m.R2); err != nil {
		return err
	}
	return f.SetColWidth(sheetModel, "A", "A", 42)
}

func writeRiderSheet(f *excelize.File, riders []analysis.RiderTotal) error {
	if _, err := f.NewSheet(sheetRiders); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetRiders, "A1", "Rider"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetRiders, "B1", "Points"); err != nil {
		return err
	}
	for i, r := range riders {
		row := i + 2
		if err := f.SetCellValue(sheetRiders, fmt.Sprintf("A%d", row), r.Rider); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetRiders, fmt.Sprintf("B%d", row), r.Points); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetRiders, "A", "A", 28)
}
