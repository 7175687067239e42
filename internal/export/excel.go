// Package export renders the ranked application list of a job as an
// xlsx workbook for offline review.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"wadhifa/models"
)

const sheetName = "Applications"

var headers = []string{
	"Rank", "Applicant", "Email", "Phone", "Match Score", "Status", "Submitted", "AI Analysis",
}

// WriteApplications writes apps (already ranked by the caller) to w as
// an xlsx workbook. Unscored applications show an empty score cell.
func WriteApplications(w io.Writer, jobTitle string, apps []models.Application) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", fmt.Sprintf("Applications - %s", jobTitle)); err != nil {
		return err
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for i, app := range apps {
		row := i + 3

		score := ""
		if app.AIMatchScore != nil {
			score = fmt.Sprintf("%d", *app.AIMatchScore)
		}
		analysis := ""
		if app.AIAnalysis != nil {
			analysis = *app.AIAnalysis
		}

		values := []interface{}{
			i + 1,
			app.ApplicantName,
			app.ApplicantEmail,
			app.ApplicantPhone,
			score,
			string(app.Status),
			app.CreatedAt.Format("2006-01-02 15:04"),
			analysis,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "B", "C", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "H", "H", 60); err != nil {
		return err
	}

	return f.Write(w)
}
