package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

const exportSheet = "Applications"

var exportHeaders = []string{"APPLICATION ID", "JOB ID", "JOB TITLE", "APPLICANT", "STATUS", "APPLIED AT"}

// ExportApplications writes the same rows ListApplications would return for
// a recruiter into a single-sheet workbook.
func (uc *applicationUsecase) ExportApplications(ctx context.Context, who domain.Identity, filter domain.ApplicationFilter) ([]byte, string, error) {
	if !who.IsRecruiter() {
		return nil, "", apperror.Forbidden("Access denied")
	}

	apps, err := uc.ListApplications(ctx, who, filter)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, "", err
		}
		return nil, "", apperror.Internal(err)
	}

	data, err := writeApplicationsWorkbook(apps)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102_150405"))
	return data, filename, nil
}

func writeApplicationsWorkbook(apps []domain.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", endCell, headerStyle)

	for i, app := range apps {
		row := []interface{}{app.ID, app.JobID, app.JobTitle, app.Applicant, string(app.Status), app.AppliedAt.UTC().Format(time.RFC3339)}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	for i := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, col, col, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
