package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"jobboard-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{"Application ID", "Candidate Email", "Candidate Title", "Status", "Applied At", "Resume URL", "Cover Letter"}

func exportRow(app domain.Application) []string {
	return []string{
		fmt.Sprintf("%d", app.ID),
		deref(app.CandidateEmail),
		deref(app.CandidateTitle),
		app.Status,
		app.CreatedAt.Format("2006-01-02 15:04"),
		deref(app.ResumeURL),
		deref(app.CoverLetter),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func renderApplicationsXLSX(job *domain.Job, apps []domain.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		for colIdx, value := range exportRow(app) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}
	f.SetDocProps(&excelize.DocProperties{Title: fmt.Sprintf("Applications for %s", job.Title)})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderApplicationsCSV(apps []domain.Application) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, app := range apps {
		if err := w.Write(exportRow(app)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
