// Package report renders attendance snapshots as xlsx workbooks for the
// HR office, one detail sheet plus a per-employee recap.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"ortm.io/hrportal/pointage"
	"ortm.io/hrportal/utils"
)

const (
	sheetRecords = "Pointages"
	sheetRecap   = "Récapitulatif"
)

const noDuration = "-"

// FileName is the suggested download name for an export taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("pointages-%s.xlsx", t.Format("2006-01-02"))
}

// WriteAttendance writes the workbook to w. Open records get their running
// duration against now (nil means the wall clock) and are marked "En cours".
func WriteAttendance(w io.Writer, records []pointage.Record, now func() time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetRecords)
	if _, err := f.NewSheet(sheetRecap); err != nil {
		return fmt.Errorf("create recap sheet: %w", err)
	}

	if err := writeRecords(f, records, now); err != nil {
		return err
	}
	if err := writeRecap(f, records); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRecords(f *excelize.File, records []pointage.Record, now func() time.Time) error {
	header := []any{
		"ID", "Employé", "Matricule", "Date", "Entrée", "Sortie",
		"Durée", "Statut", "Ponctualité", "Remarque",
	}
	if err := f.SetSheetRow(sheetRecords, "A1", &header); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetRecords, "A1", "J1", style); err != nil {
		return err
	}

	expected := pointage.DefaultExpectedHours()
	for i, r := range records {
		duration := noDuration
		if d, ok := pointage.ComputeDuration(r, now); ok {
			duration = d.String()
		}

		status := utils.FormatBoolean(
			pointage.DeriveStatus(r) == pointage.StatusClosed, "Terminé", "En cours")

		verdict := ""
		if p, ok := pointage.ComputePunctuality(r, expected); ok {
			verdict = string(p.Verdict)
		}

		row := []any{
			r.ID, r.EmployeName, r.EmployeMatricule, r.Date,
			r.CheckIn, r.CheckOut, duration, status, verdict, r.Note,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetRecords, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetRecords, "B", "C", 22)
}

func writeRecap(f *excelize.File, records []pointage.Record) error {
	header := []any{"Employé", "Matricule", "Pointages", "En cours", "Premier pointage"}
	if err := f.SetSheetRow(sheetRecap, "A1", &header); err != nil {
		return err
	}

	for i, g := range pointage.GroupByEmployee(records) {
		row := []any{
			g.EmployeName, g.EmployeMatricule, g.Total(), g.OpenCount(), g.FirstCheckIn(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetRecap, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetRecap, "A", "B", 22)
}
