package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/coursework-service/internal/itemanalysis"
)

const (
	summarySheet = "Summary"
	itemsSheet   = "Items"
)

var itemsHeader = []interface{}{
	"Question ID", "Question", "Responses", "Correct",
	"Difficulty Index", "Discrimination Index", "Point Biserial",
	"Variance", "Std Dev",
	"Top Tercile", "Middle Tercile", "Bottom Tercile",
}

func renderItemAnalysisWorkbook(resp *ItemAnalysisResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Assessment", resp.Title},
		{"Assessment ID", resp.AssessmentID},
		{"Generated At", resp.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Respondents", resp.Summary.Respondents},
		{"Items", resp.Summary.Items},
		{"Mean Score", resp.Summary.MeanScore},
		{"Min Score", resp.Summary.MinScore},
		{"Max Score", resp.Summary.MaxScore},
		{"Variance", resp.Summary.Variance},
		{"Std Dev", resp.Summary.StandardDeviation},
		{"Cronbach Alpha", correlationCell(resp.Summary.Alpha)},
	}
	for i, row := range summaryRows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColStyle(summarySheet, "A", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 18); err != nil {
		return nil, err
	}

	if err := setRow(f, itemsSheet, 1, itemsHeader); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(itemsSheet, 1, 1, bold); err != nil {
		return nil, err
	}
	for i, item := range resp.Items {
		row := []interface{}{
			item.ItemID,
			item.Text,
			item.Responses,
			item.Correct,
			item.DifficultyIndex,
			item.DiscriminationIndex,
			correlationCell(item.PointBiserial),
			item.Variance,
			item.StandardDeviation,
			item.Groups[itemanalysis.TercileTop].Ratio,
			item.Groups[itemanalysis.TercileMiddle].Ratio,
			item.Groups[itemanalysis.TercileBottom].Ratio,
		}
		if err := setRow(f, itemsSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(itemsSheet, "B", "B", 48); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// correlationCell leaves undefined correlations blank
func correlationCell(c itemanalysis.Correlation) interface{} {
	if !c.Defined {
		return ""
	}
	return c.Value
}
