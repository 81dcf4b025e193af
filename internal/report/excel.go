// Package report renders a ranking result as an xlsx workbook so students
// and counsellors can take the outcome away from the session.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/disha-labs/disha/internal/engine"
)

// WriteRanking writes a workbook with a Weights sheet (the student's
// normalized criterion weights, descending) and a Ranking sheet (ordered
// courses with per-criterion contributions).
func WriteRanking(w io.Writer, combinationID string, weights map[string]float64, result engine.RankResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const weightsSheet = "Weights"
	if err := f.SetSheetName("Sheet1", weightsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	criteria := engine.SortByWeight(weights)

	setCell(f, weightsSheet, 1, 1, "Subject combination")
	setCell(f, weightsSheet, 2, 1, combinationID)
	setCell(f, weightsSheet, 1, 3, "Criterion")
	setCell(f, weightsSheet, 2, 3, "Weight")
	for i, criterion := range criteria {
		setCell(f, weightsSheet, 1, 4+i, criterion)
		setCell(f, weightsSheet, 2, 4+i, weights[criterion])
	}

	const rankingSheet = "Ranking"
	if _, err := f.NewSheet(rankingSheet); err != nil {
		return fmt.Errorf("adding ranking sheet: %w", err)
	}

	setCell(f, rankingSheet, 1, 1, "Rank")
	setCell(f, rankingSheet, 2, 1, "Course")
	setCell(f, rankingSheet, 3, 1, "Final score")
	for i, criterion := range criteria {
		setCell(f, rankingSheet, 4+i, 1, criterion)
	}

	for row, course := range result.RankedCourses {
		setCell(f, rankingSheet, 1, row+2, row+1)
		setCell(f, rankingSheet, 2, row+2, course.Course)
		setCell(f, rankingSheet, 3, row+2, course.FinalScore)
		for i, criterion := range criteria {
			setCell(f, rankingSheet, 4+i, row+2, course.Contributions[criterion])
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	// SetCellValue only fails for invalid coordinates, already checked.
	_ = f.SetCellValue(sheet, cell, value)
}
