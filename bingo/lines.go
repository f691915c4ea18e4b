// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import "github.com/David01mc/CarnavalWEB-sub000/models"

// Lines holds the 12 winning combinations over 1-based cell ids:
// rows 0-4, then columns 0-4, then the two diagonals.
var Lines = buildLines()

func buildLines() []models.Line {
	const n = models.GridSize
	lines := make([]models.Line, 0, 2*n+2)

	for r := 0; r < n; r++ {
		l := models.Line{Kind: models.LineRow, Index: r}
		for c := 0; c < n; c++ {
			l.Cells[c] = n*r + c + 1
		}
		lines = append(lines, l)
	}

	for c := 0; c < n; c++ {
		l := models.Line{Kind: models.LineColumn, Index: c}
		for r := 0; r < n; r++ {
			l.Cells[r] = c + 1 + n*r
		}
		lines = append(lines, l)
	}

	// top-left to bottom-right, then top-right to bottom-left
	diag := models.Line{Kind: models.LineDiagonal, Index: 0}
	anti := models.Line{Kind: models.LineDiagonal, Index: 1}
	for i := 0; i < n; i++ {
		diag.Cells[i] = i*(n+1) + 1
		anti.Cells[i] = (i+1)*(n-1) + 1
	}
	lines = append(lines, diag, anti)

	return lines
}

// CompleteLines returns every line whose cells are all in marked, in the
// order of Lines. Duplicate or out-of-range ids are ignored.
func CompleteLines(marked []int) []models.Line {
	set := make(map[int]bool, len(marked))
	for _, id := range marked {
		set[id] = true
	}

	complete := []models.Line{}
	for _, l := range Lines {
		if lineComplete(l, set) {
			complete = append(complete, l)
		}
	}
	return complete
}

// LinesThrough filters lines down to those that contain cellID.
func LinesThrough(lines []models.Line, cellID int) []models.Line {
	out := []models.Line{}
	for _, l := range lines {
		for _, id := range l.Cells {
			if id == cellID {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

// IsFull reports whether the board is complete.
func IsFull(marked int) bool {
	return marked == models.CellCount
}

// ValidCellID reports whether id addresses a cell of the grid.
func ValidCellID(id int) bool {
	return id >= 1 && id <= models.CellCount
}

func lineComplete(l models.Line, set map[int]bool) bool {
	for _, id := range l.Cells {
		if !set[id] {
			return false
		}
	}
	return true
}
