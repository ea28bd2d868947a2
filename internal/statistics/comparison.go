package statistics

import "sort"

// UserLabel is the label of the reader's own row in a comparison
const UserLabel = "You"

// Reference is the yearly book count of a reference population
type Reference struct {
	Label        string
	BooksPerYear float64
}

// ReferenceTable is an ordered list of reference populations.
// The order breaks ties when ranking.
type ReferenceTable []Reference

// ComparisonRow is a row of a ranking
type ComparisonRow struct {
	Label        string
	BooksPerYear float64
	IsUser       bool
}

// BuildComparison ranks the reference populations and the reader ascending by books per year.
// Populations with the same rate keep their table order, and the reader comes after all of them.
func BuildComparison(booksPerYear float64, table ReferenceTable) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(table)+1)
	for _, reference := range table {
		rows = append(rows, ComparisonRow{
			Label:        reference.Label,
			BooksPerYear: reference.BooksPerYear,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].BooksPerYear < rows[j].BooksPerYear
	})

	position := sort.Search(len(rows), func(i int) bool {
		return rows[i].BooksPerYear > booksPerYear
	})
	rows = append(rows, ComparisonRow{})
	copy(rows[position+1:], rows[position:])
	rows[position] = ComparisonRow{
		Label:        UserLabel,
		BooksPerYear: booksPerYear,
		IsUser:       true,
	}
	return rows
}
