package stats

import (
	"sort"

	"github.com/avitodash/statsproxy/internal/models"
)

// Merge joins item rows with call counts on the date key. Item rows sharing
// a date overwrite each other (last one wins, matching upstream behavior);
// call counts add into whatever row exists for their date, creating a
// partial row when the date only appears in call stats. Output is sorted
// ascending by date string, which for ISO dates is chronological order.
func Merge(rows []models.Row, calls []models.CallCount) []models.Row {
	byDate := make(map[string]*models.Row, len(rows))
	for _, r := range rows {
		r := r
		byDate[r.Date] = &r
	}
	for _, c := range calls {
		row, ok := byDate[c.Date]
		if !ok {
			row = &models.Row{Date: c.Date}
			byDate[c.Date] = row
		}
		row.Calls += c.Calls
	}

	out := make([]models.Row, 0, len(byDate))
	for _, r := range byDate {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
