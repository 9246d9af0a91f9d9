package stats

import (
	"sort"
	"time"

	"github.com/avitodash/statsproxy/internal/models"
)

const dateLayout = "2006-01-02"

// bucketKey maps a row date to its aggregation key. Unparsable dates keep
// their raw string so the row is not silently dropped.
func bucketKey(date, period string) string {
	switch period {
	case "week":
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return date
		}
		// Monday=0 .. Sunday=6, then back up to Monday
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset).Format(dateLayout)
	case "month":
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return date
		}
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).Format(dateLayout)
	default:
		// "day" and anything unrecognized
		return date
	}
}

// Aggregate sums rows into day, week or month buckets and returns them in
// ascending key order. A nil Clicks counts as zero here, so a bucket cannot
// distinguish "no clicks" from "clicks unreported"; accepted bias of the
// summed view.
func Aggregate(rows []models.Row, period string) []models.Bucket {
	byKey := make(map[string]*models.Bucket)
	for _, r := range rows {
		k := bucketKey(r.Date, period)
		b, ok := byKey[k]
		if !ok {
			b = &models.Bucket{Date: k}
			byKey[k] = b
		}
		b.Views += r.Views
		if r.Clicks != nil {
			b.Clicks += *r.Clicks
		}
		b.Contacts += r.Contacts
		b.Calls += r.Calls
		b.Sales += r.Sales
	}

	out := make([]models.Bucket, 0, len(byKey))
	for _, b := range byKey {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
