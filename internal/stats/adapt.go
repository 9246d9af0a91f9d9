package stats

import (
	"encoding/json"

	"github.com/avitodash/statsproxy/internal/models"
)

// The upstream schema is undocumented and has drifted before, so the
// adapters resolve every field through an ordered candidate list instead of
// binding to one name. A missing field degrades to its default; it never
// fails the request.

// pickAny returns the first candidate key present in m.
func pickAny(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func pickString(m map[string]any, keys ...string) (string, bool) {
	v, ok := pickAny(m, keys...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func pickInt(m map[string]any, def int, keys ...string) int {
	v, ok := pickAny(m, keys...)
	if !ok {
		return def
	}
	f, ok := v.(float64)
	if !ok {
		return def
	}
	return int(f)
}

// recordsUnder extracts the record list stored under key. The upstream has
// served both a bare array and an object wrapping the array in "items".
func recordsUnder(payload map[string]any, key string) []any {
	switch v := payload[key].(type) {
	case []any:
		return v
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return items
		}
	}
	return nil
}

// AdaptItemStats maps an item-stats payload to canonical rows. Records are
// gathered from both the "result" and "data" envelopes; each record's daily
// series is the first non-empty of "stats", "dates", "statistics". Entries
// without any recognizable date are skipped. Clicks is left nil: this source
// never reports it.
func AdaptItemStats(payload []byte) []models.Row {
	var top map[string]any
	if err := json.Unmarshal(payload, &top); err != nil {
		return nil
	}

	records := append(recordsUnder(top, "result"), recordsUnder(top, "data")...)

	var rows []models.Row
	for _, r := range records {
		rec, ok := r.(map[string]any)
		if !ok {
			continue
		}
		var series []any
		for _, k := range []string{"stats", "dates", "statistics"} {
			if s, ok := rec[k].([]any); ok && len(s) > 0 {
				series = s
				break
			}
		}
		for _, e := range series {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			date, ok := pickString(entry, "date", "day", "dt")
			if !ok {
				continue
			}
			rows = append(rows, models.Row{
				Date:     date,
				Views:    pickInt(entry, 0, "views", "uniqViews", "totalViews"),
				Contacts: pickInt(entry, 0, "contacts", "uniqContacts", "totalContacts"),
			})
		}
	}
	return rows
}

// AdaptCallStats maps a call-stats payload to per-date call counts. Only the
// first non-empty of "result"/"data" is used.
func AdaptCallStats(payload []byte) []models.CallCount {
	var top map[string]any
	if err := json.Unmarshal(payload, &top); err != nil {
		return nil
	}

	records := recordsUnder(top, "result")
	if len(records) == 0 {
		records = recordsUnder(top, "data")
	}

	var out []models.CallCount
	for _, r := range records {
		rec, ok := r.(map[string]any)
		if !ok {
			continue
		}
		date, ok := pickString(rec, "date", "day", "dt")
		if !ok {
			continue
		}
		out = append(out, models.CallCount{
			Date:  date,
			Calls: pickInt(rec, 0, "calls", "success_calls", "total"),
		})
	}
	return out
}
