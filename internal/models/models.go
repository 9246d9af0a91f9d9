package models

// Row is one day of item activity after normalization. Clicks is a pointer
// because the upstream frequently omits it: nil means "not reported", which
// is not the same as a reported zero.
type Row struct {
	Date     string `json:"date"`
	Views    int    `json:"views"`
	Clicks   *int   `json:"clicks,omitempty"`
	Contacts int    `json:"contacts"`
	Calls    int    `json:"calls"`
	Sales    int    `json:"sales"`
}

// CallCount is the per-date call total extracted from the call-stats source.
type CallCount struct {
	Date  string
	Calls int
}

// Bucket is a summed row for one day, week or month. Unlike Row, Clicks is a
// plain int: unreported clicks count as zero once summed.
type Bucket struct {
	Date     string `json:"date"`
	Views    int    `json:"views"`
	Clicks   int    `json:"clicks"`
	Contacts int    `json:"contacts"`
	Calls    int    `json:"calls"`
	Sales    int    `json:"sales"`
}

type StatsResponse struct {
	ItemID string   `json:"itemId"`
	Series []Bucket `json:"series"`
}
