// pkg/model/score.go
package model

// IssueTotals are the summed issue counts across all columns
type IssueTotals struct {
	Missing    int `json:"missing"`
	Duplicates int `json:"duplicates"`
	Outliers   int `json:"outliers"`
}

// QualityScore is the weighted 0-100 quality assessment of a dataset
type QualityScore struct {
	Partial      int         `json:"partial"` // Always within [34, 90]
	Totals       IssueTotals `json:"totals"`
	TotalCells   int         `json:"totalCells"`
	ContextScore int         `json:"contextScore"` // Within [0, 10]
	Final        int         `json:"final"`        // Within [0, 100]
}

// IssueBar is one entry of the issue breakdown shown next to the score
type IssueBar struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}
