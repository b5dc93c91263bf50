// pkg/model/report.go
package model

// Report is the full output of one profiling pass over a dataset
type Report struct {
	Fingerprint     string                   `json:"fingerprint" msgpack:"fingerprint"`
	RowCount        int                      `json:"rowCount" msgpack:"rowCount"`
	Columns         []string                 `json:"columns" msgpack:"columns"`
	Profiles        map[string]ColumnProfile `json:"profiles" msgpack:"profiles"`
	Score           QualityScore             `json:"score" msgpack:"score"`
	Recommendations []Recommendation         `json:"recommendations" msgpack:"recommendations"`
	Issues          []IssueBar               `json:"issues" msgpack:"issues"`
	CellFlags       []map[string]CellFlag    `json:"cellFlags,omitempty" msgpack:"cellFlags"`
	StringStore     map[string][]string      `json:"stringStore,omitempty" msgpack:"stringStore"`
	DateRanges      map[string]DateRange     `json:"dateRanges,omitempty" msgpack:"dateRanges"`
}

// OrderedProfiles returns the profiles in column order
func (r *Report) OrderedProfiles() []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(r.Columns))
	for _, col := range r.Columns {
		if p, ok := r.Profiles[col]; ok {
			profiles = append(profiles, p)
		}
	}
	return profiles
}
