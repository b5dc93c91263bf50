// pkg/model/recommendation.go
package model

// Category classifies a recommendation for downstream grouping and coloring
type Category string

const (
	CategoryMissing       Category = "missing"
	CategoryDuplicate     Category = "duplicate"
	CategoryOutlier       Category = "outlier"
	CategoryNormalization Category = "normalization"
	CategoryClean         Category = "clean"
)

// Recommendation is one remediation line
type Recommendation struct {
	Column   string   `json:"column,omitempty"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Priority is the severity label assigned to a column
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)
