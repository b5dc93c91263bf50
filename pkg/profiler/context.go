// pkg/profiler/context.go
package profiler

import (
	"regexp"
	"strings"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[\w.-]+@([\w-]+\.)+[\w-]{2,}$`)
	namePattern  = regexp.MustCompile(`^[A-Za-zÀ-ÿ ,.'-]{2,}\s+[A-Za-zÀ-ÿ ,.'-]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?\d[\d\s.-]{6,}\d$`)
)

// contextPolicy validates columns whose lowercased name contains keyword
type contextPolicy struct {
	label   model.ContextLabel
	keyword string
	check   func(string) bool
}

// Policies are matched in order; the first keyword hit decides the check
var contextPolicies = []contextPolicy{
	{label: model.ContextEmail, keyword: "email", check: emailPattern.MatchString},
	{label: model.ContextName, keyword: "name", check: namePattern.MatchString},
	{label: model.ContextAge, keyword: "age", check: validAge},
	{label: model.ContextPhone, keyword: "phone", check: phonePattern.MatchString},
}

// validAge accepts numbers in [0, 120]
func validAge(s string) bool {
	n, ok := converter.ToNumber(s)
	return ok && n >= 0 && n <= 120
}

// policyFor picks the context policy for a column name
func policyFor(column string) contextPolicy {
	lower := strings.ToLower(column)
	for _, p := range contextPolicies {
		if strings.Contains(lower, p.keyword) {
			return p
		}
	}
	return contextPolicy{
		label: model.ContextGeneric,
		check: func(s string) bool { return s != "" },
	}
}

// CheckContext tallies how many non-empty values satisfy the format implied by the column name
func CheckContext(values []interface{}, column string) model.ContextResult {
	policy := policyFor(column)
	result := model.ContextResult{Label: policy.label}

	for _, v := range values {
		s := strings.TrimSpace(converter.ToString(v))
		if s == "" {
			continue
		}
		result.Total++
		if policy.check(s) {
			result.Valid++
		}
	}
	return result
}
