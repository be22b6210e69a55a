package pointage

import (
	"strings"
	"time"

	"ortm.io/hrportal/utils"
)

// SearchField selects which record fields the search text is matched
// against.
type SearchField string

const (
	SearchAll       SearchField = "all"
	SearchName      SearchField = "nom"
	SearchRecordID  SearchField = "id_pointage"
	SearchMatricule SearchField = "matricule"
	SearchDate      SearchField = "date"
)

// StatusFilter narrows results by derived status.
type StatusFilter string

const (
	FilterAll    StatusFilter = "all"
	FilterOpen   StatusFilter = "open"
	FilterClosed StatusFilter = "closed"
)

// Query is the advanced-search configuration: free text matched against the
// selected field(s), combined with a status filter. Both conditions must
// hold. An empty SearchText matches every record.
type Query struct {
	SearchText  string
	SearchField SearchField
	Status      StatusFilter
}

// FilterRecords returns the records matching q, preserving input order. The
// input slice is never mutated. Matching is case-insensitive substring;
// dates match in both dd/MM/yyyy and yyyy-MM-dd renderings.
func FilterRecords(records []Record, q Query) []Record {
	return utils.Filter(records, func(r Record) bool {
		return matchesSearch(r, q) && matchesStatus(r, q.Status)
	})
}

func matchesSearch(r Record, q Query) bool {
	if q.SearchText == "" {
		return true
	}

	needle := strings.ToLower(q.SearchText)

	switch q.SearchField {
	case SearchName:
		return contains(r.EmployeName, needle)
	case SearchRecordID:
		return contains(r.ID, needle)
	case SearchMatricule:
		return contains(r.EmployeMatricule, needle)
	case SearchDate:
		return matchesDate(r.Date, needle)
	default: // SearchAll
		return contains(r.EmployeName, needle) ||
			contains(r.ID, needle) ||
			contains(r.EmployeMatricule, needle) ||
			matchesDate(r.Date, needle)
	}
}

func matchesStatus(r Record, f StatusFilter) bool {
	switch f {
	case FilterOpen:
		return DeriveStatus(r) == StatusOpen
	case FilterClosed:
		return DeriveStatus(r) == StatusClosed
	default:
		return true
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func matchesDate(date, needle string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return strings.Contains(t.Format("02/01/2006"), needle) ||
		strings.Contains(date, needle)
}
