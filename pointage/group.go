package pointage

// EmployeeGroup is a transient grouping of records sharing an employee,
// rebuilt from the current snapshot on every query. Display fields come
// from the first record seen for the employee.
type EmployeeGroup struct {
	EmployeID        string
	EmployeName      string
	EmployeMatricule string
	Records          []Record
}

func (g *EmployeeGroup) Total() int {
	return len(g.Records)
}

func (g *EmployeeGroup) OpenCount() int {
	n := 0
	for _, r := range g.Records {
		if DeriveStatus(r) == StatusOpen {
			n++
		}
	}
	return n
}

// FirstCheckIn returns the check-in of the group's first record, "" for an
// empty group.
func (g *EmployeeGroup) FirstCheckIn() string {
	if len(g.Records) == 0 {
		return ""
	}
	return g.Records[0].CheckIn
}

// GroupByEmployee partitions records by employee. Groups appear in the
// order their employee first occurs in the input and records keep their
// relative order within a group. Records without an employee reference are
// skipped so malformed rows cannot break the table.
func GroupByEmployee(records []Record) []*EmployeeGroup {
	var groups []*EmployeeGroup
	index := make(map[string]*EmployeeGroup)

	for _, r := range records {
		if r.EmployeID == "" {
			continue
		}
		g, ok := index[r.EmployeID]
		if !ok {
			g = &EmployeeGroup{
				EmployeID:        r.EmployeID,
				EmployeName:      r.EmployeName,
				EmployeMatricule: r.EmployeMatricule,
			}
			index[r.EmployeID] = g
			groups = append(groups, g)
		}
		g.Records = append(g.Records, r)
	}

	return groups
}

// Paginate slices groups the way the table pager does: zero-based page,
// perPage rows per page, out-of-range pages come back empty.
func Paginate(groups []*EmployeeGroup, page, perPage int) []*EmployeeGroup {
	if page < 0 || perPage <= 0 {
		return nil
	}
	start := page * perPage
	if start >= len(groups) {
		return nil
	}
	end := start + perPage
	if end > len(groups) {
		end = len(groups)
	}
	return groups[start:end]
}
