package pointage

import (
	"fmt"
	"time"
)

// Status is the derived lifecycle state of a record. A record is open while
// it has no check-out time; supplying one closes it for good.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

const DateLayout = "2006-01-02"

// Record is one attendance entry for one employee on one day. Date is
// yyyy-MM-dd, CheckIn/CheckOut are HH:MM or HH:MM:SS clock times; CheckOut
// is empty while the employee is still clocked in.
//
// EmployeName and EmployeMatricule are display fields joined in from the
// employee list when the snapshot is loaded; the backend does not always
// send them.
type Record struct {
	ID        string `json:"id_pointage"`
	EmployeID string `json:"employe"`
	Date      string `json:"date_pointage"`
	CheckIn   string `json:"heure_entree"`
	CheckOut  string `json:"heure_sortie,omitempty"`
	Note      string `json:"remarque,omitempty"`
	CreatedBy int    `json:"created_by,omitempty"`

	EmployeName      string `json:"employe_nom,omitempty"`
	EmployeMatricule string `json:"employe_matricule,omitempty"`
}

// WorkDuration is a worked span broken into whole hours and leftover
// minutes, the way the attendance table displays it.
type WorkDuration struct {
	Hours   int
	Minutes int
}

func (d WorkDuration) String() string {
	return fmt.Sprintf("%dh %02dmin", d.Hours, d.Minutes)
}

func (d WorkDuration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// DeriveStatus reports whether the record is still open. Total over any
// input.
func DeriveStatus(r Record) Status {
	if r.CheckOut == "" {
		return StatusOpen
	}
	return StatusClosed
}

// ComputeDuration returns the time worked on a record. For a closed record
// that is check-out minus check-in on the record's date; for an open record
// it is the elapsed time from check-in to now(). The second return is false
// when no duration can be shown: unparseable check-in, or an end before the
// start. Display-only, so malformed input yields the sentinel rather than
// an error.
func ComputeDuration(r Record, now func() time.Time) (WorkDuration, bool) {
	if now == nil {
		now = time.Now
	}
	at := now()

	// the date carries no zone of its own; anchor it in the clock's
	// location so open-record spans against at stay consistent
	base, err := time.ParseInLocation(DateLayout, r.Date, at.Location())
	if err != nil {
		// fall back to today, matching the table's behavior for
		// records with a missing or mangled date
		base = at
	}

	start, err := ParseClockTime(base, r.CheckIn)
	if err != nil {
		return WorkDuration{}, false
	}

	end := at
	if r.CheckOut != "" {
		if out, err := ParseClockTime(base, r.CheckOut); err == nil {
			end = out
		}
	}

	diff := int(end.Sub(start).Minutes())
	if diff < 0 {
		return WorkDuration{}, false
	}

	return WorkDuration{Hours: diff / 60, Minutes: diff % 60}, true
}

// ParseClockTime combines a base date with a clock time string ("08:00" or
// "08:00:00").
func ParseClockTime(baseDate time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		t, err = time.Parse("15:04:05", timeStr)
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), t.Hour(), t.Minute(), t.Second(), 0, baseDate.Location()), nil
}

// Summary backs the dashboard counters above the attendance table.
type Summary struct {
	Total  int
	Closed int
	Open   int
}

func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if DeriveStatus(r) == StatusClosed {
			s.Closed++
		} else {
			s.Open++
		}
	}
	return s
}
