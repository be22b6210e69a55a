package pointage

import "time"

// Punctuality metrics compare a closed record against the employee's
// expected working hours. The backend derives the same figures when it
// stores a record; computing them here keeps dashboards working against
// responses that omit them.

// ExpectedHours is the schedule a record is judged against.
type ExpectedHours struct {
	CheckIn          string // HH:MM
	CheckOut         string // HH:MM
	ToleranceMinutes int
}

// DefaultExpectedHours is the 08:00-16:00 day with a 10 minute margin used
// when an employee has no schedule of their own.
func DefaultExpectedHours() ExpectedHours {
	return ExpectedHours{CheckIn: "08:00", CheckOut: "16:00", ToleranceMinutes: 10}
}

type PunctualityVerdict string

const (
	PunctualityPerfect      PunctualityVerdict = "parfait"
	PunctualityAcceptable   PunctualityVerdict = "acceptable"
	PunctualityUnacceptable PunctualityVerdict = "inacceptable"
)

const acceptableSlackMinutes = 30

type Punctuality struct {
	LatenessMinutes       int
	EarlyDepartureMinutes int
	PunctualIn            bool
	PunctualOut           bool
	Verdict               PunctualityVerdict
}

// ComputePunctuality evaluates a record against the expected hours. Only
// closed records with parseable times can be judged; anything else returns
// the sentinel.
func ComputePunctuality(r Record, expected ExpectedHours) (Punctuality, bool) {
	if r.CheckIn == "" || r.CheckOut == "" {
		return Punctuality{}, false
	}

	actualIn, ok := minuteOfDay(r.CheckIn)
	if !ok {
		return Punctuality{}, false
	}
	actualOut, ok := minuteOfDay(r.CheckOut)
	if !ok {
		return Punctuality{}, false
	}
	expectedIn, ok := minuteOfDay(expected.CheckIn)
	if !ok {
		return Punctuality{}, false
	}
	expectedOut, ok := minuteOfDay(expected.CheckOut)
	if !ok {
		return Punctuality{}, false
	}

	p := Punctuality{
		LatenessMinutes:       max(0, actualIn-expectedIn),
		EarlyDepartureMinutes: max(0, expectedOut-actualOut),
	}
	p.PunctualIn = p.LatenessMinutes <= expected.ToleranceMinutes
	p.PunctualOut = p.EarlyDepartureMinutes <= expected.ToleranceMinutes

	switch {
	case p.PunctualIn && p.PunctualOut:
		p.Verdict = PunctualityPerfect
	case p.LatenessMinutes <= acceptableSlackMinutes || p.EarlyDepartureMinutes <= acceptableSlackMinutes:
		p.Verdict = PunctualityAcceptable
	default:
		p.Verdict = PunctualityUnacceptable
	}

	return p, true
}

var dayZero = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func minuteOfDay(clock string) (int, bool) {
	t, err := ParseClockTime(dayZero, clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
