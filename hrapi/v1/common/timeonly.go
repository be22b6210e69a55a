package common

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOnly is a clock time without a date. The backend writes HH:MM:SS;
// forms produce HH:MM, so both are accepted on the way in.
type TimeOnly struct {
	time.Time
}

const timeLayout = "15:04:05"

func NewTimeOnly(t time.Time) TimeOnly {
	return TimeOnly{Time: t}
}

// ParseTimeOnly reads "08:00" or "08:00:00".
func ParseTimeOnly(s string) (TimeOnly, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse(timeLayout, s)
	}
	if err != nil {
		return TimeOnly{}, fmt.Errorf("invalid time format: %v", err)
	}
	return TimeOnly{Time: t}, nil
}

func (c *TimeOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		c.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimeOnly(s)
	if err != nil {
		return err
	}
	c.Time = parsed.Time
	return nil
}

func (c TimeOnly) MarshalJSON() ([]byte, error) {
	if c.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(c.Format(timeLayout))
}

func (c TimeOnly) String() string {
	if c.Time.IsZero() {
		return ""
	}
	return c.Format(timeLayout)
}
