package note

import (
	"encoding/json"
	"fmt"
	"time"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time with RFC3339 JSON encoding and an empty
// string for the zero value.
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

func (t Timestamp) SameDay(then time.Time) bool {
	return t.Local().Day() == then.Local().Day() &&
		t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year()
}

func (t Timestamp) SameMonth(then time.Time) bool {
	return t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year()
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
