package core

import (
	"time"
)

// Timestamp marks when a run was produced. It marshals as RFC 3339 so
// archived runs read the same in JSON payloads and in the database.
type Timestamp time.Time

// NewTimestamp creates a timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// Time returns the underlying time.Time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).MarshalJSON()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tm time.Time
	if err := tm.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(tm)
	return nil
}

// String formats the timestamp as RFC3339
func (t Timestamp) String() string {
	return t.Time().Format(time.RFC3339)
}
