package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is a wall-clock instant stored as epoch milliseconds.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to millisecond precision so a stored value reads
// back identical to the in-memory one.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: time.UnixMilli(t.UnixMilli())}
}

// Millis returns the epoch-millisecond form.
func (t Timestamp) Millis() int64 {
	return t.UnixMilli()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", t.UnixMilli())), nil
}

// UnmarshalJSON accepts epoch milliseconds or an RFC3339 string.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var ms float64
	if err := json.Unmarshal(b, &ms); err == nil {
		t.Time = time.UnixMilli(int64(ms))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be epoch milliseconds or RFC3339: %s", b)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = NewTimestamp(parsed)
	return nil
}

func (t Timestamp) String() string {
	return t.Local().Format(time.RFC3339)
}
