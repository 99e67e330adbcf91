package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidResourceID = errors.New("invalid resource ID: must be a UUID")

// NilResourceID is a well formed identifier that never refers to a resource.
const NilResourceID = "00000000-0000-0000-0000-000000000000"

// ResourceID is an identifier issued by the hotel API.
type ResourceID struct {
	Value string
}

func (n *ResourceID) UnmarshalText(text []byte) error {
	if _, err := uuid.ParseBytes(text); err != nil {
		return ErrInvalidResourceID
	}

	*n = ResourceID{
		Value: string(text),
	}

	return nil
}

func (n ResourceID) MarshalText() ([]byte, error) {
	return []byte(n.Value), nil
}

func (n ResourceID) String() string {
	return n.Value
}

// localTimestampLayout is a date time without a zone, as emitted for
// unspecified DateTime kinds.  Such values are read as UTC.
const localTimestampLayout = "2006-01-02T15:04:05"

// Timestamp is a point in time returned by the hotel API.  It accepts RFC3339
// and zone-less date times.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string

	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}

	parsed, err := time.ParseInLocation(localTimestampLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: %w", s, err)
	}

	t.Time = parsed

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}
