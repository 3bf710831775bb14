// services/hal/internal/util/util.go
package util

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrNotBool = errors.New("payload is not a boolean")

func ResetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		DrainTimer(t)
	}
	t.Reset(d)
}

func DrainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}

// DecodeJSON converts a bus payload into dst. Payloads arrive either as raw
// JSON or as already-decoded values (maps from the config service).
func DecodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}

// DecodeBool accepts true/false, "on"/"off" or {"on": bool}.
func DecodeBool(src any) (bool, error) {
	switch v := src.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "on", "true":
			return true, nil
		case "off", "false":
			return false, nil
		}
		return false, ErrNotBool
	case nil:
		return false, ErrNotBool
	}
	var p struct {
		On *bool `json:"on"`
	}
	if err := DecodeJSON(src, &p); err != nil || p.On == nil {
		return false, ErrNotBool
	}
	return *p.On, nil
}
