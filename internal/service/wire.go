package service

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WireDateLayout is how dates are written to the backend services.
const WireDateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	WireDateLayout,
}

// timestamp decodes the date encodings the backend services emit: RFC3339
// with or without a zone, plain dates, and epoch milliseconds. A value that
// matches none of them decodes to the zero time with Raw kept.
type timestamp struct {
	Time time.Time
	Raw  string
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '"' {
		t.Raw = string(data)
		if millis, err := strconv.ParseInt(t.Raw, 10, 64); err == nil {
			t.Time = time.UnixMilli(millis).UTC()
		}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Raw = raw
	t.Time = parseTimestamp(raw)
	return nil
}

// parseTimestamp returns the zero time when raw matches no known layout.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ParseDate parses a date as accepted from callers, using the same layouts
// as the backend wire format. ok is false when nothing matched.
func ParseDate(raw string) (time.Time, bool) {
	parsed := parseTimestamp(raw)
	return parsed, !parsed.IsZero()
}

func wireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(WireDateLayout)
}

// wireAmount keeps decimals exact on the wire while still encoding a JSON number.
func wireAmount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// identifier accepts both "id" and the Mongo style "_id" some services emit.
type identifier struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
}

func (i identifier) value() string {
	if i.ID != "" {
		return i.ID
	}
	return i.MongoID
}

// resourcePath joins a collection with escaped path segments such as ids or
// category names.
func resourcePath(collection string, segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, collection)
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return strings.Join(escaped, "/")
}
