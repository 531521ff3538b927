// Package shape asserts the shape of data source responses and decodes them
// into typed records. Required fields are never defaulted.
package shape

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// ErrShapeViolation matches every ViolationError.
var ErrShapeViolation = errors.New("shape violation")

// ViolationError reports a response field that is missing or malformed.
type ViolationError struct {
	Field  string
	Reason string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("shape violation: %s: %s", e.Field, e.Reason)
}

func (e *ViolationError) Is(target error) bool {
	return target == ErrShapeViolation
}

func violation(field, format string, args ...interface{}) error {
	return &ViolationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
}

// zone-less timestamps are read as UTC
var localTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseTime(value string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}
	for _, layout := range localTimeLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseRoot(body []byte, wantArray bool) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, violation("$", "invalid json")
	}
	root := gjson.ParseBytes(body)
	if wantArray && !root.IsArray() {
		return gjson.Result{}, violation("$", "expected array")
	}
	if !wantArray && !root.IsObject() {
		return gjson.Result{}, violation("$", "expected object")
	}
	return root, nil
}

// object reads the fields of one JSON object and names them by path.
type object struct {
	res  gjson.Result
	path string
}

func newObject(res gjson.Result, path string) (object, error) {
	if !res.IsObject() {
		return object{}, violation(path, "expected object")
	}
	return object{res: res, path: path}, nil
}

func (o object) name(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func (o object) get(key string) (gjson.Result, error) {
	value := o.res.Get(key)
	if !value.Exists() {
		return value, violation(o.name(key), "missing")
	}
	return value, nil
}

func (o object) String(key string) (string, error) {
	value, err := o.get(key)
	if err != nil {
		return "", err
	}
	if value.Type != gjson.String {
		return "", violation(o.name(key), "expected string, got %s", value.Type)
	}
	return value.Str, nil
}

func (o object) NullableString(key string) (*string, error) {
	value, err := o.get(key)
	if err != nil {
		return nil, err
	}
	switch value.Type {
	case gjson.Null:
		return nil, nil
	case gjson.String:
		str := value.Str
		return &str, nil
	default:
		return nil, violation(o.name(key), "expected string or null, got %s", value.Type)
	}
}

func (o object) Time(key string) (time.Time, error) {
	ts, err := o.NullableTime(key)
	if err != nil {
		return time.Time{}, err
	}
	if ts == nil {
		return time.Time{}, violation(o.name(key), "expected datetime, got null")
	}
	return *ts, nil
}

func (o object) NullableTime(key string) (*time.Time, error) {
	value, err := o.NullableString(key)
	if err != nil || value == nil {
		return nil, err
	}
	ts, ok := parseTime(*value)
	if !ok {
		return nil, violation(o.name(key), "invalid datetime %q", *value)
	}
	return &ts, nil
}

func (o object) Uint(key string) (uint64, error) {
	value, err := o.NullableUint(key)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, violation(o.name(key), "expected integer, got null")
	}
	return *value, nil
}

// NullableUint accepts a JSON number or a numeric string.
func (o object) NullableUint(key string) (*uint64, error) {
	value, err := o.get(key)
	if err != nil {
		return nil, err
	}
	var raw string
	switch value.Type {
	case gjson.Null:
		return nil, nil
	case gjson.Number:
		raw = value.Raw
	case gjson.String:
		raw = value.Str
	default:
		return nil, violation(o.name(key), "expected integer, got %s", value.Type)
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, violation(o.name(key), "invalid unsigned integer %q", raw)
	}
	return &parsed, nil
}

func (o object) Array(key string) ([]gjson.Result, error) {
	items, null, err := o.NullableArray(key)
	if err != nil {
		return nil, err
	}
	if null {
		return nil, violation(o.name(key), "expected array, got null")
	}
	return items, nil
}

func (o object) NullableArray(key string) ([]gjson.Result, bool, error) {
	value, err := o.get(key)
	if err != nil {
		return nil, false, err
	}
	if value.Type == gjson.Null {
		return nil, true, nil
	}
	if !value.IsArray() {
		return nil, false, violation(o.name(key), "expected array, got %s", value.Type)
	}
	return value.Array(), false, nil
}

func (o object) Strings(key string) ([]string, error) {
	items, err := o.Array(key)
	if err != nil {
		return nil, err
	}
	return o.stringItems(key, items)
}

// NullableStrings returns a nil slice and true when the field is null.
func (o object) NullableStrings(key string) ([]string, bool, error) {
	items, null, err := o.NullableArray(key)
	if err != nil || null {
		return nil, null, err
	}
	out, err := o.stringItems(key, items)
	return out, false, err
}

func (o object) stringItems(key string, items []gjson.Result) ([]string, error) {
	out := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, violation(fmt.Sprintf("%s[%d]", o.name(key), i), "expected string, got %s", item.Type)
		}
		out = append(out, item.Str)
	}
	return out, nil
}

func elementPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
