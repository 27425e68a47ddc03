// Package jsondata wraps loosely-typed instrument records and remembers which
// keys were consulted, so a parser can prove every field was either mapped or
// deliberately skipped.
package jsondata

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/internal/logging"
)

// Options configures a JSONData and every child it hands out.
type Options struct {
	// AuditUnusedFields makes Close log the keys that were never read.
	AuditUnusedFields bool
	// Logger receives the audit warning. Defaults to logging.New("jsondata").
	Logger *slog.Logger
	// Name labels the record in audit output, e.g. "row 3".
	Name string
}

// JSONData is a read-tracked view over a decoded JSON object.
// It is not safe for concurrent use.
type JSONData struct {
	data     map[string]any
	read     map[string]struct{}
	path     asmkit.Pointer
	opts     Options
	children []*JSONData
	closed   bool
}

// New wraps data. A nil map behaves as empty.
func New(data map[string]any, opts ...Options) *JSONData {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	return newAt(data, asmkit.Pointer{}, o)
}

func newAt(data map[string]any, path asmkit.Pointer, o Options) *JSONData {
	if data == nil {
		data = map[string]any{}
	}
	return &JSONData{data: data, read: map[string]struct{}{}, path: path, opts: o}
}

// Path is the location of this record relative to the root it was opened from.
func (d *JSONData) Path() asmkit.Pointer { return d.path }

// Has reports whether key is present. It does not mark the key read.
func (d *JSONData) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

// Keys returns all keys, sorted.
func (d *JSONData) Keys() []string {
	out := make([]string, 0, len(d.data))
	for k := range d.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MarkRead records keys as consulted without fetching them.
func (d *JSONData) MarkRead(keys ...string) {
	for _, k := range keys {
		d.read[k] = struct{}{}
	}
}

// GetRaw returns the stored value for key, or def when it is absent.
func (d *JSONData) GetRaw(key string, def any) any {
	d.MarkRead(key)
	v, ok := d.data[key]
	if !ok {
		return def
	}
	return v
}

// GetTyped converts the value for key with tag. Absent, null and
// unconvertible values yield def.
func (d *JSONData) GetTyped(tag TypeTag, key string, def any) any {
	d.MarkRead(key)
	if v, ok := Convert(tag, d.data[key]); ok {
		return v
	}
	return def
}

// GetFirst tries the candidate keys in order and returns the first that
// converts, with the key that matched. Every key tried is marked read.
func (d *JSONData) GetFirst(tag TypeTag, keys ...string) (any, string) {
	for _, k := range keys {
		d.MarkRead(k)
		if v, ok := Convert(tag, d.data[k]); ok {
			return v, k
		}
	}
	return nil, ""
}

// GetValidated is GetTyped where validate sees the raw value first; a false
// result yields def.
func (d *JSONData) GetValidated(tag TypeTag, key string, validate func(raw any) bool, def any) any {
	d.MarkRead(key)
	raw, ok := d.data[key]
	if !ok || raw == nil {
		return def
	}
	if validate != nil && !validate(raw) {
		return def
	}
	if v, ok := Convert(tag, raw); ok {
		return v
	}
	return def
}

// Must is the required form of GetTyped. A missing or null value fails with
// code required, an unconvertible one with invalid_type. msg replaces the
// default message.
func (d *JSONData) Must(tag TypeTag, key string, msg ...string) (any, error) {
	d.MarkRead(key)
	custom := ""
	if len(msg) > 0 {
		custom = msg[0]
	}
	raw, ok := d.data[key]
	if !ok || raw == nil {
		return nil, asmkit.RequiredError(key, custom).WithPath(d.path.Field(key))
	}
	v, ok := Convert(tag, raw)
	if !ok {
		iss := asmkit.InvalidTypeError(key, raw, tag.String()).WithPath(d.path.Field(key))
		if custom != "" {
			iss.Message = custom
		}
		return nil, iss
	}
	return v, nil
}

func (d *JSONData) Float(key string) *float64 {
	if v, ok := d.GetTyped(Float, key, nil).(float64); ok {
		return &v
	}
	return nil
}

func (d *JSONData) FloatOr(key string, def float64) float64 {
	return d.GetTyped(Float, key, def).(float64)
}

func (d *JSONData) Int(key string) *int64 {
	if v, ok := d.GetTyped(Int, key, nil).(int64); ok {
		return &v
	}
	return nil
}

func (d *JSONData) Str(key string) *string {
	if v, ok := d.GetTyped(Str, key, nil).(string); ok {
		return &v
	}
	return nil
}

func (d *JSONData) StrOr(key, def string) string {
	return d.GetTyped(Str, key, def).(string)
}

func (d *JSONData) Bool(key string) *bool {
	if v, ok := d.GetTyped(Bool, key, nil).(bool); ok {
		return &v
	}
	return nil
}

func (d *JSONData) MustFloat(key string, msg ...string) (float64, error) {
	v, err := d.Must(Float, key, msg...)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (d *JSONData) MustInt(key string, msg ...string) (int64, error) {
	v, err := d.Must(Int, key, msg...)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (d *JSONData) MustStr(key string, msg ...string) (string, error) {
	v, err := d.Must(Str, key, msg...)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (d *JSONData) MustBool(key string, msg ...string) (bool, error) {
	v, err := d.Must(Bool, key, msg...)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Nested opens the object stored at key, or returns nil when key is absent or
// not an object. The child is closed by this record's Close.
func (d *JSONData) Nested(key string) *JSONData {
	m, ok := d.GetTyped(Dict, key, nil).(map[string]any)
	if !ok {
		return nil
	}
	child := newAt(m, d.path.Field(key), d.opts)
	d.children = append(d.children, child)
	return child
}

// List opens every object element of the array stored at key. Non-object
// elements are skipped.
func (d *JSONData) List(key string) []*JSONData {
	l, ok := d.GetTyped(List, key, nil).([]any)
	if !ok {
		return nil
	}
	base := d.path.Field(key)
	out := make([]*JSONData, 0, len(l))
	for i, el := range l {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		child := newAt(m, base.Index(i), d.opts)
		d.children = append(d.children, child)
		out = append(out, child)
	}
	return out
}

// UnreadOpts filters GetUnread.
type UnreadOpts struct {
	// Pattern, when set, restricts the result to matching keys.
	Pattern *regexp.Regexp
	// Skip keys are marked read and left out of the result.
	Skip []string
}

// GetUnread collects every scalar key not yet read and marks it read. Object
// and array values are never returned and stay unread. Null values are
// consumed but dropped from the result.
func (d *JSONData) GetUnread(opt ...UnreadOpts) map[string]any {
	var o UnreadOpts
	if len(opt) > 0 {
		o = opt[0]
	}
	d.MarkRead(o.Skip...)
	out := map[string]any{}
	for k, v := range d.data {
		if _, done := d.read[k]; done || isContainer(v) {
			continue
		}
		if o.Pattern != nil && !o.Pattern.MatchString(k) {
			continue
		}
		d.read[k] = struct{}{}
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// FieldMapping describes one output of GetKeysAsDict.
type FieldMapping struct {
	Tag     TypeTag
	Key     string
	Default any
}

// GetKeysAsDict extracts output name -> converted value for each mapping,
// dropping nil and empty-string results.
func (d *JSONData) GetKeysAsDict(mappings map[string]FieldMapping) map[string]any {
	out := make(map[string]any, len(mappings))
	for name, m := range mappings {
		v := d.GetTyped(m.Tag, m.Key, m.Default)
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[name] = v
	}
	return out
}

// Unread lists keys never consulted, sorted, without closing.
func (d *JSONData) Unread() []string {
	var out []string
	for k := range d.data {
		if _, ok := d.read[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Close finishes the record and its children and returns the keys that were
// never read. Keys of children are reported as slash paths such as
// "items/0/name". With AuditUnusedFields a single
// warning lists them. Calling Close again returns nil.
func (d *JSONData) Close() []string {
	if d.closed {
		return nil
	}
	unread := d.collect()
	if d.opts.AuditUnusedFields && len(unread) > 0 {
		l := logging.Or(d.opts.Logger, "jsondata")
		attrs := []any{"keys", unread}
		if d.opts.Name != "" {
			attrs = append(attrs, "record", d.opts.Name)
		}
		l.Warn("unused keys in input record", attrs...)
	}
	return unread
}

func (d *JSONData) collect() []string {
	d.closed = true
	var out []string
	for _, k := range d.Unread() {
		if d.path.IsRoot() {
			out = append(out, k)
			continue
		}
		out = append(out, strings.TrimPrefix(d.path.Field(k).String(), "/"))
	}
	for _, c := range d.children {
		if !c.closed {
			out = append(out, c.collect()...)
		}
	}
	return out
}
