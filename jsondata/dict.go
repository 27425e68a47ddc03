package jsondata

import "strings"

// DictData is a JSONData over the string key/value pairs of a text export
// section or CSV row. Keys and values are trimmed; blank values count as null
// so typed getters fall back to their default and Must reports required.
type DictData struct {
	*JSONData
}

// NewDict wraps m.
func NewDict(m map[string]string, opts ...Options) *DictData {
	data := make(map[string]any, len(m))
	for k, v := range m {
		v = strings.TrimSpace(v)
		if v == "" {
			data[strings.TrimSpace(k)] = nil
			continue
		}
		data[strings.TrimSpace(k)] = v
	}
	return &DictData{JSONData: New(data, opts...)}
}

// NewDictFromRow zips a header with one row. Extra cells are ignored and
// missing ones are null.
func NewDictFromRow(header, row []string, opts ...Options) *DictData {
	m := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(row) {
			m[h] = row[i]
		} else {
			m[h] = ""
		}
	}
	return NewDict(m, opts...)
}

// Text returns the trimmed raw text for key, marking it read.
func (d *DictData) Text(key string) (string, bool) {
	s, ok := d.GetRaw(key, nil).(string)
	return s, ok
}
