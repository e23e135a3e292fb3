package mockserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

// FieldValue is one multipart field: a single value, or every value in
// arrival order once the field repeats.
type FieldValue struct {
	values []string
}

// IsMulti reports whether the field received more than one value.
func (v FieldValue) IsMulti() bool { return len(v.values) > 1 }

// First returns the first value received.
func (v FieldValue) First() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// All returns every value in arrival order.
func (v FieldValue) All() []string { return append([]string(nil), v.values...) }

// MarshalJSON encodes a single value as a string and repeated values as an array.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.IsMulti() {
		return json.Marshal(v.values)
	}
	return json.Marshal(v.First())
}

// FormFields collects multipart fields by name, keeping first-seen order.
type FormFields struct {
	names  []string
	fields map[string]*FieldValue
}

// NewFormFields returns an empty field set.
func NewFormFields() *FormFields {
	return &FormFields{fields: make(map[string]*FieldValue)}
}

// Add appends value to the named field. The first value is stored as a
// scalar; the second promotes the field to a sequence.
func (f *FormFields) Add(name, value string) {
	fv, ok := f.fields[name]
	if !ok {
		fv = &FieldValue{}
		f.fields[name] = fv
		f.names = append(f.names, name)
	}
	fv.values = append(fv.values, value)
}

// Get returns the named field.
func (f *FormFields) Get(name string) (FieldValue, bool) {
	fv, ok := f.fields[name]
	if !ok {
		return FieldValue{}, false
	}
	return *fv, true
}

// Names returns the field names in first-seen order.
func (f *FormFields) Names() []string { return append([]string(nil), f.names...) }

// Len returns the number of distinct field names.
func (f *FormFields) Len() int { return len(f.names) }

// MarshalJSON encodes the fields as one JSON object in first-seen order.
func (f *FormFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := f.fields[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// errMultipartTruncated reports a multipart body that ends before its
// closing delimiter.
var errMultipartTruncated = errors.New("multipart body has no closing delimiter")

// readFormFields decodes a complete multipart body one part at a time. File
// parts contribute their content as a string. Parts without a form name are
// skipped.
func readFormFields(body []byte, boundary string) (*FormFields, error) {
	if !hasClosingDelimiter(body, boundary) {
		return nil, errMultipartTruncated
	}
	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	fields := NewFormFields()
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading multipart part: %w", err)
		}
		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}
		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, fmt.Errorf("reading multipart field %q: %w", name, err)
		}
		fields.Add(name, string(data))
	}
}

// hasClosingDelimiter reports whether body contains "--boundary--" at the
// start of a line. multipart.Reader answers io.EOF for a body cut short
// inside a part header, so a clean end of stream is only trusted once the
// closing delimiter is present.
func hasClosingDelimiter(body []byte, boundary string) bool {
	closing := []byte("--" + boundary + "--")
	if bytes.HasPrefix(body, closing) {
		return true
	}
	return bytes.Contains(body, append([]byte("\n"), closing...))
}
