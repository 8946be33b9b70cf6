package form

import (
	"maps"
	"mime/multipart"
	"net/url"
)

// Data is a submitted key-value payload. Values are strings, string lists
// for repeated keys, *multipart.FileHeader for uploads, or decoded JSON
// values.
type Data map[string]any

// DataFromValues converts url.Values, keeping single values as strings and
// repeated keys as lists.
func DataFromValues(values url.Values) Data {
	if len(values) == 0 {
		return nil
	}
	out := make(Data, len(values))
	for key, list := range values {
		switch len(list) {
		case 0:
		case 1:
			out[key] = list[0]
		default:
			out[key] = append([]string(nil), list...)
		}
	}
	return out
}

// DataFromMultipart converts a parsed multipart form. Files take the first
// uploaded header per key.
func DataFromMultipart(form *multipart.Form) Data {
	if form == nil {
		return nil
	}
	out := DataFromValues(form.Value)
	if out == nil {
		out = make(Data, len(form.File))
	}
	for key, headers := range form.File {
		if len(headers) > 0 {
			out[key] = headers[0]
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// dataFromStrings converts a plain string map.
func dataFromStrings(values map[string]string) Data {
	if len(values) == 0 {
		return nil
	}
	out := make(Data, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}

// Clone returns a shallow copy.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}
