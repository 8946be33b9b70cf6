package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// Callbacks route the outcome of Handle. Other receives any outcome whose
// own callback is nil.
type Callbacks struct {
	// Empty receives an unvalidated bind of no data.
	Empty   func(*BoundForm)
	Success func(*BoundForm)
	Error   func(*BoundForm)
	Other   func(*BoundForm)
}

func (cb Callbacks) call(primary func(*BoundForm), bf *BoundForm) {
	switch {
	case primary != nil:
		primary(bf)
	case cb.Other != nil:
		cb.Other(bf)
	}
}

// Handle reads input, binds it, validates it and routes the result.
//
// Accepted inputs are nil, Data, map[string]any, map[string]string,
// url.Values and *http.Request. Requests are read from the query string for
// GET and HEAD and from the body for POST, PUT and PATCH; bodies may be
// urlencoded, multipart or JSON, or already parsed into PostForm. An empty
// payload goes to Empty. Unsupported methods and input shapes return
// ErrUnsupportedMethod and ErrUnsupportedInput before any callback runs.
func (f *Form) Handle(ctx context.Context, input any, cb Callbacks) error {
	data, err := f.extract(input)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		cb.call(cb.Empty, f.Bind(nil))
		return nil
	}

	bf := f.Bind(data)
	if err := bf.Validate(ctx); err != nil {
		return err
	}
	if bf.IsValid() {
		cb.call(cb.Success, bf)
	} else {
		cb.call(cb.Error, bf)
	}
	return nil
}

func (f *Form) extract(input any) (Data, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case Data:
		return v.Clone(), nil
	case map[string]any:
		return Data(v).Clone(), nil
	case map[string]string:
		return dataFromStrings(v), nil
	case url.Values:
		return DataFromValues(v), nil
	case *http.Request:
		if v == nil {
			return nil, nil
		}
		return f.fromRequest(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}

func (f *Form) fromRequest(r *http.Request) (Data, error) {
	switch r.Method {
	case http.MethodGet, http.MethodHead, "":
		if r.URL == nil {
			return nil, nil
		}
		return DataFromValues(r.URL.Query()), nil
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return f.fromBody(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, r.Method)
	}
}

func (f *Form) fromBody(r *http.Request) (Data, error) {
	if r.MultipartForm != nil {
		return DataFromMultipart(r.MultipartForm), nil
	}

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, fmt.Errorf("form: content type %q: %w", ct, err)
		}
		mediaType = parsed
	}

	// ParseForm leaves an empty PostForm behind for bodies it does not read.
	if r.PostForm != nil && (len(r.PostForm) > 0 || mediaType == "" || mediaType == "application/x-www-form-urlencoded") {
		return DataFromValues(r.PostForm), nil
	}

	switch {
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(f.maxMemory); err != nil {
			return nil, fmt.Errorf("form: parse multipart body: %w", err)
		}
		return DataFromMultipart(r.MultipartForm), nil
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return decodeJSONBody(r.Body)
	case mediaType == "" || mediaType == "application/x-www-form-urlencoded":
		return f.decodeURLEncoded(r.Body)
	default:
		return nil, fmt.Errorf("%w: content type %s", ErrUnsupportedInput, mediaType)
	}
}

func (f *Form) decodeURLEncoded(body io.Reader) (Data, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := io.ReadAll(io.LimitReader(body, f.maxMemory))
	if err != nil {
		return nil, fmt.Errorf("form: read body: %w", err)
	}
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("form: parse body: %w", err)
	}
	return DataFromValues(values), nil
}

func decodeJSONBody(body io.Reader) (Data, error) {
	if body == nil {
		return nil, nil
	}
	var payload map[string]any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("form: decode json body: %w", err)
	}
	out := make(Data, len(payload))
	for key, value := range payload {
		if list, ok := value.([]any); ok {
			out[key] = stringList(list)
			continue
		}
		out[key] = value
	}
	return out, nil
}

// stringList keeps JSON arrays of strings in the same shape repeated form
// keys have.
func stringList(list []any) any {
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return list
		}
		out = append(out, s)
	}
	return out
}
