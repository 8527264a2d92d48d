package binder

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Form is an HTML-form payload backed by url.Values plus any uploaded files.
// A file registered under a name shadows a text value under the same name,
// matching how browsers submit multipart forms.
type Form struct {
	values url.Values
	files  map[string][]*FileUpload
}

// NewForm wraps already-parsed form values in a payload.
func NewForm(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{values: values}
}

// HTMLForm marks the payload with HTML form semantics.
func (f *Form) HTMLForm() {}

// Get returns the file or the first text value submitted under name.
func (f *Form) Get(name string) (any, bool) {
	if files := f.files[name]; len(files) > 0 {
		return files[0], true
	}
	if vs, ok := f.values[name]; ok && len(vs) > 0 {
		return vs[0], true
	}
	return nil, false
}

// Values returns every text value submitted under name.
func (f *Form) Values(name string) []string {
	return f.values[name]
}

// Set replaces the text values under name.
func (f *Form) Set(name, value string) {
	f.values.Set(name, value)
}

// Add appends a text value under name.
func (f *Form) Add(name, value string) {
	f.values.Add(name, value)
}

// File returns the first upload submitted under name.
func (f *Form) File(name string) (*FileUpload, bool) {
	files := f.files[name]
	if len(files) == 0 {
		return nil, false
	}
	return files[0], true
}

// Files returns every upload submitted under name.
func (f *Form) Files(name string) []*FileUpload {
	return f.files[name]
}

// AddFile registers an upload under name.
func (f *Form) AddFile(name string, file *FileUpload) {
	if f.files == nil {
		f.files = make(map[string][]*FileUpload)
	}
	f.files[name] = append(f.files[name], file)
}

// ParseOption configures request parsing.
type ParseOption func(*parseConfig)

type parseConfig struct {
	maxMemory int64
}

// WithMaxMemory caps the memory used while parsing multipart bodies; the
// remainder spills to disk per net/http rules.
func WithMaxMemory(n int64) ParseOption {
	if n <= 0 {
		panic("binder.WithMaxMemory: limit must be positive")
	}
	return func(c *parseConfig) {
		c.maxMemory = n
	}
}

// ParseRequest builds a Form payload from an urlencoded or multipart request
// body. Uploaded files are read fully into memory.
func ParseRequest(r *http.Request, opts ...ParseOption) (*Form, error) {
	cfg := parseConfig{maxMemory: DefaultMaxMemory}
	for _, opt := range opts {
		opt(&cfg)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected a form content type", ErrMissingContentType)
	}

	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return NewForm(r.PostForm), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(cfg.maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		form := NewForm(url.Values(r.MultipartForm.Value))
		for name, headers := range r.MultipartForm.File {
			for _, header := range headers {
				upload, err := readFileHeader(header)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
				}
				form.AddFile(name, upload)
			}
		}
		return form, nil
	}

	return nil, fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
}
