package fields

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/fieldkit/binder"
	"github.com/dmitrymomot/fieldkit/settings"
)

// ReadOnlyValue passes the resolved attribute straight through to output.
// When the attribute resolves to a niladic function or method value, it is
// called and its result used instead.
type ReadOnlyValue struct{}

func (*ReadOnlyValue) Name() string { return "read_only" }

func (*ReadOnlyValue) Messages() map[string]string { return nil }

func (*ReadOnlyValue) configureField(c *config) {
	c.readOnly = true
}

func (*ReadOnlyValue) Parse(f *Field, value any) (any, error) {
	panic(fmt.Sprintf("fields: read_only field %q cannot parse input", f.FieldName()))
}

func (*ReadOnlyValue) Format(f *Field, value any) (any, error) {
	return callIfNiladic(value)
}

// callIfNiladic invokes value when it is a function taking no arguments,
// unwrapping an (result, error) pair if the function returns one.
func callIfNiladic(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Func || rv.Type().NumIn() != 0 {
		return value, nil
	}
	t := rv.Type()
	switch t.NumOut() {
	case 1:
		return rv.Call(nil)[0].Interface(), nil
	case 2:
		if t.Out(1) == reflect.TypeOf((*error)(nil)).Elem() {
			results := rv.Call(nil)
			if err, _ := results[1].Interface().(error); err != nil {
				return nil, err
			}
			return results[0].Interface(), nil
		}
	}
	return value, nil
}

// Method delegates output to a named method registered on the parent, which
// must implement MethodProvider. The method receives the whole instance; the
// default name is "get_" plus the field name.
type Method struct {
	MethodName string
}

func (*Method) Name() string { return "method" }

func (*Method) Messages() map[string]string { return nil }

func (*Method) configureField(c *config) {
	c.readOnly = true
	c.source = "*"
}

func (m *Method) BindField(f *Field) {
	def := "get_" + f.FieldName()
	if m.MethodName == def {
		panic(fmt.Sprintf(
			"fields: it is redundant to specify MethodName %q on the Method field %q; drop it",
			def, f.FieldName(),
		))
	}
}

func (m *Method) methodName(f *Field) string {
	if m.MethodName != "" {
		return m.MethodName
	}
	return "get_" + f.FieldName()
}

func (*Method) Parse(f *Field, value any) (any, error) {
	panic(fmt.Sprintf("fields: method field %q cannot parse input", f.FieldName()))
}

func (m *Method) Format(f *Field, value any) (any, error) {
	provider, ok := f.Parent().(MethodProvider)
	if !ok {
		return nil, fmt.Errorf(
			"fields: method field %q needs a parent implementing fields.MethodProvider",
			f.FieldName(),
		)
	}
	name := m.methodName(f)
	fn, ok := provider.Method(name)
	if !ok {
		return nil, fmt.Errorf("fields: method %q is not registered for field %q", name, f.FieldName())
	}
	return fn(value)
}

// FileURL is implemented by stored-file values that know their serving URL.
type FileURL interface {
	URL() string
}

// fileNamed is the minimal surface of a stored or uploaded file.
type fileNamed interface {
	Name() string
}

// File accepts an uploaded file from a multipart form. Output renders the
// serving URL when the use-URL mode is on (relative URLs gain the media
// prefix and, when the context carries a base_url, the host), and the bare
// file name otherwise.
type File struct {
	// MaxLength bounds the file name length in characters.
	MaxLength int

	// AllowEmptyFile accepts zero-byte uploads.
	AllowEmptyFile bool

	// UseURL overrides the FIELDKIT_UPLOADED_FILES_USE_URL setting.
	UseURL *bool
}

func (*File) Name() string { return "file" }

func (*File) Messages() map[string]string {
	return map[string]string{
		"required":   "No file was submitted.",
		"invalid":    "The submitted data was not a file. Check the encoding type on the form.",
		"no_name":    "No filename could be determined.",
		"empty":      "The submitted file is empty.",
		"max_length": "Ensure this filename has at most %{max_length} characters (it has %{length}).",
	}
}

func (fl *File) Parse(f *Field, value any) (any, error) {
	upload, ok := value.(*binder.FileUpload)
	if !ok {
		return nil, f.Fail("invalid")
	}
	name := upload.Name()
	if name == "" {
		return nil, f.Fail("no_name")
	}
	if !fl.AllowEmptyFile && upload.Size == 0 {
		return nil, f.Fail("empty")
	}
	if length := utf8.RuneCountInString(name); fl.MaxLength > 0 && length > fl.MaxLength {
		return nil, f.Fail("max_length", "max_length", fl.MaxLength, "length", length)
	}
	return upload, nil
}

func (fl *File) Format(f *Field, value any) (any, error) {
	useURL := settings.Current().UploadedFilesUseURL
	if fl.UseURL != nil {
		useURL = *fl.UseURL
	}

	if useURL {
		stored, ok := value.(FileURL)
		if !ok {
			return nil, nil
		}
		u := stored.URL()
		if u == "" {
			return nil, nil
		}
		if media := settings.Current().MediaURL; media != "" && !isAbsoluteURL(u) {
			u = joinURL(media, u)
		}
		if base, ok := fieldContext(f)["base_url"].(string); ok && base != "" && !isAbsoluteURL(u) {
			u = joinURL(base, u)
		}
		return u, nil
	}

	switch v := value.(type) {
	case fileNamed:
		return v.Name(), nil
	case string:
		return v, nil
	}
	return nil, fmt.Errorf("fields: file output expects a named file value, got %T", value)
}

func fieldContext(f *Field) map[string]any {
	if cp, ok := f.Root().(contextProvider); ok {
		return cp.Context()
	}
	return nil
}

func isAbsoluteURL(u string) bool {
	return strings.Contains(u, "://")
}

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
