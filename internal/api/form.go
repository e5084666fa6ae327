package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// Form is a multipart request body: ordered text fields plus file
// attachments. Wizard submissions and property uploads use it.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func NewForm() *Form {
	return &Form{}
}

// Set appends a text field. Repeated names are kept in order, matching
// browser FormData semantics.
func (f *Form) Set(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

// AddFile attaches file content under the given field name.
func (f *Form) AddFile(field, filename string, content []byte) {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
}

func (f *Form) encode() (string, *bytes.Buffer, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return "", nil, fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}
	for _, fl := range f.files {
		part, err := w.CreateFormFile(fl.field, fl.filename)
		if err != nil {
			return "", nil, fmt.Errorf("create file part %s: %w", fl.field, err)
		}
		if _, err := part.Write(fl.content); err != nil {
			return "", nil, fmt.Errorf("write file part %s: %w", fl.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), &buf, nil
}
