package widgets

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// File is one uploaded file as handed over by the host framework.
type File struct {
	Name    string
	Content io.Reader
}

// FormData carries one submission: URL-encoded values plus uploaded files.
type FormData struct {
	Values url.Values
	Files  map[string][]File
}

// Data wraps plain URL-encoded values.
func Data(values url.Values) FormData {
	return FormData{Values: values}
}

// DataFromRequest extracts form data from a parsed request, picking up
// multipart uploads when present. maxMemory bounds the multipart parse.
func DataFromRequest(r *http.Request, maxMemory int64) (FormData, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return FormData{}, err
		}
		data := FormData{Values: r.MultipartForm.Value, Files: map[string][]File{}}
		for name, headers := range r.MultipartForm.File {
			for _, header := range headers {
				f, err := header.Open()
				if err != nil {
					return FormData{}, err
				}
				upload, err := fileFromHeader(header, f)
				if err != nil {
					return FormData{}, err
				}
				data.Files[name] = append(data.Files[name], upload)
			}
		}
		return data, nil
	}
	if err := r.ParseForm(); err != nil {
		return FormData{}, err
	}
	return FormData{Values: r.PostForm}, nil
}

func fileFromHeader(header *multipart.FileHeader, f multipart.File) (File, error) {
	content, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return File{}, fmt.Errorf("widgets: read upload %q: %w", header.Filename, err)
	}
	return File{Name: header.Filename, Content: bytes.NewReader(content)}, nil
}

// Has reports whether the submission carries a value or a file under name.
func (d FormData) Has(name string) bool {
	if d.Values != nil {
		if _, ok := d.Values[name]; ok {
			return true
		}
	}
	if d.Files != nil {
		if _, ok := d.Files[name]; ok {
			return true
		}
	}
	return false
}

// Get returns the first submitted value under name, or "".
func (d FormData) Get(name string) string {
	if d.Values == nil {
		return ""
	}
	return d.Values.Get(name)
}

// File returns the first uploaded file under name.
func (d FormData) File(name string) (File, bool) {
	files := d.Files[name]
	if len(files) == 0 {
		return File{}, false
	}
	return files[0], true
}
