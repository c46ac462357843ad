package util

import (
	"mime/multipart"
	"net/http"

	"github.com/GrantCuster/extra-grantcuster-com/server/resp"
)

// ParseUploadFile parses a multipart request and returns the single uploaded
// file under the "file" field. Responses for malformed requests are written
// here; callers only proceed when ok is true and must close the file.
func ParseUploadFile(w http.ResponseWriter, r *http.Request, maxMemory, maxFileSize int64) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMemory)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		resp.WriteInvalidRequest(w, "could not parse multipart form")
		return nil, nil, false
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["file"]) == 0 {
		resp.WriteInvalidRequest(w, "a single file is required under the \"file\" field")
		return nil, nil, false
	}

	fh := r.MultipartForm.File["file"][0]
	if maxFileSize > 0 && fh.Size > maxFileSize {
		resp.WriteInvalidRequest(w, "file exceeds the maximum allowed size")
		return nil, nil, false
	}

	f, err := fh.Open()
	if err != nil {
		resp.WriteInvalidRequest(w, "could not open uploaded file")
		return nil, nil, false
	}

	return f, fh, true
}
