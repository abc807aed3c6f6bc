// Package attach converts inspiration photos between their binary form and
// the text-safe transport encoding. The encoder runs client-side before
// transport; the decoder runs server-side at the intake boundary.
package attach

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"cakeOrderManagement/internal/submission"
)

// EncodeFile reads a file and produces its transport attachment: base64
// payload plus sidecar metadata. The mime type is derived from the file
// extension, defaulting to octet-stream.
func EncodeFile(path string) (submission.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return submission.Attachment{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return submission.Attachment{
		Name:      filepath.Base(path),
		SizeBytes: int64(len(data)),
		MimeType:  mimeType,
		Base64:    base64.StdEncoding.EncodeToString(data),
	}, nil
}

// EncodeAll encodes the given files strictly one at a time, in order. The
// whole set is all-or-nothing: the first failure aborts with an error
// naming the file, so no partial attachment set is ever transported
// silently.
func EncodeAll(paths []string) ([]submission.Attachment, error) {
	var out []submission.Attachment
	for i, p := range paths {
		a, err := EncodeFile(p)
		if err != nil {
			return nil, fmt.Errorf("encode attachment %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Decode converts a transport attachment back to raw bytes. Callers treat
// a failure as per-file: it must never abort the rest of the order.
func Decode(a submission.Attachment) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(a.Base64)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", a.Name, err)
	}
	return data, nil
}

// Summary renders the human-readable photo list the client sends alongside
// the encoded files ("name (12.3KB), ...").
func Summary(atts []submission.Attachment) string {
	out := ""
	for i, a := range atts {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s (%.1fKB)", a.Name, float64(a.SizeBytes)/1024)
	}
	return out
}
