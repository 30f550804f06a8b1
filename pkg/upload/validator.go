package upload

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// Kind groups the accepted uploads so each endpoint whitelists only what it needs.
type Kind string

const (
	KindDocument Kind = "document" // résumés and CV repository files
	KindImage    Kind = "image"    // company logos, blog covers
)

// Result describes an accepted file.
type Result struct {
	Extension   string
	ContentType string
}

var (
	ErrNoExtension     = errors.New("file has no extension")
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file exceeds the size limit")
	ErrSpoofedContent  = errors.New("file content does not match its extension")
	ErrTypeNotAccepted = errors.New("file type not accepted")
)

// Magic byte prefixes per extension. An empty list means "no signature".
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".webp": {{0x52, 0x49, 0x46, 0x46}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
	".docx": {{0x50, 0x4B, 0x03, 0x04}},
}

var allowed = map[Kind]map[string]bool{
	KindDocument: {".pdf": true, ".doc": true, ".docx": true},
	KindImage:    {".jpg": true, ".jpeg": true, ".png": true, ".webp": true},
}

// application/octet-stream is never accepted on its own
var strictMIMETypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/zip":    true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// MaxSize per kind in bytes.
var MaxSize = map[Kind]int{
	KindDocument: 5 << 20,
	KindImage:    2 << 20,
}

// Validate checks extension whitelist, magic bytes and sniffed MIME type.
func Validate(kind Kind, filename string, data []byte) (Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return Result{}, ErrNoExtension
	}
	if !allowed[kind][ext] {
		return Result{}, fmt.Errorf("%w: %s", ErrTypeNotAccepted, ext)
	}
	if len(data) == 0 {
		return Result{}, ErrEmptyFile
	}
	if limit := MaxSize[kind]; limit > 0 && len(data) > limit {
		return Result{}, ErrTooLarge
	}
	if !hasMagicPrefix(ext, data) {
		return Result{}, ErrSpoofedContent
	}

	detected := http.DetectContentType(data)
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	// Word documents are frequently sniffed as octet-stream; their magic
	// bytes were already checked above.
	if detected == "application/octet-stream" && ext != ".doc" && ext != ".docx" {
		return Result{}, fmt.Errorf("%w: undetermined binary", ErrTypeNotAccepted)
	}
	if detected != "application/octet-stream" && !strictMIMETypes[detected] {
		return Result{}, fmt.Errorf("%w: %s", ErrTypeNotAccepted, detected)
	}

	return Result{Extension: ext, ContentType: contentTypeByExt[ext]}, nil
}

func hasMagicPrefix(ext string, data []byte) bool {
	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}
	if len(signatures) == 0 {
		return true
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// SanitizeFilename keeps ASCII letters, digits, '-' and '_' of the base name.
func SanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	base = strings.ReplaceAll(base, " ", "_")

	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	if b.Len() > 64 {
		return b.String()[:64]
	}
	return b.String()
}
