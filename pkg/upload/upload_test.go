package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF")
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateDocument(t *testing.T) {
	res, err := Validate(KindDocument, "My CV.PDF", pdfBytes())
	require.NoError(t, err)
	assert.Equal(t, ".pdf", res.Extension)
	assert.Equal(t, "application/pdf", res.ContentType)
}

func TestValidateRejections(t *testing.T) {
	_, err := Validate(KindDocument, "resume", pdfBytes())
	assert.ErrorIs(t, err, ErrNoExtension)

	_, err = Validate(KindDocument, "resume.exe", []byte("MZ\x90\x00"))
	assert.ErrorIs(t, err, ErrTypeNotAccepted)

	_, err = Validate(KindDocument, "resume.pdf", []byte("<html>not a pdf</html>"))
	assert.ErrorIs(t, err, ErrSpoofedContent)

	_, err = Validate(KindDocument, "resume.pdf", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Validate(KindImage, "resume.pdf", pdfBytes())
	assert.ErrorIs(t, err, ErrTypeNotAccepted)

	big := append(pdfBytes(), make([]byte, MaxSize[KindDocument])...)
	_, err = Validate(KindDocument, "resume.pdf", big)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestValidateImage(t *testing.T) {
	res, err := Validate(KindImage, "logo.png", pngBytes(t, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_CV_2024", SanitizeFilename("My CV (2024).pdf"))
	assert.Equal(t, "file", SanitizeFilename("履歴書.pdf"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
}

func TestCompressImageScalesDown(t *testing.T) {
	out, err := CompressImage(pngBytes(t, 400, 200), 100, 80)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestFitWithin(t *testing.T) {
	w, h := fitWithin(50, 20, 100)
	assert.Equal(t, []int{50, 20}, []int{w, h})
	w, h = fitWithin(300, 600, 100)
	assert.Equal(t, []int{50, 100}, []int{w, h})
}
