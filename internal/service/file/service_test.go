package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) FileService {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)
	return NewFileService(local)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestArchiveDocument(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	key, err := svc.ArchiveDocument(ctx, FolderInvoices, "comp-1", pdf.Document{Filename: "ACME-2025-001.pdf", Content: []byte("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "invoices/comp-1/ACME-2025-001.pdf", key)

	url, err := svc.GetFileURL(ctx, key, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/files/invoices/comp-1/ACME-2025-001.pdf", url)
}

func TestUploadCompanyLogo_ScalesDown(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	key, err := svc.UploadCompanyLogo(ctx, "comp-1", bytes.NewReader(pngBytes(t, 800, 200)), "logo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "logos/comp-1/logo-"))

	content, err := svc.LoadLogo(ctx, key)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestUploadCompanyLogo_RejectsUnknownType(t *testing.T) {
	_, err := newService(t).UploadCompanyLogo(context.Background(), "comp-1", strings.NewReader("GIF89a"), "logo.gif")
	assert.Error(t, err)
}

func TestUploadCompanyLogo_RejectsGarbage(t *testing.T) {
	_, err := newService(t).UploadCompanyLogo(context.Background(), "comp-1", strings.NewReader("not an image"), "logo.png")
	assert.Error(t, err)
}
