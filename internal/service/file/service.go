package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// Document folders in storage
const (
	FolderPayslips = "payslips"
	FolderInvoices = "invoices"
	folderLogos    = "logos"
)

const (
	maxLogoWidth  = 400
	maxLogoBytes  = 5 << 20
	logoQuality   = 85
	logoExtension = ".jpg"
)

type FileService interface {
	// ArchiveDocument stores a rendered PDF under {folder}/{companyID}/{filename}
	ArchiveDocument(ctx context.Context, folder, companyID string, doc pdf.Document) (string, error)

	// UploadCompanyLogo normalizes the image to a JPEG no wider than maxLogoWidth
	UploadCompanyLogo(ctx context.Context, companyID string, file io.Reader, filename string) (string, error)

	// LoadLogo returns the stored logo bytes for embedding in documents
	LoadLogo(ctx context.Context, path string) ([]byte, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// ArchiveDocument stores a generated PDF. Re-archiving the same number overwrites it.
func (s *fileServiceImpl) ArchiveDocument(ctx context.Context, folder, companyID string, doc pdf.Document) (string, error) {
	key := path.Join(folder, companyID, filepath.Base(doc.Filename))

	storedPath, err := s.storage.Upload(ctx, bytes.NewReader(doc.Content), key, pdf.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", doc.Filename, err)
	}
	return storedPath, nil
}

// UploadCompanyLogo uploads a company logo
func (s *fileServiceImpl) UploadCompanyLogo(ctx context.Context, companyID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(io.LimitReader(file, maxLogoBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > maxLogoBytes {
		return "", fmt.Errorf("logo must not exceed %d bytes", maxLogoBytes)
	}

	normalized, err := normalizeLogo(buffer)
	if err != nil {
		return "", err
	}

	key := path.Join(folderLogos, companyID, "logo-"+uuid.Must(uuid.NewV7()).String()+logoExtension)
	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(normalized), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload company logo: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) LoadLogo(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.storage.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	return content, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// ==================== HELPER FUNCTIONS ====================

// normalizeLogo decodes a JPEG or PNG, scales it down to maxLogoWidth keeping
// the aspect ratio, and re-encodes it as JPEG.
func normalizeLogo(buffer []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxLogoWidth {
		height := bounds.Dy() * maxLogoWidth / bounds.Dx()
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxLogoWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	// JPEG has no alpha; flatten onto white so transparent PNGs do not turn black.
	flat := image.NewRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, flat, &jpeg.Options{Quality: logoQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return out.Bytes(), nil
}
