package company

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
)

const MaxLogoSize = 5 << 20

type UploadLogoRequest struct {
	File     io.Reader
	Filename string
	Size     int64
}

func (r *UploadLogoRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil {
		errs.Add("logo", "logo file is required")
	}
	switch strings.ToLower(filepath.Ext(r.Filename)) {
	case ".jpg", ".jpeg", ".png":
	default:
		errs.Add("logo", "only jpg, jpeg and png files are allowed")
	}
	if r.Size > MaxLogoSize {
		errs.Add("logo", "logo must not exceed 5MB")
	}

	return errs.Err()
}

type CompanyResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Timezone string  `json:"timezone"`
	LogoURL  *string `json:"logo_url,omitempty"`
}

type UploadLogoResponse struct {
	LogoURL string `json:"logo_url"`
}
