package company

import (
	"context"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
)

type CompanyService interface {
	Get(ctx context.Context, actor user.Actor) (CompanyResponse, error)
	UploadLogo(ctx context.Context, actor user.Actor, req UploadLogoRequest) (UploadLogoResponse, error)
}
