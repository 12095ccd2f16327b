package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	UpdateLogo(ctx context.Context, id string, logoPath string) error
}
