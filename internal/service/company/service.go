package company

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/service/file"
)

// logoURLExpiry bounds presigned logo links handed to the frontend.
const logoURLExpiry = time.Hour

type CompanyServiceImpl struct {
	companyRepo company.CompanyRepository
	fileService file.FileService
}

func NewCompanyService(companyRepo company.CompanyRepository, fileService file.FileService) company.CompanyService {
	return &CompanyServiceImpl{
		companyRepo: companyRepo,
		fileService: fileService,
	}
}

// Get implements company.CompanyService.
func (c *CompanyServiceImpl) Get(ctx context.Context, actor user.Actor) (company.CompanyResponse, error) {
	if err := actor.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := c.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	resp := company.CompanyResponse{
		ID:       companyData.ID,
		Name:     companyData.Name,
		Code:     company.Code(companyData.Name),
		Email:    companyData.Email,
		Address:  companyData.Address,
		Phone:    companyData.Phone,
		Timezone: companyData.Timezone,
	}
	if companyData.LogoPath != nil {
		url, err := c.fileService.GetFileURL(ctx, *companyData.LogoPath, logoURLExpiry)
		if err != nil {
			slog.Warn("Failed to resolve company logo URL", "company_id", companyData.ID, "error", err)
		} else {
			resp.LogoURL = &url
		}
	}
	return resp, nil
}

// UploadLogo implements company.CompanyService. The previous logo is removed after the new one is stored.
func (c *CompanyServiceImpl) UploadLogo(ctx context.Context, actor user.Actor, req company.UploadLogoRequest) (company.UploadLogoResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return company.UploadLogoResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return company.UploadLogoResponse{}, err
	}

	companyData, err := c.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return company.UploadLogoResponse{}, err
	}

	logoPath, err := c.fileService.UploadCompanyLogo(ctx, companyData.ID, req.File, req.Filename)
	if err != nil {
		return company.UploadLogoResponse{}, fmt.Errorf("failed to upload company logo: %w", err)
	}
	if err := c.companyRepo.UpdateLogo(ctx, companyData.ID, logoPath); err != nil {
		if delErr := c.fileService.DeleteFile(ctx, logoPath); delErr != nil {
			slog.Warn("Failed to clean up orphaned logo", "path", logoPath, "error", delErr)
		}
		return company.UploadLogoResponse{}, fmt.Errorf("failed to update company logo: %w", err)
	}

	if companyData.LogoPath != nil && *companyData.LogoPath != logoPath {
		if err := c.fileService.DeleteFile(ctx, *companyData.LogoPath); err != nil {
			slog.Warn("Failed to delete previous logo", "path", *companyData.LogoPath, "error", err)
		}
	}

	url, err := c.fileService.GetFileURL(ctx, logoPath, logoURLExpiry)
	if err != nil {
		return company.UploadLogoResponse{}, fmt.Errorf("failed to resolve logo URL: %w", err)
	}

	slog.Info("Company logo updated", "company_id", companyData.ID, "path", logoPath)
	return company.UploadLogoResponse{LogoURL: url}, nil
}
