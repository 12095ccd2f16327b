package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	UploadLogo(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetMine implements CompanyHandler.
func (c *CompanyHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := c.companyService.Get(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UploadLogo implements CompanyHandler. Expects a multipart form with a "logo" file.
func (c *CompanyHandlerImpl) UploadLogo(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, company.MaxLogoSize+(1<<20))
	if err := r.ParseMultipartForm(company.MaxLogoSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("logo")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	req := company.UploadLogoRequest{}
	if file != nil {
		defer file.Close()
		req.File = file
		req.Filename = fileHeader.Filename
		req.Size = fileHeader.Size
	}

	result, err := c.companyService.UploadLogo(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to upload company logo", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
