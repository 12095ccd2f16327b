package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Generation
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateMine(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	PreviewPDF(w http.ResponseWriter, r *http.Request)

	// Payslip records
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)

	// Documents
	DownloadPDF(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payslipService payroll.PayslipService
}

func NewPayrollHandler(payslipService payroll.PayslipService) PayrollHandler {
	return &payrollHandlerImpl{payslipService: payslipService}
}

// ========== GENERATION ==========

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.payslipService.Generate(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to generate payslip", "employee_id", req.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated", result)
}

func (h *payrollHandlerImpl) GenerateMine(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.payslipService.GenerateMine(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to generate own payslip", "user_id", actor.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated", result)
}

func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.payslipService.Preview(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) PreviewPDF(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.payslipService.PreviewPDF(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePDF(w, doc, true)
}

// ========== PAYSLIP RECORDS ==========

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.payslipService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payslipService.ListMine(r.Context(), actor, payslipFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := payslipFilter(r)
	filter.EmployeeID = optionalQuery(r, "employee_id")

	result, err := h.payslipService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req payroll.UpdatePayslipRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.payslipService.Update(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip updated", result)
}

func (h *payrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req payroll.UpdateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.payslipService.UpdateStatus(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip status updated", result)
}

func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.payslipService.Delete(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip deleted successfully", nil)
}

func (h *payrollHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := payroll.StatisticsRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	result, err := h.payslipService.Statistics(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== DOCUMENTS ==========

func (h *payrollHandlerImpl) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.payslipService.RenderPDF(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePDF(w, doc, r.URL.Query().Get("download") != "true")
}

func (h *payrollHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.payslipService.Send(r.Context(), actor, id)
	if err != nil {
		slog.Error("Failed to send payslip", "payslip_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip sent", result)
}

func payslipFilter(r *http.Request) payroll.PayslipFilter {
	page, limit := pagination(r)
	return payroll.PayslipFilter{
		Status: optionalQuery(r, "status"),
		Page:   page,
		Limit:  limit,
	}
}
