package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/response"
)

type InvoiceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListOverdue(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// Items and payments
	AddItem(w http.ResponseWriter, r *http.Request)
	RemoveItem(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)

	// Documents
	DownloadPDF(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
}

type invoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &invoiceHandlerImpl{invoiceService: invoiceService}
}

func (h *invoiceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req invoice.CreateInvoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.invoiceService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to create invoice", "company_id", actor.CompanyID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created", result)
}

func (h *invoiceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.invoiceService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *invoiceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, limit := pagination(r)
	filter := invoice.InvoiceFilter{
		Status:    optionalQuery(r, "status"),
		Search:    optionalQuery(r, "search"),
		ProjectID: optionalQuery(r, "project_id"),
		Page:      page,
		Limit:     limit,
	}

	result, err := h.invoiceService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *invoiceHandlerImpl) ListOverdue(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.invoiceService.ListOverdue(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *invoiceHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.invoiceService.Statistics(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *invoiceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req invoice.UpdateInvoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.invoiceService.Update(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice updated", result)
}

func (h *invoiceHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req invoice.UpdateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.invoiceService.UpdateStatus(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice status updated", result)
}

func (h *invoiceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice deleted successfully", nil)
}

// ========== ITEMS AND PAYMENTS ==========

func (h *invoiceHandlerImpl) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req invoice.AddItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.InvoiceID = id

	result, err := h.invoiceService.AddItem(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Item added", result)
}

func (h *invoiceHandlerImpl) RemoveItem(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}

	result, err := h.invoiceService.RemoveItem(r.Context(), actor, id, itemID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Item removed", result)
}

func (h *invoiceHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req invoice.PaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.invoiceService.RecordPayment(r.Context(), actor, id, req)
	if err != nil {
		slog.Warn("Payment rejected", "invoice_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment recorded", result)
}

// ========== DOCUMENTS ==========

func (h *invoiceHandlerImpl) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.invoiceService.RenderPDF(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePDF(w, doc, r.URL.Query().Get("download") != "true")
}

func (h *invoiceHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.invoiceService.Send(r.Context(), actor, id)
	if err != nil {
		slog.Error("Failed to send invoice", "invoice_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice sent", result)
}
