package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/sequence"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/bizops-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/bizops-backend-go/internal/service/file"
	"github.com/google/uuid"
)

type InvoiceServiceImpl struct {
	transactor   postgresql.Transactor
	invoiceRepo  invoice.InvoiceRepository
	companyRepo  company.CompanyRepository
	userRepo     user.UserRepository
	projectRepo  project.ProjectRepository
	sequences    sequence.Generator
	fileService  file.FileService
	emailService email.EmailService
	cfg          config.InvoiceConfig
	defaultLoc   *time.Location
	now          func() time.Time
}

func NewInvoiceService(
	transactor postgresql.Transactor,
	invoiceRepo invoice.InvoiceRepository,
	companyRepo company.CompanyRepository,
	userRepo user.UserRepository,
	projectRepo project.ProjectRepository,
	sequences sequence.Generator,
	fileService file.FileService,
	emailService email.EmailService,
	cfg config.InvoiceConfig,
	defaultLoc *time.Location,
) invoice.InvoiceService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &InvoiceServiceImpl{
		transactor:   transactor,
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		sequences:    sequences,
		fileService:  fileService,
		emailService: emailService,
		cfg:          cfg,
		defaultLoc:   defaultLoc,
		now:          time.Now,
	}
}

// Create implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Create(ctx context.Context, actor user.Actor, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	comp, err := s.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if _, err := s.userRepo.GetByID(ctx, actor.UserID); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	inv := invoice.Invoice{
		ID:                 uuid.Must(uuid.NewV7()).String(),
		CompanyID:          actor.CompanyID,
		CreatedBy:          actor.UserID,
		ClientName:         strings.TrimSpace(req.ClientName),
		ClientEmail:        req.ClientEmail,
		ClientAddress:      req.ClientAddress,
		ClientPhone:        req.ClientPhone,
		Status:             invoice.StatusDraft,
		TaxRate:            req.TaxRateValue,
		Notes:              req.Notes,
		TermsAndConditions: req.TermsAndConditions,
	}

	if req.ProjectID != nil && *req.ProjectID != "" {
		proj, err := s.projectRepo.GetByID(ctx, *req.ProjectID, actor.CompanyID)
		if err != nil {
			return invoice.InvoiceResponse{}, err
		}
		inv.ProjectID = &proj.ID
		inv.ProjectName = &proj.Name
		if inv.ClientName == "" && proj.ClientName != nil {
			inv.ClientName = *proj.ClientName
		}
		if (inv.ClientEmail == nil || *inv.ClientEmail == "") && proj.ClientEmail != nil {
			inv.ClientEmail = proj.ClientEmail
		}
	}
	if inv.ClientName == "" {
		var errs validator.ValidationErrors
		errs.Add("client_name", "client_name is required when the project has no client")
		return invoice.InvoiceResponse{}, errs
	}

	today := s.today(comp.Location(s.defaultLoc))
	inv.IssueDate = today
	if req.IssueDateTime != nil {
		inv.IssueDate = *req.IssueDateTime
	}
	inv.DueDate = inv.IssueDate.AddDate(0, 0, s.cfg.DefaultDueDays)
	if req.DueDateTime != nil {
		inv.DueDate = *req.DueDateTime
	}
	if inv.DueDate.Before(inv.IssueDate) {
		return invoice.InvoiceResponse{}, invoice.ErrInvalidDueDate
	}

	if err := inv.ReplaceItems(withIDs(req.ParsedItems)); err != nil {
		return invoice.InvoiceResponse{}, err
	}
	inv.Status = req.StatusValue

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.InvoiceNumber != nil && strings.TrimSpace(*req.InvoiceNumber) != "" {
			inv.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
		} else {
			number, err := s.nextNumber(txCtx, comp, today.Year())
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
		}

		created, err := s.invoiceRepo.Create(txCtx, inv)
		if err != nil {
			return err
		}
		inv = created
		return nil
	})
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	slog.Info("Invoice created", "company_id", inv.CompanyID, "number", inv.InvoiceNumber, "total", inv.TotalAmount.String())
	return invoice.NewInvoiceResponse(inv, today), nil
}

// nextNumber allocates {ORGCODE}-{year}-{seq:03}. The stored maximum is the
// floor so numbers stay monotonic when the counter backend starts empty.
func (s *InvoiceServiceImpl) nextNumber(ctx context.Context, comp company.Company, year int) (string, error) {
	prefix := invoice.NumberPrefix(company.Code(comp.Name), year)

	floor, err := s.invoiceRepo.MaxSequence(ctx, comp.ID, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to read invoice sequence: %w", err)
	}
	seq, err := s.sequences.Next(ctx, invoice.SequenceKey(comp.ID, prefix), floor)
	if err != nil {
		return "", err
	}
	return invoice.FormatNumber(prefix, seq), nil
}

// ========== QUERIES ==========

// Get implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (invoice.InvoiceResponse, error) {
	inv, err := s.load(ctx, actor, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	return invoice.NewInvoiceResponse(inv, s.today(s.defaultLoc)), nil
}

// List implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) List(ctx context.Context, actor user.Actor, filter invoice.InvoiceFilter) (invoice.ListInvoiceResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.ListInvoiceResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return invoice.ListInvoiceResponse{}, err
	}

	invoices, total, err := s.invoiceRepo.List(ctx, actor.CompanyID, filter)
	if err != nil {
		return invoice.ListInvoiceResponse{}, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoice.ListInvoiceResponse{
		Data:       s.responses(invoices),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ListOverdue implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) ListOverdue(ctx context.Context, actor user.Actor) ([]invoice.InvoiceResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListOverdue(ctx, actor.CompanyID, s.today(s.defaultLoc))
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue invoices: %w", err)
	}
	return s.responses(invoices), nil
}

// Statistics implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Statistics(ctx context.Context, actor user.Actor) (invoice.StatisticsResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.StatisticsResponse{}, err
	}

	today := s.today(s.defaultLoc)
	stats, err := s.invoiceRepo.Statistics(ctx, actor.CompanyID, today, today.Year())
	if err != nil {
		return invoice.StatisticsResponse{}, fmt.Errorf("failed to compute invoice statistics: %w", err)
	}
	return invoice.StatisticsResponse{
		TotalInvoices:    stats.TotalCount,
		DraftInvoices:    stats.DraftCount,
		PaidInvoices:     stats.PaidCount,
		OverdueInvoices:  stats.OverdueCount,
		TotalOutstanding: stats.TotalOutstanding,
		YearlyRevenue:    stats.YearlyRevenue,
	}, nil
}

// ========== MUTATIONS ==========

// Update implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Update(ctx context.Context, actor user.Actor, req invoice.UpdateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	return s.mutate(ctx, actor, req.ID, true, func(ctx context.Context, inv *invoice.Invoice) error {
		inv.ProjectID, inv.ProjectName = nil, nil
		if req.ProjectID != nil && *req.ProjectID != "" {
			proj, err := s.projectRepo.GetByID(ctx, *req.ProjectID, actor.CompanyID)
			if err != nil {
				return err
			}
			inv.ProjectID = &proj.ID
			inv.ProjectName = &proj.Name
		}

		inv.ClientName = strings.TrimSpace(req.ClientName)
		inv.ClientEmail = req.ClientEmail
		inv.ClientAddress = req.ClientAddress
		inv.ClientPhone = req.ClientPhone
		inv.TaxRate = req.TaxRateValue
		inv.Notes = req.Notes
		inv.TermsAndConditions = req.TermsAndConditions
		if req.IssueDateTime != nil {
			inv.IssueDate = *req.IssueDateTime
		}
		if req.DueDateTime != nil {
			inv.DueDate = *req.DueDateTime
		}
		if inv.DueDate.Before(inv.IssueDate) {
			return invoice.ErrInvalidDueDate
		}

		return inv.ReplaceItems(withIDs(req.ParsedItems))
	})
}

// UpdateStatus implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) UpdateStatus(ctx context.Context, actor user.Actor, id string, req invoice.UpdateStatusRequest) (invoice.InvoiceResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.InvoiceResponse{}, err
	}
	status, err := req.Parse()
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	return s.mutate(ctx, actor, id, false, func(_ context.Context, inv *invoice.Invoice) error {
		slog.Info("Invoice status changed", "number", inv.InvoiceNumber, "from", inv.Status, "to", status)
		inv.Status = status
		return nil
	})
}

// AddItem implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) AddItem(ctx context.Context, actor user.Actor, req invoice.AddItemRequest) (invoice.InvoiceResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	item := req.Item
	item.ID = uuid.Must(uuid.NewV7()).String()
	return s.mutate(ctx, actor, req.InvoiceID, true, func(_ context.Context, inv *invoice.Invoice) error {
		return inv.AddItem(item)
	})
}

// RemoveItem implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) RemoveItem(ctx context.Context, actor user.Actor, invoiceID, itemID string) (invoice.InvoiceResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	return s.mutate(ctx, actor, invoiceID, true, func(_ context.Context, inv *invoice.Invoice) error {
		return inv.RemoveItem(itemID)
	})
}

// RecordPayment implements invoice.InvoiceService. Only a payment of the full total is accepted.
func (s *InvoiceServiceImpl) RecordPayment(ctx context.Context, actor user.Actor, id string, req invoice.PaymentRequest) (invoice.InvoiceResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	paidOn := s.today(s.defaultLoc)
	if req.Date != nil {
		paidOn = *req.Date
	}
	return s.mutate(ctx, actor, id, false, func(_ context.Context, inv *invoice.Invoice) error {
		if err := inv.RecordPayment(req.AmountValue, paidOn); err != nil {
			return err
		}
		slog.Info("Invoice paid", "number", inv.InvoiceNumber, "amount", req.AmountValue.String())
		return nil
	})
}

// Delete implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	return s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		inv, err := s.load(txCtx, actor, id)
		if err != nil {
			return err
		}
		if inv.Status != invoice.StatusDraft {
			return invoice.ErrInvoiceNotDraft
		}
		return s.invoiceRepo.Delete(txCtx, id, actor.CompanyID)
	})
}

// mutate loads the invoice, applies fn and persists the header (and the items
// when itemsChanged) in one transaction.
func (s *InvoiceServiceImpl) mutate(ctx context.Context, actor user.Actor, id string, itemsChanged bool, fn func(ctx context.Context, inv *invoice.Invoice) error) (invoice.InvoiceResponse, error) {
	var inv invoice.Invoice
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		loaded, err := s.load(txCtx, actor, id)
		if err != nil {
			return err
		}
		inv = loaded

		if err := fn(txCtx, &inv); err != nil {
			return err
		}
		if itemsChanged {
			if err := s.invoiceRepo.ReplaceItems(txCtx, inv.ID, inv.Items); err != nil {
				return fmt.Errorf("failed to replace invoice items: %w", err)
			}
		}
		if err := s.invoiceRepo.Update(txCtx, inv); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	return invoice.NewInvoiceResponse(inv, s.today(s.defaultLoc)), nil
}

func (s *InvoiceServiceImpl) load(ctx context.Context, actor user.Actor, id string) (invoice.Invoice, error) {
	if err := actor.RequireManager(); err != nil {
		return invoice.Invoice{}, err
	}
	if !validator.IsValidUUID(id) {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	return s.invoiceRepo.GetByID(ctx, id, actor.CompanyID)
}

// ========== DOCUMENTS ==========

// RenderPDF implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) RenderPDF(ctx context.Context, actor user.Actor, id string) (pdf.Document, error) {
	inv, err := s.load(ctx, actor, id)
	if err != nil {
		return pdf.Document{}, err
	}
	comp, err := s.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return pdf.Document{}, err
	}
	return s.render(ctx, comp, inv)
}

// Send implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Send(ctx context.Context, actor user.Actor, id string) (invoice.SendResponse, error) {
	inv, err := s.load(ctx, actor, id)
	if err != nil {
		return invoice.SendResponse{}, err
	}
	if inv.ClientEmail == nil || strings.TrimSpace(*inv.ClientEmail) == "" {
		return invoice.SendResponse{}, invoice.ErrRecipientMissing
	}

	comp, err := s.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return invoice.SendResponse{}, err
	}
	doc, err := s.render(ctx, comp, inv)
	if err != nil {
		return invoice.SendResponse{}, err
	}

	archivePath, err := s.fileService.ArchiveDocument(ctx, file.FolderInvoices, actor.CompanyID, doc)
	if err != nil {
		return invoice.SendResponse{}, fmt.Errorf("failed to archive invoice: %w", err)
	}

	attachment := email.Attachment{Filename: doc.Filename, ContentType: pdf.ContentType, Content: doc.Content}
	if err := s.emailService.SendInvoice(*inv.ClientEmail, emailData(comp, inv, 0), attachment); err != nil {
		return invoice.SendResponse{}, fmt.Errorf("failed to email invoice: %w", err)
	}

	if inv.Status == invoice.StatusDraft {
		// Reload under lock; the status may have moved on while the email went out.
		_, err := s.mutate(ctx, actor, id, false, func(_ context.Context, current *invoice.Invoice) error {
			if current.Status == invoice.StatusDraft {
				current.Status = invoice.StatusSent
			}
			inv.Status = current.Status
			return nil
		})
		if err != nil {
			return invoice.SendResponse{}, fmt.Errorf("failed to mark invoice as sent: %w", err)
		}
	}

	slog.Info("Invoice sent", "number", inv.InvoiceNumber, "to", *inv.ClientEmail)
	return invoice.SendResponse{
		InvoiceNumber: inv.InvoiceNumber,
		SentTo:        *inv.ClientEmail,
		ArchivePath:   archivePath,
		Status:        inv.Status,
	}, nil
}

// SendOverdueReminders implements invoice.InvoiceService. A failed email is
// logged and skipped so one bad address does not block the rest.
func (s *InvoiceServiceImpl) SendOverdueReminders(ctx context.Context) (int, error) {
	today := s.today(s.defaultLoc)
	invoices, err := s.invoiceRepo.ListAllOverdue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue invoices: %w", err)
	}

	companies := make(map[string]company.Company)
	sent := 0
	for _, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if inv.ClientEmail == nil || strings.TrimSpace(*inv.ClientEmail) == "" {
			slog.Warn("Overdue invoice has no client email", "invoice_id", inv.ID, "number", inv.InvoiceNumber)
			continue
		}

		comp, ok := companies[inv.CompanyID]
		if !ok {
			comp, err = s.companyRepo.GetByID(ctx, inv.CompanyID)
			if err != nil {
				slog.Error("Failed to load company for overdue reminder", "company_id", inv.CompanyID, "error", err)
				continue
			}
			companies[inv.CompanyID] = comp
		}

		if err := s.emailService.SendOverdueReminder(*inv.ClientEmail, emailData(comp, inv, inv.DaysOverdue(today))); err != nil {
			slog.Error("Failed to send overdue reminder", "number", inv.InvoiceNumber, "error", err)
			continue
		}
		sent++
	}

	slog.Info("Overdue reminders sent", "count", sent, "overdue", len(invoices))
	return sent, nil
}

func (s *InvoiceServiceImpl) render(ctx context.Context, comp company.Company, inv invoice.Invoice) (pdf.Document, error) {
	var logo []byte
	if comp.LogoPath != nil {
		data, err := s.fileService.LoadLogo(ctx, *comp.LogoPath)
		if err != nil {
			slog.Warn("Company logo unavailable, rendering without it", "company_id", comp.ID, "error", err)
		}
		logo = data
	}

	content, err := pdf.Render(invoiceLayout(comp, inv, logo, s.today(comp.Location(s.defaultLoc))))
	if err != nil {
		return pdf.Document{}, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return pdf.Document{Filename: inv.InvoiceNumber + ".pdf", Content: content}, nil
}

func (s *InvoiceServiceImpl) today(loc *time.Location) time.Time {
	y, m, d := s.now().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *InvoiceServiceImpl) responses(invoices []invoice.Invoice) []invoice.InvoiceResponse {
	today := s.today(s.defaultLoc)
	out := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, invoice.NewInvoiceResponse(inv, today))
	}
	return out
}

func withIDs(items []invoice.Item) []invoice.Item {
	out := make([]invoice.Item, len(items))
	for i, item := range items {
		item.ID = uuid.Must(uuid.NewV7()).String()
		out[i] = item
	}
	return out
}

func emailData(comp company.Company, inv invoice.Invoice, daysOverdue int) email.InvoiceEmailData {
	return email.InvoiceEmailData{
		ClientName:    inv.ClientName,
		CompanyName:   comp.Name,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate.Format(validator.DateLayout),
		DueDate:       inv.DueDate.Format(validator.DateLayout),
		TotalAmount:   money.Format(inv.TotalAmount),
		BalanceAmount: money.Format(inv.BalanceAmount),
		DaysOverdue:   daysOverdue,
	}
}
