package email

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// EmailService defines the interface for sending emails
type EmailService interface {
	SendPayslip(to string, data PayslipEmailData, attachment Attachment) error
	SendInvoice(to string, data InvoiceEmailData, attachment Attachment) error
	SendOverdueReminder(to string, data InvoiceEmailData) error
}

type PayslipEmailData struct {
	EmployeeName  string
	CompanyName   string
	PayslipNumber string
	PeriodStart   string
	PeriodEnd     string
	NetSalary     string
}

type InvoiceEmailData struct {
	ClientName    string
	CompanyName   string
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	TotalAmount   string
	BalanceAmount string
	DaysOverdue   int
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

// SendPayslip sends a payslip to the employee with the PDF attached
func (s *emailServiceImpl) SendPayslip(to string, data PayslipEmailData, attachment Attachment) error {
	body, err := s.render("payslip.html", data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Payslip %s (%s to %s)", data.PayslipNumber, data.PeriodStart, data.PeriodEnd)
	return s.sendHTML(to, subject, body, &attachment)
}

// SendInvoice sends an invoice to the client with the PDF attached
func (s *emailServiceImpl) SendInvoice(to string, data InvoiceEmailData, attachment Attachment) error {
	body, err := s.render("invoice.html", data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Invoice %s from %s", data.InvoiceNumber, data.CompanyName)
	return s.sendHTML(to, subject, body, &attachment)
}

// SendOverdueReminder reminds a client that an invoice is past its due date
func (s *emailServiceImpl) SendOverdueReminder(to string, data InvoiceEmailData) error {
	body, err := s.render("overdue_reminder.html", data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Reminder: invoice %s is overdue", data.InvoiceNumber)
	return s.sendHTML(to, subject, body, nil)
}

func (s *emailServiceImpl) render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string, attachment *Attachment) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	message, err := buildMessage(fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From), to, subject, htmlBody, attachment)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, s.cfg.From, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

// buildMessage assembles an RFC 5322 message. Without an attachment the body is
// plain text/html; with one it becomes multipart/mixed.
func buildMessage(from, to, subject, htmlBody string, attachment *Attachment) ([]byte, error) {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if attachment == nil {
		msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		msg.WriteString(htmlBody)
		return msg.Bytes(), nil
	}

	mw := multipart.NewWriter(&msg)
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=\"UTF-8\""},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, fmt.Errorf("failed to write body part: %w", err)
	}

	part, err = mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {attachment.ContentType},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Filename})},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment part: %w", err)
	}
	if err := writeBase64Lines(part, attachment.Content); err != nil {
		return nil, fmt.Errorf("failed to write attachment: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart message: %w", err)
	}
	return msg.Bytes(), nil
}

// writeBase64Lines wraps the encoding at 76 characters as RFC 2045 requires.
func writeBase64Lines(w io.Writer, content []byte) error {
	encoded := base64.StdEncoding.EncodeToString(content)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}
