package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	calls int
	to    []string
	msg   string
}

func newTestService(t *testing.T, cfg config.SMTPConfig, fail int) (*emailServiceImpl, *captured) {
	t.Helper()
	svc, err := NewEmailService(cfg)
	require.NoError(t, err)

	impl := svc.(*emailServiceImpl)
	impl.backoff = 0
	c := &captured{}
	impl.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		c.calls++
		if c.calls <= fail {
			return errors.New("connection refused")
		}
		c.to = to
		c.msg = string(msg)
		return nil
	}
	return impl, c
}

var smtpCfg = config.SMTPConfig{Host: "smtp.test", Port: 587, From: "billing@acme.test", FromName: "Acme"}

func TestSendInvoice_WithAttachment(t *testing.T) {
	svc, c := newTestService(t, smtpCfg, 0)

	err := svc.SendInvoice("client@globex.test", InvoiceEmailData{
		ClientName:    "Globex",
		CompanyName:   "Acme",
		InvoiceNumber: "ACME-2025-001",
		TotalAmount:   "275.00",
	}, Attachment{Filename: "ACME-2025-001.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.3 test")})

	require.NoError(t, err)
	assert.Equal(t, []string{"client@globex.test"}, c.to)
	assert.Contains(t, c.msg, "multipart/mixed")
	assert.Contains(t, c.msg, `filename=ACME-2025-001.pdf`)
	assert.Contains(t, c.msg, "ACME-2025-001")
	assert.Contains(t, c.msg, "JVBERi0xLjMgdGVzdA==")
}

func TestSendOverdueReminder_PlainHTML(t *testing.T) {
	svc, c := newTestService(t, smtpCfg, 0)

	err := svc.SendOverdueReminder("client@globex.test", InvoiceEmailData{InvoiceNumber: "ACME-2025-002", DaysOverdue: 3})

	require.NoError(t, err)
	assert.NotContains(t, c.msg, "multipart")
	assert.Contains(t, c.msg, "3 day(s) overdue")
}

func TestSend_RetriesThenSucceeds(t *testing.T) {
	svc, c := newTestService(t, smtpCfg, 2)

	err := svc.SendPayslip("jane@acme.test", PayslipEmailData{PayslipNumber: "PS2025030001"}, Attachment{Filename: "p.pdf", ContentType: "application/pdf"})

	require.NoError(t, err)
	assert.Equal(t, 3, c.calls)
}

func TestSend_GivesUpAfterMaxRetries(t *testing.T) {
	svc, c := newTestService(t, smtpCfg, maxRetries)

	err := svc.SendOverdueReminder("client@globex.test", InvoiceEmailData{})

	require.Error(t, err)
	assert.Equal(t, maxRetries, c.calls)
}

func TestSend_SkipsWhenSMTPNotConfigured(t *testing.T) {
	svc, c := newTestService(t, config.SMTPConfig{}, 0)

	require.NoError(t, svc.SendOverdueReminder("client@globex.test", InvoiceEmailData{}))
	assert.Zero(t, c.calls)
}

func TestWriteBase64Lines_Wraps(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, writeBase64Lines(&sb, make([]byte, 120)))
	for _, line := range strings.Split(strings.TrimSpace(sb.String()), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
}
