package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/mocks"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestCompanyID  = "0190a6d2-3c4e-7d8a-9b1c-2d3e4f5a6b7c"
	handlerTestEmployeeID = "0190a6d2-3c4e-7d8a-9b1c-2d3e4f5a6b7d"
)

type RouterTestSuite struct {
	suite.Suite
	jwtService        *jwt.JWTService
	authService       *mocks.AuthService
	companyService    *mocks.CompanyService
	attendanceService *mocks.AttendanceService
	payslipService    *mocks.PayslipService
	invoiceService    *mocks.InvoiceService
	router            *chi.Mux
	managerToken      string
	employeeToken     string
	manager           user.Actor
	employee          user.Actor
}

func (s *RouterTestSuite) SetupTest() {
	var err error
	s.jwtService, err = jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	s.Require().NoError(err)

	s.authService = new(mocks.AuthService)
	s.companyService = new(mocks.CompanyService)
	s.attendanceService = new(mocks.AttendanceService)
	s.payslipService = new(mocks.PayslipService)
	s.invoiceService = new(mocks.InvoiceService)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = NewRouter(config.AppConfig{Name: "bizops-test", Env: "test"}, logger, s.jwtService, Handlers{
		Auth:       NewAuthHandler(s.jwtService, s.authService),
		Company:    NewCompanyHandler(s.companyService),
		Attendance: NewAttendanceHandler(s.attendanceService),
		Payroll:    NewPayrollHandler(s.payslipService),
		Invoice:    NewInvoiceHandler(s.invoiceService),
	})

	companyID := handlerTestCompanyID
	employeeID := handlerTestEmployeeID
	s.manager = user.Actor{UserID: "manager-user", CompanyID: companyID, Role: user.RoleManager}
	s.employee = user.Actor{UserID: "employee-user", CompanyID: companyID, EmployeeID: &employeeID, Role: user.RoleEmployee}

	s.managerToken, _, err = s.jwtService.GenerateAccessToken("manager-user", "boss@example.com", nil, &companyID, user.RoleManager)
	s.Require().NoError(err)
	s.employeeToken, _, err = s.jwtService.GenerateAccessToken("employee-user", "staff@example.com", &employeeID, &companyID, user.RoleEmployee)
	s.Require().NoError(err)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func (s *RouterTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	resp := s.decode(w)
	s.False(resp["success"].(bool))
	return resp["error"].(map[string]interface{})["code"].(string)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ===== AUTH =====

func (s *RouterTestSuite) TestLogin_SetsRefreshCookie() {
	tokens := auth.TokenResponse{AccessToken: "access", AccessTokenExpiresIn: 1, RefreshToken: "refresh", RefreshTokenExpiresIn: 4102444800}
	s.authService.On("Login", mock.Anything, auth.LoginRequest{Email: "boss@example.com", Password: "password123"}, mock.AnythingOfType("auth.SessionTrackingRequest")).
		Return(tokens, nil)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "boss@example.com", "password": "password123"})

	s.Equal(http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal("refresh_token", cookies[0].Name)
	s.Equal("refresh", cookies[0].Value)
	s.True(cookies[0].HttpOnly)
}

func (s *RouterTestSuite) TestLogin_InvalidCredentials() {
	s.authService.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(auth.TokenResponse{}, auth.ErrInvalidCredentials)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "boss@example.com", "password": "wrong-pass"})

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("UNAUTHORIZED", s.errorCode(w))
}

func (s *RouterTestSuite) TestLogin_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.authService.AssertNotCalled(s.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestRefresh_PrefersCookie() {
	s.authService.On("RefreshToken", mock.Anything, auth.RefreshTokenRequest{RefreshToken: "from-cookie"}).
		Return(auth.AccessTokenResponse{AccessToken: "new-access"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"from-body"}`))
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "from-cookie"})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusCreated, w.Code)
	data := s.decode(w)["data"].(map[string]interface{})
	s.Equal("new-access", data["access_token"])
}

func (s *RouterTestSuite) TestRefresh_MissingTokenIsValidationError() {
	w := s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("VALIDATION_ERROR", s.errorCode(w))
}

func (s *RouterTestSuite) TestLogout_ClearsCookie() {
	s.authService.On("Logout", mock.Anything, "refresh-token").Return(nil)

	w := s.do(http.MethodPost, "/api/v1/auth/logout", "", map[string]string{"refresh_token": "refresh-token"})

	s.Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Empty(cookies[0].Value)
	s.authService.AssertExpectations(s.T())
}

// ===== AUTHENTICATION AND ROLES =====

func (s *RouterTestSuite) TestProtectedRoute_RequiresToken() {
	w := s.do(http.MethodGet, "/api/v1/attendance/status", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestProtectedRoute_RejectsRefreshToken() {
	refresh, _, err := s.jwtService.GenerateRefreshToken("manager-user")
	s.Require().NoError(err)

	w := s.do(http.MethodGet, "/api/v1/attendance/status", refresh, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestProtectedRoute_RequiresCompanyScope() {
	token, _, err := s.jwtService.GenerateAccessToken("lonely-user", "x@example.com", nil, nil, user.RoleEmployee)
	s.Require().NoError(err)

	w := s.do(http.MethodGet, "/api/v1/attendance/status", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestManagerRoute_ForbiddenForEmployee() {
	w := s.do(http.MethodGet, "/api/v1/invoices", s.employeeToken, nil)

	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("FORBIDDEN", s.errorCode(w))
	s.invoiceService.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestAttendanceList_RequiresViewAllPermission() {
	w := s.do(http.MethodGet, "/api/v1/attendance?employee_id="+handlerTestEmployeeID, s.employeeToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
}

// ===== ATTENDANCE =====

func (s *RouterTestSuite) TestClockIn_BuildsActorFromClaims() {
	s.attendanceService.On("ClockIn", mock.Anything, s.employee, attendance.ClockRequest{}).
		Return(attendance.EntryResponse{ID: "entry-1", EntryType: attendance.EntryTypeClockIn}, nil)

	w := s.do(http.MethodPost, "/api/v1/attendance/clock-in", s.employeeToken, nil)

	s.Equal(http.StatusCreated, w.Code)
	s.attendanceService.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestClockIn_AlreadyClockedInIsConflict() {
	s.attendanceService.On("ClockIn", mock.Anything, s.employee, mock.Anything).
		Return(attendance.EntryResponse{}, attendance.ErrAlreadyClockedIn)

	w := s.do(http.MethodPost, "/api/v1/attendance/clock-in", s.employeeToken, nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterTestSuite) TestClockOut_OutsideWindowIsBadRequest() {
	s.attendanceService.On("ClockOut", mock.Anything, s.employee, mock.Anything).
		Return(attendance.EntryResponse{}, attendance.ErrOutsideClockOutWindow)

	w := s.do(http.MethodPost, "/api/v1/attendance/clock-out", s.employeeToken, nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestSummary_PassesQueryRange() {
	filter := attendance.RangeFilter{EmployeeID: handlerTestEmployeeID, From: "2024-01-01", To: "2024-01-31"}
	s.attendanceService.On("WorkSummary", mock.Anything, s.manager, filter).
		Return(attendance.SummaryResponse{EmployeeID: handlerTestEmployeeID, DaysWorked: 20}, nil)

	w := s.do(http.MethodGet, "/api/v1/attendance/summary?employee_id="+handlerTestEmployeeID+"&from=2024-01-01&to=2024-01-31", s.managerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].(map[string]interface{})
	s.Equal(float64(20), data["days_worked"])
}

// ===== PAYSLIPS =====

func (s *RouterTestSuite) TestGeneratePayslip_OverlapIsConflict() {
	s.payslipService.On("Generate", mock.Anything, s.manager, mock.AnythingOfType("payroll.GenerateRequest")).
		Return(payroll.PayslipResponse{}, payroll.ErrPayslipPeriodOverlap)

	w := s.do(http.MethodPost, "/api/v1/payslips/generate", s.managerToken, map[string]string{
		"employee_id":      handlerTestEmployeeID,
		"pay_period_start": "2024-01-01",
		"pay_period_end":   "2024-01-31",
	})

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("CONFLICT", s.errorCode(w))
}

func (s *RouterTestSuite) TestGenerateMine_ValidationError() {
	var verrs validator.ValidationErrors
	verrs.Add("monthly_salary", "monthly_salary must be a number")
	s.payslipService.On("GenerateMine", mock.Anything, s.employee, mock.Anything).Return(payroll.PayslipResponse{}, verrs)

	w := s.do(http.MethodPost, "/api/v1/payslips/generate-my", s.employeeToken, map[string]string{"monthly_salary": "abc"})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	details := s.decode(w)["error"].(map[string]interface{})["details"].(map[string]interface{})
	s.Contains(details, "monthly_salary")
}

func (s *RouterTestSuite) TestGetPayslip_ForeignPayslipIsForbidden() {
	id := newID()
	s.payslipService.On("Get", mock.Anything, s.employee, id).Return(payroll.PayslipResponse{}, payroll.ErrUnauthorized)

	w := s.do(http.MethodGet, "/api/v1/payslips/"+id, s.employeeToken, nil)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestGetPayslip_InvalidID() {
	w := s.do(http.MethodGet, "/api/v1/payslips/not-a-uuid", s.managerToken, nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.payslipService.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestPayslipPDF() {
	id := newID()
	s.payslipService.On("RenderPDF", mock.Anything, s.employee, id).
		Return(pdf.Document{Filename: "PS2024010001.pdf", Content: []byte("%PDF-1.3")}, nil)

	w := s.do(http.MethodGet, "/api/v1/payslips/"+id+"/pdf?download=true", s.employeeToken, nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(pdf.ContentType, w.Header().Get("Content-Type"))
	s.Equal(`attachment; filename="PS2024010001.pdf"`, w.Header().Get("Content-Disposition"))
	s.Equal("%PDF-1.3", w.Body.String())
}

func (s *RouterTestSuite) TestListPayslips_Meta() {
	status := "PAID"
	filter := payroll.PayslipFilter{Status: &status, Page: 2, Limit: 10}
	s.payslipService.On("List", mock.Anything, s.manager, filter).Return(payroll.ListPayslipResponse{
		Data:       []payroll.PayslipResponse{{PayslipNumber: "PS2024010001"}},
		TotalCount: 21,
		Page:       2,
		Limit:      10,
	}, nil)

	w := s.do(http.MethodGet, "/api/v1/payslips?status=PAID&page=2&limit=10", s.managerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	meta := s.decode(w)["meta"].(map[string]interface{})
	s.Equal(float64(21), meta["total_items"])
	s.Equal(float64(3), meta["total_pages"])
}

func (s *RouterTestSuite) TestPayslipStatistics_EmployeeForbidden() {
	w := s.do(http.MethodGet, "/api/v1/payslips/statistics?from=2024-01-01&to=2024-12-31", s.employeeToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

// ===== INVOICES =====

func (s *RouterTestSuite) TestRecordPayment_AmountMismatchIsBadRequest() {
	id := newID()
	s.invoiceService.On("RecordPayment", mock.Anything, s.manager, id, invoice.PaymentRequest{Amount: money.Input("200")}).
		Return(invoice.InvoiceResponse{}, invoice.ErrPaymentAmountMismatch)

	w := s.do(http.MethodPost, "/api/v1/invoices/"+id+"/payments", s.managerToken, map[string]interface{}{"amount": 200})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("BAD_REQUEST", s.errorCode(w))
}

func (s *RouterTestSuite) TestDeleteInvoice_NotDraftIsConflict() {
	id := newID()
	s.invoiceService.On("Delete", mock.Anything, s.manager, id).Return(invoice.ErrInvoiceNotDraft)

	w := s.do(http.MethodDelete, "/api/v1/invoices/"+id, s.managerToken, nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterTestSuite) TestGetInvoice_NotFound() {
	id := newID()
	s.invoiceService.On("Get", mock.Anything, s.manager, id).Return(invoice.InvoiceResponse{}, invoice.ErrInvoiceNotFound)

	w := s.do(http.MethodGet, "/api/v1/invoices/"+id, s.managerToken, nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", s.errorCode(w))
}

func (s *RouterTestSuite) TestOverdueRouteIsNotAnID() {
	s.invoiceService.On("ListOverdue", mock.Anything, s.manager).Return([]invoice.InvoiceResponse{}, nil)

	w := s.do(http.MethodGet, "/api/v1/invoices/overdue", s.managerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	s.invoiceService.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestRemoveItem_PassesBothIDs() {
	id, itemID := newID(), newID()
	s.invoiceService.On("RemoveItem", mock.Anything, s.manager, id, itemID).
		Return(invoice.InvoiceResponse{ID: id, InvoiceNumber: "ACME-2024-001"}, nil)

	w := s.do(http.MethodDelete, "/api/v1/invoices/"+id+"/items/"+itemID, s.managerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	s.invoiceService.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestUnexpectedErrorIsInternal() {
	s.invoiceService.On("Statistics", mock.Anything, s.manager).Return(invoice.StatisticsResponse{}, assert.AnError)

	w := s.do(http.MethodGet, "/api/v1/invoices/statistics", s.managerToken, nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("INTERNAL_SERVER_ERROR", s.errorCode(w))
}
