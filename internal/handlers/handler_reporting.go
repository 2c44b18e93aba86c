package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
)

// reportingHandler serves the derived financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(reportingService portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// pointInTimeReport handles the asOf-parameterized reports.
func (h *reportingHandler) pointInTimeReport(c *gin.Context, logMsg string, generate func(companyID string, asOf time.Time) (interface{}, error)) {
	_, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	asOf, err := parseDateQueryDefault(c, "asOf", time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := generate(companyID, asOf)
	if err != nil {
		respondWithError(c, err, logMsg)
		return
	}
	c.JSON(http.StatusOK, report)
}

// periodReport handles the startDate/endDate-parameterized reports.
func (h *reportingHandler) periodReport(c *gin.Context, logMsg string, generate func(companyID string, start, end time.Time) (interface{}, error)) {
	_, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	startDate, err := parseDateQuery(c, "startDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	endDate, err := parseDateQuery(c, "endDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not precede startDate"})
		return
	}

	report, err := generate(companyID, startDate, endDate)
	if err != nil {
		respondWithError(c, err, logMsg)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Description Statement of financial position as of a date, with current-year net income folded into equity
// @Tags reports
// @Produce json
// @Param asOf query string false "As-of date (yyyy-mm-dd), defaults to today"
// @Success 200 {object} domain.BalanceSheetReport
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	h.pointInTimeReport(c, "Failed to generate balance sheet", func(companyID string, asOf time.Time) (interface{}, error) {
		return h.reportingService.GenerateBalanceSheet(c.Request.Context(), companyID, asOf)
	})
}

// getIncomeStatement godoc
// @Summary Income statement
// @Description Period statement of earnings bucketed by account subType
// @Tags reports
// @Produce json
// @Param startDate query string true "Inclusive period start (yyyy-mm-dd)"
// @Param endDate query string true "Inclusive period end (yyyy-mm-dd)"
// @Success 200 {object} domain.IncomeStatementReport
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	h.periodReport(c, "Failed to generate income statement", func(companyID string, start, end time.Time) (interface{}, error) {
		return h.reportingService.GenerateIncomeStatement(c.Request.Context(), companyID, start, end)
	})
}

// getCashFlowStatement godoc
// @Summary Cash flow statement
// @Description Indirect-method statement of cash flows for a period
// @Tags reports
// @Produce json
// @Param startDate query string true "Inclusive period start (yyyy-mm-dd)"
// @Param endDate query string true "Inclusive period end (yyyy-mm-dd)"
// @Success 200 {object} domain.CashFlowReport
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlowStatement(c *gin.Context) {
	h.periodReport(c, "Failed to generate cash flow statement", func(companyID string, start, end time.Time) (interface{}, error) {
		return h.reportingService.GenerateCashFlowStatement(c.Request.Context(), companyID, start, end)
	})
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Every account's balance as debit/credit columns as of a date
// @Tags reports
// @Produce json
// @Param asOf query string false "As-of date (yyyy-mm-dd), defaults to today"
// @Success 200 {object} domain.TrialBalanceReport
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	h.pointInTimeReport(c, "Failed to generate trial balance", func(companyID string, asOf time.Time) (interface{}, error) {
		return h.reportingService.GenerateTrialBalance(c.Request.Context(), companyID, asOf)
	})
}

// getARAging godoc
// @Summary Accounts receivable aging
// @Description Open customer invoices bucketed by days overdue
// @Tags reports
// @Produce json
// @Param asOf query string false "As-of date (yyyy-mm-dd), defaults to today"
// @Success 200 {object} domain.AgingReport
// @Router /reports/ar-aging [get]
func (h *reportingHandler) getARAging(c *gin.Context) {
	h.pointInTimeReport(c, "Failed to generate AR aging report", func(companyID string, asOf time.Time) (interface{}, error) {
		return h.reportingService.GenerateARAgingReport(c.Request.Context(), companyID, asOf)
	})
}

// getAPAging godoc
// @Summary Accounts payable aging
// @Description Open supplier bills bucketed by days overdue
// @Tags reports
// @Produce json
// @Param asOf query string false "As-of date (yyyy-mm-dd), defaults to today"
// @Success 200 {object} domain.AgingReport
// @Router /reports/ap-aging [get]
func (h *reportingHandler) getAPAging(c *gin.Context) {
	h.pointInTimeReport(c, "Failed to generate AP aging report", func(companyID string, asOf time.Time) (interface{}, error) {
		return h.reportingService.GenerateAPAgingReport(c.Request.Context(), companyID, asOf)
	})
}

// registerReportingRoutes registers the financial statement routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/cash-flow", h.getCashFlowStatement)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/ar-aging", h.getARAging)
		reports.GET("/ap-aging", h.getAPAging)
	}
}
