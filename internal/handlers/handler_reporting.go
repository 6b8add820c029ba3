package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
	"github.com/wealthpilot/ledger/internal/dto"
	"github.com/wealthpilot/ledger/internal/middleware"
)

const reportDateFormat = "2006-01-02"

// reportingHandler handles HTTP requests for derived financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// parseDateParam reads a query date in YYYY-MM-DD form, falling back to the
// given default when absent.
func parseDateParam(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	t, err := time.Parse(reportDateFormat, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("ownerID")

	asOf, ok := parseDateParam(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}
	// Include everything posted on the asOf day itself
	asOf = asOf.AddDate(0, 0, 1).Add(-time.Nanosecond)

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), ownerID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, asOf))
}

func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("ownerID")

	// An omitted from means "since the beginning of the books"
	from, ok := parseDateParam(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to", time.Now().UTC())
	if !ok {
		return
	}
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), ownerID, from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate profit and loss report")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, from, to))
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("ownerID")

	asOf, ok := parseDateParam(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}
	asOf = asOf.AddDate(0, 0, 1).Add(-time.Nanosecond)

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), ownerID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf))
}

func (h *reportingHandler) accountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("ownerID")
	accountCode := c.Param("accountCode")

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for accountLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	ledger, nextToken, err := h.reportingService.AccountLedger(c.Request.Context(), ownerID, accountCode, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate account ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(ledger, nextToken))
}

// registerReportingRoutes registers report generation routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingService) {
	handler := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", handler.trialBalance)
		reports.GET("/profit-and-loss", handler.profitAndLoss)
		reports.GET("/balance-sheet", handler.balanceSheet)
		reports.GET("/accounts/:accountCode/ledger", handler.accountLedger)
	}
}
