package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Validates the lines and persists a new Draft entry with the next sequential entry number
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Validation failure (unbalanced lines, unknown or inactive account)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines by ID
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	_, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), companyID, c.Param("entryID"))
	if err != nil {
		respondWithError(c, err, "Failed to get journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first, optionally filtered by status, type and date range
// @Tags journal-entries
// @Produce json
// @Param status query string false "Entry status (DRAFT, POSTED, VOID)"
// @Param entryType query string false "Entry type"
// @Param startDate query string false "Inclusive lower bound (yyyy-mm-dd); requires endDate"
// @Param endDate query string false "Inclusive upper bound (yyyy-mm-dd); requires startDate"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	_, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	params := dto.ListJournalEntriesParams{}
	if raw := c.Query("status"); raw != "" {
		status := domain.EntryStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("entryType"); raw != "" {
		entryType := domain.EntryType(raw)
		params.EntryType = &entryType
	}
	if raw := c.Query("startDate"); raw != "" {
		t, err := parseDateQuery(c, "startDate")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseDateQuery(c, "endDate")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params.EndDate = &t
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), companyID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{Entries: dto.ToJournalEntryResponses(entries)})
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Patches header fields and/or replaces the lines of a Draft entry
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Router /journal-entries/{entryID} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), companyID, c.Param("entryID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Transitions the entry Draft -> Posted, appending immutable ledger rows
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Router /journal-entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), companyID, c.Param("entryID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a posted journal entry
// @Description Transitions the entry Posted -> Void, appending reversal rows; original rows stay intact
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Router /journal-entries/{entryID}/void [post]
func (h *journalHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	entry, err := h.journalService.VoidEntry(c.Request.Context(), companyID, c.Param("entryID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to void journal entry")
		return
	}

	logger.Info("Journal entry voided",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Hard-deletes a Draft entry; posted entries can only be voided
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Router /journal-entries/{entryID} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	userID, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), companyID, c.Param("entryID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// registerJournalRoutes registers journal entry routes.
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := group.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/void", h.voidEntry)
	}
}
