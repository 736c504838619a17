package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/response"
)

// =====================================================
// LOAN HANDLER
// =====================================================

// LoanHandler exposes the loan engine over HTTP. The lend/return
// endpoints answer with flat bodies carrying `message` and, for a new
// loan, `dueDate` (ISO date): the contract the web client renders.
type LoanHandler struct {
	loanService service.LoanService
}

func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// RequestLoan lends a book or enqueues the member on its waitlist
// POST /api/v1/loans
func (h *LoanHandler) RequestLoan(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Step 2: Validate request
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bookID, _ := uuid.Parse(req.BookID)
	memberID, _ := uuid.Parse(req.MemberID)

	// Step 3: Call engine
	result, err := h.loanService.RequestLoan(c.Request.Context(), bookID, memberID)
	if err != nil {
		h.respondLoanError(c, err)
		return
	}

	// Step 4: Map outcome
	switch result.Outcome {
	case model.OutcomeLoaned:
		c.JSON(http.StatusCreated, gin.H{
			"message": "Book loaned successfully",
			"dueDate": model.FormatDueDate(result.Loan.DueDate),
		})
	case model.OutcomeWaitlisted:
		c.JSON(http.StatusOK, gin.H{
			"message": "Book is currently on loan. You have been added to the waitlist.",
		})
	}
}

// ReturnBook processes a return and promotes the next waiting member
// POST /api/v1/loans/return
func (h *LoanHandler) ReturnBook(c *gin.Context) {
	var req model.ReturnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bookID, _ := uuid.Parse(req.BookID)

	result, err := h.loanService.ReturnBook(c.Request.Context(), bookID)
	if err != nil {
		h.respondLoanError(c, err)
		return
	}

	switch result.Outcome {
	case model.OutcomeReassigned:
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf(
				"Book automatically loaned to next member in waitlist (Member ID: %s)",
				result.MemberID,
			),
			"member_id": result.MemberID.String(),
			"dueDate":   model.FormatDueDate(result.Loan.DueDate),
		})
	case model.OutcomeAvailable:
		c.JSON(http.StatusOK, gin.H{
			"message": "Book returned and marked as available.",
		})
	}
}

// GetWaitlist lists waiting members for a book, FIFO
// GET /api/v1/books/:id/waitlist
func (h *LoanHandler) GetWaitlist(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	entries, err := h.loanService.GetWaitlist(c.Request.Context(), bookID)
	if err != nil {
		h.respondLoanError(c, err)
		return
	}

	resp := make([]model.WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, model.NewWaitlistEntryResponse(e))
	}

	response.Success(c, http.StatusOK, resp)
}

// CheckAvailability reports whether a book can be lent right now
// GET /api/v1/books/:id/availability
func (h *LoanHandler) CheckAvailability(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	available, err := h.loanService.CheckAvailability(c.Request.Context(), bookID)
	if err != nil {
		h.respondLoanError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"available": available})
}

// respondLoanError maps engine errors onto HTTP statuses
func (h *LoanHandler) respondLoanError(c *gin.Context, err error) {
	var loanErr *model.LoanError
	if errors.As(err, &loanErr) {
		switch loanErr.Code {
		case model.ErrCodeBookNotFound, model.ErrCodeMemberNotFound:
			response.ErrorResponse(c, http.StatusNotFound, loanErr.Code, loanErr.Message)
		case model.ErrCodeAlreadyOnWaitlist:
			response.ErrorResponse(c, http.StatusConflict, loanErr.Code, loanErr.Message)
		default:
			response.InternalServerError(c, loanErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Failed to process request")
}
