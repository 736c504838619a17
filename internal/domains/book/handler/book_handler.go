package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// CreateBook adds a book to the catalog
// POST /api/v1/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.respondBookError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// ListBooks lists the catalog with derived status
// GET /api/v1/books?search=
func (h *BookHandler) ListBooks(c *gin.Context) {
	search := c.Query("search")

	books, err := h.bookService.ListBooks(c.Request.Context(), search)
	if err != nil {
		h.respondBookError(c, err)
		return
	}

	if books == nil {
		books = []*model.BookWithStatus{}
	}

	response.Success(c, http.StatusOK, books)
}

// GetBook gets a single book
// GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	book, err := h.bookService.GetBook(c.Request.Context(), id)
	if err != nil {
		h.respondBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// DeleteBook removes a book; loans and waitlist entries cascade
// DELETE /api/v1/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), id); err != nil {
		h.respondBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

func (h *BookHandler) respondBookError(c *gin.Context, err error) {
	var bookErr *model.BookError
	if errors.As(err, &bookErr) {
		switch bookErr.Code {
		case model.ErrCodeBookNotFound:
			response.ErrorResponse(c, http.StatusNotFound, bookErr.Code, bookErr.Message)
		case model.ErrCodeDuplicateTitle:
			response.ErrorResponse(c, http.StatusConflict, bookErr.Code, bookErr.Message)
		default:
			response.InternalServerError(c, bookErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Failed to process request")
}
