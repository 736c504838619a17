package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/service"
	"library-backend/internal/shared/response"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// CreateMember registers a new member
// POST /api/v1/members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req model.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), req)
	if err != nil {
		h.respondMemberError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, member)
}

// ListMembers lists members with their open loans
// GET /api/v1/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers(c.Request.Context())
	if err != nil {
		h.respondMemberError(c, err)
		return
	}

	if members == nil {
		members = []*model.MemberWithLoans{}
	}

	response.Success(c, http.StatusOK, members)
}

func (h *MemberHandler) respondMemberError(c *gin.Context, err error) {
	var memberErr *model.MemberError
	if errors.As(err, &memberErr) {
		switch memberErr.Code {
		case model.ErrCodeMemberNotFound:
			response.ErrorResponse(c, http.StatusNotFound, memberErr.Code, memberErr.Message)
		case model.ErrCodeDuplicateMember:
			response.ErrorResponse(c, http.StatusConflict, memberErr.Code, memberErr.Message)
		default:
			response.InternalServerError(c, memberErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Failed to process request")
}
