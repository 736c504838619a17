package service

import (
	"context"

	"library-backend/internal/domains/member/model"
)

// MemberService is the member business logic
type MemberService interface {
	CreateMember(ctx context.Context, req model.CreateMemberRequest) (*model.Member, error)
	ListMembers(ctx context.Context) ([]*model.MemberWithLoans, error)
}
