package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/repository"
)

type memberService struct {
	memberRepo repository.MemberRepository
}

func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) CreateMember(ctx context.Context, req model.CreateMemberRequest) (*model.Member, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member := &model.Member{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: time.Now(),
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, model.ErrDuplicateMember) {
			return nil, model.NewDuplicateMemberError()
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context) ([]*model.MemberWithLoans, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
