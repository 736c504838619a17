package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
)

// MemberRepository is the member data-access contract
type MemberRepository interface {
	// Create registers a member. A duplicate first+last name
	// (case-insensitive) fails with model.ErrDuplicateMember.
	Create(ctx context.Context, member *model.Member) error

	// GetByID gets a member by id
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)

	// List returns all members with their open loans,
	// ordered by last then first name
	List(ctx context.Context) ([]*model.MemberWithLoans, error)
}
