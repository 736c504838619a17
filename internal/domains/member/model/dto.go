package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateMemberRequest registers a new member
type CreateMemberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first_name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last_name is required"),
			validation.Length(1, 100),
		),
	)
}
