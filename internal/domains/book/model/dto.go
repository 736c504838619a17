package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBookRequest adds a book to the catalog
type CreateBookRequest struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Tags,
			validation.Length(0, 20).Error("too many tags"),
			validation.Each(validation.Length(1, 100)),
		),
	)
}

// ListBooksRequest filters the catalog listing
type ListBooksRequest struct {
	Search string `form:"search"`
}
