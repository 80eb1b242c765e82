// Package validate holds the form schemas checked locally before any request
// is issued. A failed check never reaches the network.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/techboard/techboard/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError is a local form-schema rejection.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid form: " + strings.Join(e.Fields, ", ")
}

// IsValidation reports whether err is a local form rejection.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// PostForm mirrors the post editor's fields.
type PostForm struct {
	Title      string `validate:"required,max=200"`
	Content    string `validate:"required"`
	Summary    string `validate:"max=500"`
	Author     string `validate:"required"`
	CategoryID *int   `validate:"omitempty,gt=0"`
	TagNames   []string
}

func (f PostForm) Request() model.PostRequest {
	tags := f.TagNames
	if tags == nil {
		tags = []string{}
	}
	return model.PostRequest{
		Title:      f.Title,
		Content:    f.Content,
		Summary:    f.Summary,
		Author:     f.Author,
		CategoryID: f.CategoryID,
		TagNames:   tags,
	}
}

// ReviewForm mirrors the review editor's fields.
type ReviewForm struct {
	ReviewType string `validate:"required,oneof=BOOK COURSE"`
	Title      string `validate:"required,max=200"`
	Content    string `validate:"required"`
	Rating     int    `validate:"gte=1,lte=5"`
	ItemTitle  string `validate:"required,max=300"`
	ItemAuthor string `validate:"max=200"`
	ItemLink   string `validate:"max=500"`
}

func (f ReviewForm) Request() model.ReviewRequest {
	return model.ReviewRequest{
		ReviewType: model.ReviewType(f.ReviewType),
		Title:      f.Title,
		Content:    f.Content,
		Rating:     f.Rating,
		ItemTitle:  f.ItemTitle,
		ItemAuthor: f.ItemAuthor,
		ItemLink:   f.ItemLink,
	}
}

// Post checks the post form schema.
func Post(f PostForm) error {
	return check(f)
}

// Review checks the review form schema.
func Review(f ReviewForm) error {
	return check(f)
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	vErr := &ValidationError{}
	for _, fe := range fieldErrs {
		vErr.Fields = append(vErr.Fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return vErr
}
