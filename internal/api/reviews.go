package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/techboard/techboard/internal/model"
)

// Reviews shapes requests for the review resource family.
type Reviews struct {
	c *Client
}

func (r Reviews) List(ctx context.Context, page, size int, sort string) (model.Page[model.Review], error) {
	var out model.Page[model.Review]
	err := r.c.Do(ctx, "GET", "/reviews", pageParams(page, size, sort), nil, &out)
	return out, err
}

func (r Reviews) ByID(ctx context.Context, id int) (model.Review, error) {
	var out model.Review
	err := r.c.Do(ctx, "GET", fmt.Sprintf("/reviews/%d", id), nil, nil, &out)
	return out, err
}

func (r Reviews) ByType(ctx context.Context, reviewType model.ReviewType, page, size int) (model.Page[model.Review], error) {
	var out model.Page[model.Review]
	params := pageParams(page, size, "createdAt,desc")
	err := r.c.Do(ctx, "GET", "/reviews/type/"+string(reviewType), params, nil, &out)
	return out, err
}

func (r Reviews) Search(ctx context.Context, keyword string, page, size int) (model.Page[model.Review], error) {
	params := pageParams(page, size, "")
	params.Set("keyword", keyword)

	var out model.Page[model.Review]
	err := r.c.Do(ctx, "GET", "/reviews/search", params, nil, &out)
	return out, err
}

func (r Reviews) Create(ctx context.Context, req model.ReviewRequest) (model.Review, error) {
	var out model.Review
	err := r.c.Do(ctx, "POST", "/reviews", nil, req, &out)
	return out, err
}

func (r Reviews) Update(ctx context.Context, id int, req model.ReviewRequest) (model.Review, error) {
	var out model.Review
	err := r.c.Do(ctx, "PUT", fmt.Sprintf("/reviews/%d", id), nil, req, &out)
	return out, err
}

func (r Reviews) Delete(ctx context.Context, id int) error {
	return r.c.Do(ctx, "DELETE", fmt.Sprintf("/reviews/%d", id), nil, nil, nil)
}

// BookByISBN looks up book metadata for the review editor. The ISBN is
// normalized here: whitespace and hyphens are stripped before the call.
func (r Reviews) BookByISBN(ctx context.Context, isbn string) (model.BookInfo, error) {
	isbn = NormalizeISBN(isbn)

	var out model.BookInfo
	err := r.c.Do(ctx, "GET", "/reviews/books/isbn/"+url.PathEscape(isbn), nil, nil, &out)
	return out, err
}

// NormalizeISBN strips whitespace and hyphens from an ISBN-10 or ISBN-13.
func NormalizeISBN(isbn string) string {
	isbn = strings.TrimSpace(isbn)
	isbn = strings.ReplaceAll(isbn, " ", "")
	isbn = strings.ReplaceAll(isbn, "\t", "")
	return strings.ReplaceAll(isbn, "-", "")
}
