package repository

import (
	"context"
	"strings"

	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/model"
	"github.com/techboard/techboard/internal/query"
)

// Reviews is the domain repository for the review family.
type Reviews struct {
	api   api.Reviews
	cache *query.Cache
}

func NewReviews(client *api.Client, cache *query.Cache) *Reviews {
	return &Reviews{api: client.Reviews(), cache: cache}
}

func (r *Reviews) List(ctx context.Context, page int) (model.Page[model.Review], error) {
	key := query.Key{Family: query.FamilyReviews, Kind: query.KindList, Page: page}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Page[model.Review], error) {
		return r.api.List(ctx, page, pageSize(), defaultSort(""))
	})
}

// ByID is guarded: a non-positive id never issues a request.
func (r *Reviews) ByID(ctx context.Context, id int) (model.Review, error) {
	if id <= 0 {
		return model.Review{}, query.ErrNotLoaded
	}
	key := query.Key{Family: query.FamilyReviews, Kind: query.KindDetail, ID: id}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Review, error) {
		return r.api.ByID(ctx, id)
	})
}

func (r *Reviews) ByType(ctx context.Context, reviewType model.ReviewType, page int) (model.Page[model.Review], error) {
	key := query.Key{Family: query.FamilyReviews, Kind: query.KindByType, Type: string(reviewType), Page: page}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Page[model.Review], error) {
		return r.api.ByType(ctx, reviewType, page, pageSize())
	})
}

// Search is guarded: it only runs with a non-empty keyword.
func (r *Reviews) Search(ctx context.Context, keyword string, page int) (model.Page[model.Review], error) {
	if strings.TrimSpace(keyword) == "" {
		return model.Page[model.Review]{}, query.ErrNotLoaded
	}
	key := query.Key{Family: query.FamilyReviews, Kind: query.KindSearch, Keyword: keyword, Page: page}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Page[model.Review], error) {
		return r.api.Search(ctx, keyword, page, pageSize())
	})
}

// Browse resolves the review list-page view mode: a non-empty search keyword
// takes precedence over the type filter, an empty keyword with a type falls
// back to the type-filtered listing, and neither yields the plain listing.
// The caller keeps its type selection; clearing the keyword restores it.
func (r *Reviews) Browse(ctx context.Context, keyword string, reviewType model.ReviewType, page int) (model.Page[model.Review], error) {
	if strings.TrimSpace(keyword) != "" {
		return r.Search(ctx, keyword, page)
	}
	if reviewType != "" {
		return r.ByType(ctx, reviewType, page)
	}
	return r.List(ctx, page)
}

// LookupBook is the side lookup for the review editor: uncached, unpaginated.
func (r *Reviews) LookupBook(ctx context.Context, isbn string) (model.BookInfo, error) {
	if api.NormalizeISBN(isbn) == "" {
		return model.BookInfo{}, query.ErrNotLoaded
	}
	return r.api.BookByISBN(ctx, isbn)
}

// Prefill copies a book lookup result into exactly the item fields of the
// request, leaving title, content and rating untouched.
func Prefill(req *model.ReviewRequest, book model.BookInfo) {
	req.ItemTitle = book.Title
	req.ItemAuthor = book.Author
	req.ItemLink = book.Link
}

func (r *Reviews) Create(ctx context.Context, req model.ReviewRequest) (model.Review, error) {
	review, err := r.api.Create(ctx, req)
	if err != nil {
		return model.Review{}, err
	}
	r.cache.Invalidate(query.FamilyPrefix(query.FamilyReviews))
	return review, nil
}

func (r *Reviews) Update(ctx context.Context, id int, req model.ReviewRequest) (model.Review, error) {
	review, err := r.api.Update(ctx, id, req)
	if err != nil {
		return model.Review{}, err
	}
	r.cache.Invalidate(query.FamilyPrefix(query.FamilyReviews))
	return review, nil
}

func (r *Reviews) Delete(ctx context.Context, id int) error {
	if err := r.api.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Invalidate(query.FamilyPrefix(query.FamilyReviews))
	return nil
}
