package repository

import (
	"context"

	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/model"
	"github.com/techboard/techboard/internal/query"
)

// Categories is the domain repository for the category family. The category
// list is low-churn, so it stays fresh for a fixed window instead of the
// default always-stale policy.
type Categories struct {
	api   api.Categories
	cache *query.Cache
}

func NewCategories(client *api.Client, cache *query.Cache) *Categories {
	return &Categories{api: client.Categories(), cache: cache}
}

func (r *Categories) List(ctx context.Context) ([]model.Category, error) {
	key := query.Key{Family: query.FamilyCategories, Kind: query.KindList}

	return query.Fetch(ctx, r.cache, key, listingFreshFor(), func(ctx context.Context) ([]model.Category, error) {
		return r.api.List(ctx)
	})
}

// Refresh marks the cached category list stale so the next List bypasses the
// fresh window and hits the network.
func (r *Categories) Refresh() {
	r.cache.MarkStale(query.Key{Family: query.FamilyCategories, Kind: query.KindList})
}

// PostsBySlug is guarded: an empty slug never issues a request.
func (r *Categories) PostsBySlug(ctx context.Context, slug string, page int) (model.Page[model.Post], error) {
	if slug == "" {
		return model.Page[model.Post]{}, query.ErrNotLoaded
	}
	key := query.Key{Family: query.FamilyCategories, Kind: query.KindPosts, Slug: slug, Page: page}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Page[model.Post], error) {
		return r.api.PostsBySlug(ctx, slug, page, pageSize())
	})
}

func (r *Categories) Create(ctx context.Context, req model.CategoryRequest) (model.Category, error) {
	category, err := r.api.Create(ctx, req)
	if err != nil {
		return model.Category{}, err
	}
	r.cache.Invalidate(query.FamilyPrefix(query.FamilyCategories))
	return category, nil
}
