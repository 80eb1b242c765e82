package repository

import (
	"context"

	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/model"
	"github.com/techboard/techboard/internal/query"
)

// Tags is the domain repository for the tag family. Tags are read-only from
// the client's perspective; the server creates them by name during post
// creation.
type Tags struct {
	api   api.Tags
	cache *query.Cache
}

func NewTags(client *api.Client, cache *query.Cache) *Tags {
	return &Tags{api: client.Tags(), cache: cache}
}

func (r *Tags) List(ctx context.Context) ([]model.Tag, error) {
	key := query.Key{Family: query.FamilyTags, Kind: query.KindList}

	return query.Fetch(ctx, r.cache, key, listingFreshFor(), func(ctx context.Context) ([]model.Tag, error) {
		return r.api.List(ctx)
	})
}

// Refresh marks the cached tag list stale so the next List bypasses the
// fresh window and hits the network.
func (r *Tags) Refresh() {
	r.cache.MarkStale(query.Key{Family: query.FamilyTags, Kind: query.KindList})
}

// PostsBySlug is guarded: an empty slug never issues a request.
func (r *Tags) PostsBySlug(ctx context.Context, slug string, page int) (model.Page[model.Post], error) {
	if slug == "" {
		return model.Page[model.Post]{}, query.ErrNotLoaded
	}
	key := query.Key{Family: query.FamilyTags, Kind: query.KindPosts, Slug: slug, Page: page}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Page[model.Post], error) {
		return r.api.PostsBySlug(ctx, slug, page, pageSize())
	})
}
