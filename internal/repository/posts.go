package repository

import (
	"context"

	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/model"
	"github.com/techboard/techboard/internal/query"
)

// Posts is the domain repository for the post family.
type Posts struct {
	api   api.Posts
	cache *query.Cache
}

func NewPosts(client *api.Client, cache *query.Cache) *Posts {
	return &Posts{api: client.Posts(), cache: cache}
}

func (r *Posts) Published(ctx context.Context, page int, sort string) (model.Page[model.Post], error) {
	sort = defaultSort(sort)
	key := query.Key{Family: query.FamilyPosts, Kind: query.KindList, Page: page, Sort: sort}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Page[model.Post], error) {
		return r.api.Published(ctx, page, pageSize(), sort)
	})
}

// BySlug is guarded: an empty slug never issues a request.
func (r *Posts) BySlug(ctx context.Context, slug string) (model.Post, error) {
	if slug == "" {
		return model.Post{}, query.ErrNotLoaded
	}
	key := query.Key{Family: query.FamilyPosts, Kind: query.KindDetail, Slug: slug}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Post, error) {
		return r.api.BySlug(ctx, slug)
	})
}

// Search is guarded: it only runs with a non-empty keyword.
func (r *Posts) Search(ctx context.Context, keyword string, page int) (model.Page[model.Post], error) {
	if keyword == "" {
		return model.Page[model.Post]{}, query.ErrNotLoaded
	}
	key := query.Key{Family: query.FamilyPosts, Kind: query.KindSearch, Keyword: keyword, Page: page}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Page[model.Post], error) {
		return r.api.Search(ctx, keyword, page, pageSize())
	})
}

func (r *Posts) All(ctx context.Context, page int) (model.Page[model.Post], error) {
	key := query.Key{Family: query.FamilyPosts, Kind: query.KindAdminList, Page: page}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Page[model.Post], error) {
		return r.api.Admin(ctx, page, pageSize(), defaultSort(""))
	})
}

// ByID is guarded: a non-positive id never issues a request.
func (r *Posts) ByID(ctx context.Context, id int) (model.Post, error) {
	if id <= 0 {
		return model.Post{}, query.ErrNotLoaded
	}
	key := query.Key{Family: query.FamilyPosts, Kind: query.KindAdminDetail, ID: id}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) (model.Post, error) {
		return r.api.AdminByID(ctx, id)
	})
}

// Create never publishes; publishing is the separate TogglePublish operation.
func (r *Posts) Create(ctx context.Context, req model.PostRequest) (model.Post, error) {
	post, err := r.api.Create(ctx, req)
	if err != nil {
		return model.Post{}, err
	}
	r.cache.Invalidate(query.FamilyPrefix(query.FamilyPosts))
	return post, nil
}

func (r *Posts) Update(ctx context.Context, id int, req model.PostRequest) (model.Post, error) {
	post, err := r.api.Update(ctx, id, req)
	if err != nil {
		return model.Post{}, err
	}
	r.cache.Invalidate(query.FamilyPrefix(query.FamilyPosts))
	return post, nil
}

func (r *Posts) Delete(ctx context.Context, id int) error {
	if err := r.api.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Invalidate(query.FamilyPrefix(query.FamilyPosts))
	return nil
}

func (r *Posts) TogglePublish(ctx context.Context, id int) (model.Post, error) {
	post, err := r.api.TogglePublish(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	r.cache.Invalidate(query.FamilyPrefix(query.FamilyPosts))
	return post, nil
}
