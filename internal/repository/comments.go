package repository

import (
	"context"

	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/model"
	"github.com/techboard/techboard/internal/query"
)

// Comments is the domain repository for the comment family. Mutations
// invalidate only the affected post's comment scope: comments never appear
// in any other view, so the coarse family-wide rule would be wasted here.
type Comments struct {
	api   api.Comments
	cache *query.Cache
}

func NewComments(client *api.Client, cache *query.Cache) *Comments {
	return &Comments{api: client.Comments(), cache: cache}
}

// List is guarded: a non-positive post id never issues a request.
func (r *Comments) List(ctx context.Context, postID int) ([]model.Comment, error) {
	if postID <= 0 {
		return nil, query.ErrNotLoaded
	}
	key := query.Key{Family: query.FamilyComments, Kind: query.KindList, PostID: postID}

	return query.Fetch(ctx, r.cache, key, 0, func(ctx context.Context) ([]model.Comment, error) {
		return r.api.List(ctx, postID)
	})
}

func (r *Comments) Create(ctx context.Context, postID int, req model.CommentCreateRequest) (model.Comment, error) {
	comment, err := r.api.Create(ctx, postID, req)
	if err != nil {
		return model.Comment{}, err
	}
	r.cache.Invalidate(query.CommentScope(postID))
	return comment, nil
}

func (r *Comments) Update(ctx context.Context, postID, commentID int, req model.CommentUpdateRequest) (model.Comment, error) {
	comment, err := r.api.Update(ctx, postID, commentID, req)
	if err != nil {
		return model.Comment{}, err
	}
	r.cache.Invalidate(query.CommentScope(postID))
	return comment, nil
}

// Delete re-submits the comment password; a mismatch surfaces as the server's
// APIError and leaves the cache untouched.
func (r *Comments) Delete(ctx context.Context, postID, commentID int, password string) error {
	if err := r.api.Delete(ctx, postID, commentID, password); err != nil {
		return err
	}
	r.cache.Invalidate(query.CommentScope(postID))
	return nil
}
