package api

import (
	"context"
	"fmt"

	"github.com/techboard/techboard/internal/model"
)

// Comments shapes requests for the comment resource family. Comments are
// scoped to exactly one post; destructive operations re-submit the original
// password, and only the server judges whether it matches.
type Comments struct {
	c *Client
}

func (c Comments) List(ctx context.Context, postID int) ([]model.Comment, error) {
	var out []model.Comment
	err := c.c.Do(ctx, "GET", fmt.Sprintf("/posts/%d/comments", postID), nil, nil, &out)
	return out, err
}

func (c Comments) Create(ctx context.Context, postID int, req model.CommentCreateRequest) (model.Comment, error) {
	var out model.Comment
	err := c.c.Do(ctx, "POST", fmt.Sprintf("/posts/%d/comments", postID), nil, req, &out)
	return out, err
}

func (c Comments) Update(ctx context.Context, postID, commentID int, req model.CommentUpdateRequest) (model.Comment, error) {
	var out model.Comment
	err := c.c.Do(ctx, "PUT", fmt.Sprintf("/posts/%d/comments/%d", postID, commentID), nil, req, &out)
	return out, err
}

func (c Comments) Delete(ctx context.Context, postID, commentID int, password string) error {
	req := model.CommentDeleteRequest{Password: password}
	return c.c.Do(ctx, "DELETE", fmt.Sprintf("/posts/%d/comments/%d", postID, commentID), nil, req, nil)
}
