package api

import (
	"context"
	"net/url"

	"github.com/techboard/techboard/internal/model"
)

// Tags shapes requests for the tag resource family.
type Tags struct {
	c *Client
}

func (t Tags) List(ctx context.Context) ([]model.Tag, error) {
	var out []model.Tag
	err := t.c.Do(ctx, "GET", "/tags", nil, nil, &out)
	return out, err
}

func (t Tags) PostsBySlug(ctx context.Context, slug string, page, size int) (model.Page[model.Post], error) {
	var out model.Page[model.Post]
	err := t.c.Do(ctx, "GET", "/tags/"+url.PathEscape(slug)+"/posts", pageParams(page, size, ""), nil, &out)
	return out, err
}
