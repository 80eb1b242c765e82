package api

import (
	"context"
	"net/url"

	"github.com/techboard/techboard/internal/model"
)

// Categories shapes requests for the category resource family.
type Categories struct {
	c *Client
}

func (c Categories) List(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := c.c.Do(ctx, "GET", "/categories", nil, nil, &out)
	return out, err
}

func (c Categories) Create(ctx context.Context, req model.CategoryRequest) (model.Category, error) {
	var out model.Category
	err := c.c.Do(ctx, "POST", "/categories", nil, req, &out)
	return out, err
}

func (c Categories) PostsBySlug(ctx context.Context, slug string, page, size int) (model.Page[model.Post], error) {
	var out model.Page[model.Post]
	err := c.c.Do(ctx, "GET", "/categories/"+url.PathEscape(slug)+"/posts", pageParams(page, size, ""), nil, &out)
	return out, err
}
