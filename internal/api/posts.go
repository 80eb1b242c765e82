package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/techboard/techboard/internal/model"
)

// Posts shapes requests for the post resource family.
type Posts struct {
	c *Client
}

func pageParams(page, size int, sort string) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if sort != "" {
		params.Set("sort", sort)
	}
	return params
}

func (p Posts) Published(ctx context.Context, page, size int, sort string) (model.Page[model.Post], error) {
	var out model.Page[model.Post]
	err := p.c.Do(ctx, "GET", "/posts", pageParams(page, size, sort), nil, &out)
	return out, err
}

func (p Posts) BySlug(ctx context.Context, slug string) (model.Post, error) {
	var out model.Post
	err := p.c.Do(ctx, "GET", "/posts/"+url.PathEscape(slug), nil, nil, &out)
	return out, err
}

func (p Posts) Search(ctx context.Context, keyword string, page, size int) (model.Page[model.Post], error) {
	params := pageParams(page, size, "")
	params.Set("keyword", keyword)

	var out model.Page[model.Post]
	err := p.c.Do(ctx, "GET", "/posts/search", params, nil, &out)
	return out, err
}

func (p Posts) Create(ctx context.Context, req model.PostRequest) (model.Post, error) {
	var out model.Post
	err := p.c.Do(ctx, "POST", "/posts", nil, req, &out)
	return out, err
}

func (p Posts) Update(ctx context.Context, id int, req model.PostRequest) (model.Post, error) {
	var out model.Post
	err := p.c.Do(ctx, "PUT", fmt.Sprintf("/posts/%d", id), nil, req, &out)
	return out, err
}

func (p Posts) Delete(ctx context.Context, id int) error {
	return p.c.Do(ctx, "DELETE", fmt.Sprintf("/posts/%d", id), nil, nil, nil)
}

// TogglePublish flips the post between DRAFT and PUBLISHED.
func (p Posts) TogglePublish(ctx context.Context, id int) (model.Post, error) {
	var out model.Post
	err := p.c.Do(ctx, "PATCH", fmt.Sprintf("/posts/%d/publish", id), nil, nil, &out)
	return out, err
}

// Admin lists posts of every status for the admin console.
func (p Posts) Admin(ctx context.Context, page, size int, sort string) (model.Page[model.Post], error) {
	var out model.Page[model.Post]
	err := p.c.Do(ctx, "GET", "/posts/admin", pageParams(page, size, sort), nil, &out)
	return out, err
}

func (p Posts) AdminByID(ctx context.Context, id int) (model.Post, error) {
	var out model.Post
	err := p.c.Do(ctx, "GET", fmt.Sprintf("/posts/admin/%d", id), nil, nil, &out)
	return out, err
}
