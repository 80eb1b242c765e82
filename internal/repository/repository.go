// Package repository exposes the per-family domain operations the
// presentation layer calls: cached reads keyed by the query package, and
// writes that invalidate the affected key prefix before returning.
package repository

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/config"
	"github.com/techboard/techboard/internal/query"
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

// listingFreshFor is the staleness window for the low-churn category and tag
// lists; everything else defaults to always-possibly-stale.
func listingFreshFor() time.Duration {
	if config.AppConfig != nil && config.AppConfig.Cache.ListingFreshMinutes > 0 {
		return time.Duration(config.AppConfig.Cache.ListingFreshMinutes) * time.Minute
	}
	return 5 * time.Minute
}

// Set groups every domain repository over one client and one cache.
type Set struct {
	Posts      *Posts
	Categories *Categories
	Tags       *Tags
	Reviews    *Reviews
	Comments   *Comments
}

func NewSet(client *api.Client, cache *query.Cache) *Set {
	return &Set{
		Posts:      NewPosts(client, cache),
		Categories: NewCategories(client, cache),
		Tags:       NewTags(client, cache),
		Reviews:    NewReviews(client, cache),
		Comments:   NewComments(client, cache),
	}
}

func pageSize() int {
	if config.AppConfig != nil && config.AppConfig.API.PageSize > 0 {
		return config.AppConfig.API.PageSize
	}
	return config.DefaultPageSize
}

func defaultSort(sort string) string {
	if sort == "" {
		return config.DefaultSort
	}
	return sort
}
