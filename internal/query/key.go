// Package query provides the keyed, staleness-aware cache that sits between
// the domain repositories and the resource clients.
//
// Every cached read is addressed by a hierarchical Key; mutations invalidate
// by key prefix rather than touching entries in place.
package query

import "fmt"

// Family is the root of a key hierarchy: one domain collection and its
// operations.
type Family string

const (
	FamilyPosts      Family = "posts"
	FamilyCategories Family = "categories"
	FamilyTags       Family = "tags"
	FamilyReviews    Family = "reviews"
	FamilyComments   Family = "comments"
)

// Kind names the query shape within a family.
type Kind string

const (
	KindList        Kind = "list"
	KindDetail      Kind = "detail"
	KindSearch      Kind = "search"
	KindByType      Kind = "type"
	KindPosts       Kind = "posts"
	KindAdminList   Kind = "admin-list"
	KindAdminDetail Kind = "admin-detail"
)

// Key addresses one logical query. Discriminators are the exact parameters
// that affect the result; structural equality over the whole tuple is the
// cache-identity contract, so Key must stay comparable. Unused discriminators
// hold their zero value.
type Key struct {
	Family  Family
	Kind    Kind
	Page    int
	Sort    string
	Slug    string
	Keyword string
	Type    string
	ID      int

	// PostID scopes comment queries; comments never appear in any other view,
	// so it doubles as the narrow invalidation root for that family.
	PostID int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s{page=%d sort=%q slug=%q keyword=%q type=%q id=%d postId=%d}",
		k.Family, k.Kind, k.Page, k.Sort, k.Slug, k.Keyword, k.Type, k.ID, k.PostID)
}

// Prefix selects every key under a family root, optionally narrowed to one
// post's comment scope.
type Prefix struct {
	Family Family

	// PostID narrows the comments family to one post when non-zero.
	PostID int
}

// Matches reports whether key falls under the prefix.
func (p Prefix) Matches(k Key) bool {
	if k.Family != p.Family {
		return false
	}
	if p.PostID != 0 && k.PostID != p.PostID {
		return false
	}
	return true
}

// FamilyPrefix selects a whole resource family.
func FamilyPrefix(f Family) Prefix {
	return Prefix{Family: f}
}

// CommentScope selects only the comment entries of one post.
func CommentScope(postID int) Prefix {
	return Prefix{Family: FamilyComments, PostID: postID}
}
