package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/techboard/techboard/internal/draft"
	"github.com/techboard/techboard/internal/model"
	"github.com/techboard/techboard/internal/render"
	"github.com/techboard/techboard/internal/theme"
	"github.com/techboard/techboard/internal/util"
	"github.com/techboard/techboard/internal/validate"
)

func (a *App) browsePosts(ctx context.Context) {
	page := 0
	for {
		posts, err := a.repos.Posts.Published(ctx, page, "")
		if err != nil {
			a.reportError(err)
			if a.prompt("Retry? [y/N]") == "y" {
				continue
			}
			return
		}

		a.printPostPage(posts)
		switch input := a.prompt("[n]ext, [p]rev, post number, or [q]uit"); input {
		case "n":
			if page < posts.TotalPages-1 {
				page++
			}
		case "p":
			if page > 0 {
				page--
			}
		case "q", "":
			return
		default:
			if slug := a.pickSlug(posts, input); slug != "" {
				a.showPost(ctx, slug)
			}
		}
	}
}

func (a *App) searchPosts(ctx context.Context) {
	keyword := a.prompt("Keyword")
	page := 0
	for {
		posts, err := a.repos.Posts.Search(ctx, keyword, page)
		if err != nil {
			a.reportError(err)
			return
		}

		fmt.Println(a.styles.Header.Render(fmt.Sprintf("%d results for %q", posts.TotalElements, keyword)))
		a.printPostPage(posts)
		switch a.prompt("[n]ext, [p]rev, or [q]uit") {
		case "n":
			if page < posts.TotalPages-1 {
				page++
			}
		case "p":
			if page > 0 {
				page--
			}
		default:
			return
		}
	}
}

func (a *App) pickSlug(posts model.Page[model.Post], input string) string {
	for i, p := range posts.Content {
		if fmt.Sprint(i+1) == input {
			return p.Slug
		}
	}
	a.errorln("No such post on this page")
	return ""
}

func (a *App) printPostPage(posts model.Page[model.Post]) {
	fmt.Println()
	for i, p := range posts.Content {
		line := fmt.Sprintf("%2d. %s", i+1, p.Title)
		if p.Category != nil {
			line += a.styles.Muted.Render("  [" + p.Category.Name + "]")
		}
		fmt.Println(a.styles.Item.Render(line))
		if p.Summary != "" {
			fmt.Println(a.styles.Muted.Render("    " + truncate(p.Summary, termWidth()-4)))
		}
	}
	fmt.Println(a.styles.Muted.Render(fmt.Sprintf("page %d/%d, %d posts",
		posts.CurrentPage+1, max(posts.TotalPages, 1), posts.TotalElements)))
}

func (a *App) showPost(ctx context.Context, slug string) {
	post, err := a.repos.Posts.BySlug(ctx, slug)
	if err != nil {
		a.reportError(err)
		return
	}

	fmt.Println()
	fmt.Println(a.styles.Title.Render(post.Title))
	meta := "by " + post.Author
	if post.PublishedAt != nil {
		meta += ", published " + post.PublishedAt.Format("2006-01-02")
	}
	meta += fmt.Sprintf(", %d views", post.ViewCount)
	fmt.Println(a.styles.Muted.Render(meta))
	if len(post.Tags) > 0 {
		names := make([]string, 0, len(post.Tags))
		for _, t := range post.Tags {
			names = append(names, "#"+t.Name)
		}
		fmt.Println(a.styles.Muted.Render(strings.Join(names, " ")))
	}
	fmt.Println()
	fmt.Println(string(render.MarkdownCached([]byte(post.Content), theme.SyntaxTheme(a.ui.Theme()))))

	if a.prompt("View comments? [y/N]") == "y" {
		a.browseComments(ctx, post.ID)
	}
}

func (a *App) browseCategories(ctx context.Context) {
	for {
		categories, err := a.repos.Categories.List(ctx)
		if err != nil {
			a.reportError(err)
			return
		}

		fmt.Println()
		for i, c := range categories {
			fmt.Println(a.styles.Item.Render(fmt.Sprintf("%2d. %s", i+1, c.Name)))
			if c.Description != "" {
				fmt.Println(a.styles.Muted.Render("    " + c.Description))
			}
		}

		input := a.prompt("Open category number, [r]efresh, or blank to skip")
		if input == "r" {
			a.repos.Categories.Refresh()
			continue
		}
		for i, c := range categories {
			if fmt.Sprint(i+1) == input {
				a.browseSlugPosts(ctx, c.Slug, a.repos.Categories.PostsBySlug)
			}
		}
		return
	}
}

func (a *App) browseTags(ctx context.Context) {
	for {
		tags, err := a.repos.Tags.List(ctx)
		if err != nil {
			a.reportError(err)
			return
		}

		fmt.Println()
		for i, t := range tags {
			fmt.Println(a.styles.Item.Render(fmt.Sprintf("%2d. #%s", i+1, t.Name)))
		}

		input := a.prompt("Open tag number, [r]efresh, or blank to skip")
		if input == "r" {
			a.repos.Tags.Refresh()
			continue
		}
		for i, t := range tags {
			if fmt.Sprint(i+1) == input {
				a.browseSlugPosts(ctx, t.Slug, a.repos.Tags.PostsBySlug)
			}
		}
		return
	}
}

// browseSlugPosts pages through the posts under one category or tag slug.
func (a *App) browseSlugPosts(ctx context.Context, slug string, fetch func(context.Context, string, int) (model.Page[model.Post], error)) {
	page := 0
	for {
		posts, err := fetch(ctx, slug, page)
		if err != nil {
			a.reportError(err)
			return
		}

		a.printPostPage(posts)
		switch a.prompt("[n]ext, [p]rev, or [q]uit") {
		case "n":
			if page < posts.TotalPages-1 {
				page++
			}
		case "p":
			if page > 0 {
				page--
			}
		default:
			return
		}
	}
}

func (a *App) managePosts(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}

	for {
		fmt.Println()
		fmt.Println(a.styles.Header.Render("Manage posts"))
		fmt.Println(a.styles.Item.Render(" 1) List all posts"))
		fmt.Println(a.styles.Item.Render(" 2) Write a new post"))
		fmt.Println(a.styles.Item.Render(" 3) Import a post from a markdown file"))
		fmt.Println(a.styles.Item.Render(" 4) Edit a post"))
		fmt.Println(a.styles.Item.Render(" 5) Publish / unpublish a post"))
		fmt.Println(a.styles.Item.Render(" 6) Delete a post"))
		fmt.Println(a.styles.Item.Render(" 7) New category"))
		fmt.Println(a.styles.Item.Render(" 0) Back"))

		choice, err := a.promptInt("Select an option")
		if err != nil {
			a.errorln(err.Error())
			continue
		}

		switch choice {
		case 1:
			a.listAllPosts(ctx)
		case 2:
			a.writeNewPost(ctx)
		case 3:
			a.importPost(ctx)
		case 4:
			a.editPost(ctx)
		case 5:
			a.togglePublish(ctx)
		case 6:
			a.deletePost(ctx)
		case 7:
			a.createCategory(ctx)
		case 0:
			return
		default:
			a.errorln("Unknown option")
		}
	}
}

func (a *App) listAllPosts(ctx context.Context) {
	page := 0
	for {
		posts, err := a.repos.Posts.All(ctx, page)
		if err != nil {
			a.reportError(err)
			return
		}

		fmt.Println()
		for _, p := range posts.Content {
			style := a.styles.Item
			if p.Status == model.StatusDraft {
				style = a.styles.Notice
			}
			fmt.Println(style.Render(adminPostLine(p)))
		}
		fmt.Println(a.styles.Muted.Render(fmt.Sprintf("page %d/%d", posts.CurrentPage+1, max(posts.TotalPages, 1))))

		switch a.prompt("[n]ext, [p]rev, or [q]uit") {
		case "n":
			if page < posts.TotalPages-1 {
				page++
			}
		case "p":
			if page > 0 {
				page--
			}
		default:
			return
		}
	}
}

// adminPostLine formats one row of the manage-posts listing: id, status, title.
func adminPostLine(p model.Post) string {
	return fmt.Sprintf("%4d  %-9s %s", p.ID, p.Status, p.Title)
}

// writeNewPost runs the Editing-New workflow: restore notice, autosave while
// editing, and slot cleanup only on successful submission.
func (a *App) writeNewPost(ctx context.Context) {
	session, err := draft.NewSession(a.drafts, a.cfg.Editor.AutosaveInterval())
	if err != nil {
		a.errorln("Could not open the editor: " + err.Error())
		return
	}
	defer session.Close()

	if session.Restored != nil {
		a.noticeln("Restored an unsaved draft from a previous session.")
		if a.prompt("Discard it and start fresh? [y/N]") == "y" {
			if err := session.Discard(); err != nil {
				a.errorln("Could not discard the draft: " + err.Error())
			}
		}
	}

	form, ok := a.editPostForm(ctx, session.Values(), session.SetValues)
	if !ok {
		// The session already holds everything typed so far; the next
		// autosave tick keeps it restorable.
		return
	}

	publish := a.prompt("Publish now? [y/N]") == "y"
	post, err := a.submitPost(ctx, form)
	if err != nil {
		a.reportError(err)
		return
	}
	if publish {
		if post, err = a.repos.Posts.TogglePublish(ctx, post.ID); err != nil {
			a.reportError(err)
			a.noticeln("The post was saved as a draft; publish it from the manage menu.")
		}
	}
	if err := session.Submitted(); err != nil {
		a.errorln("Could not clear the saved draft: " + err.Error())
	}
	a.successln(fmt.Sprintf("Saved post %d (%s)", post.ID, post.Status))
}

// importPost seeds the editor from a markdown file with TOML front matter.
func (a *App) importPost(ctx context.Context) {
	path := a.prompt("Markdown file path")
	data, err := os.ReadFile(path)
	if err != nil {
		a.errorln("Could not read the file: " + err.Error())
		return
	}

	var form draft.Snapshot
	meta, body, err := util.SplitFrontMatter(data)
	if err != nil {
		// No front matter; the whole file is the body.
		form.Content = string(data)
	} else {
		form.Content = string(body)
		form.Title = meta.Title
		form.Author = meta.FirstAuthor()
		form.TagNames = meta.Keyword
	}

	edited, ok := a.editPostForm(ctx, form, nil)
	if !ok {
		return
	}
	post, err := a.submitPost(ctx, edited)
	if err != nil {
		a.reportError(err)
		return
	}
	a.successln(fmt.Sprintf("Imported post %d as a draft", post.ID))
}

// editPost runs the Editing-Existing workflow: seeded from the server, never
// touching the draft slot.
func (a *App) editPost(ctx context.Context) {
	id, err := a.promptInt("Post id")
	if err != nil {
		a.errorln(err.Error())
		return
	}

	post, err := a.repos.Posts.ByID(ctx, id)
	if err != nil {
		a.reportError(err)
		return
	}

	session := draft.ExistingSession(post)
	defer session.Close()

	form, ok := a.editPostForm(ctx, session.Values(), session.SetValues)
	if !ok {
		return
	}

	if err := validate.Post(postForm(form)); err != nil {
		a.errorln(err.Error())
		return
	}
	updated, err := a.repos.Posts.Update(ctx, id, form.Request())
	if err != nil {
		a.reportError(err)
		return
	}
	if err := session.Submitted(); err != nil {
		a.errorln(err.Error())
	}
	a.successln(fmt.Sprintf("Updated post %d", updated.ID))
}

func (a *App) togglePublish(ctx context.Context) {
	id, err := a.promptInt("Post id")
	if err != nil {
		a.errorln(err.Error())
		return
	}
	post, err := a.repos.Posts.TogglePublish(ctx, id)
	if err != nil {
		a.reportError(err)
		return
	}
	a.successln(fmt.Sprintf("Post %d is now %s", post.ID, post.Status))
}

func (a *App) deletePost(ctx context.Context) {
	id, err := a.promptInt("Post id")
	if err != nil {
		a.errorln(err.Error())
		return
	}
	if a.prompt(fmt.Sprintf("Delete post %d? [y/N]", id)) != "y" {
		return
	}
	if err := a.repos.Posts.Delete(ctx, id); err != nil {
		a.reportError(err)
		return
	}
	a.successln("Deleted")
}

func (a *App) createCategory(ctx context.Context) {
	name := a.prompt("Category name")
	description := a.prompt("Description")
	category, err := a.repos.Categories.Create(ctx, model.CategoryRequest{Name: name, Description: description})
	if err != nil {
		a.reportError(err)
		return
	}
	a.successln(fmt.Sprintf("Created category %q (%s)", category.Name, category.Slug))
}

// editPostForm collects post fields, prefilled from the seed. After every
// answered prompt the form is pushed through sync, so an autosaver attached
// to the same session snapshots what has been typed so far rather than the
// seed. Returning ok=false means the user abandoned the edit.
func (a *App) editPostForm(ctx context.Context, seed draft.Snapshot, sync func(draft.Snapshot)) (draft.Snapshot, bool) {
	if sync == nil {
		sync = func(draft.Snapshot) {}
	}
	form := seed

	form.Title = a.promptDefault("Title", form.Title)
	sync(form)
	form.Author = a.promptDefault("Author", form.Author)
	sync(form)
	form.Summary = a.promptDefault("Summary", form.Summary)
	sync(form)

	if a.prompt("Edit content? [Y/n]") != "n" {
		form.Content = a.promptMultiline("Content")
		sync(form)
	}

	if categories, err := a.repos.Categories.List(ctx); err == nil && len(categories) > 0 {
		for _, c := range categories {
			fmt.Println(a.styles.Muted.Render(fmt.Sprintf("  %d: %s", c.ID, c.Name)))
		}
		if input := a.prompt("Category id (blank for none)"); input != "" {
			var id int
			if _, err := fmt.Sscanf(input, "%d", &id); err == nil && id > 0 {
				form.CategoryID = &id
				sync(form)
			}
		}
	}

	if tags := a.prompt("Tags (comma separated)"); tags != "" {
		form.TagNames = splitTags(tags)
		sync(form)
	}

	if a.prompt("Save? [Y/n]") == "n" {
		return form, false
	}
	return form, true
}

// submitPost validates and creates the post. Creation never publishes.
func (a *App) submitPost(ctx context.Context, form draft.Snapshot) (model.Post, error) {
	if err := validate.Post(postForm(form)); err != nil {
		return model.Post{}, err
	}
	return a.repos.Posts.Create(ctx, form.Request())
}

func postForm(s draft.Snapshot) validate.PostForm {
	return validate.PostForm{
		Title:      s.Title,
		Content:    s.Content,
		Summary:    s.Summary,
		Author:     s.Author,
		CategoryID: s.CategoryID,
		TagNames:   s.TagNames,
	}
}

func (a *App) promptDefault(label, current string) string {
	if current != "" {
		label += " [" + truncate(current, 40) + "]"
	}
	if input := a.prompt(label); input != "" {
		return input
	}
	return current
}

func splitTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func truncate(s string, n int) string {
	if n < 4 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
