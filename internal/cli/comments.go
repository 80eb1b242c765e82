package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/model"
)

func (a *App) browseComments(ctx context.Context, postID int) {
	for {
		comments, err := a.repos.Comments.List(ctx, postID)
		if err != nil {
			a.reportError(err)
			return
		}

		fmt.Println()
		if len(comments) == 0 {
			fmt.Println(a.styles.Muted.Render("No comments yet"))
		}
		for _, c := range comments {
			fmt.Println(a.styles.Header.Render(c.Author) + a.styles.Muted.Render("  "+c.CreatedAt.Format("2006-01-02 15:04")))
			fmt.Println(a.styles.Item.Render("  " + c.Body))
		}

		switch a.prompt("[w]rite, [e]dit, [d]elete, or [q]uit") {
		case "w":
			a.writeComment(ctx, postID)
		case "e":
			a.editComment(ctx, postID, comments)
		case "d":
			a.deleteComment(ctx, postID, comments)
		default:
			return
		}
	}
}

func (a *App) writeComment(ctx context.Context, postID int) {
	req := model.CommentCreateRequest{
		Author:   a.prompt("Name"),
		Password: a.prompt("Password (needed to edit or delete later)"),
		Body:     a.prompt("Comment"),
	}
	if _, err := a.repos.Comments.Create(ctx, postID, req); err != nil {
		a.reportError(err)
		return
	}
	a.successln("Comment posted")
}

// editComment re-prompts on a wrong password, keeping the typed body.
func (a *App) editComment(ctx context.Context, postID int, comments []model.Comment) {
	id := a.pickComment(comments)
	if id == 0 {
		return
	}

	body := a.prompt("New comment text")
	for {
		req := model.CommentUpdateRequest{
			Password: a.prompt("Password"),
			Body:     body,
		}
		_, err := a.repos.Comments.Update(ctx, postID, id, req)
		if err == nil {
			a.successln("Comment updated")
			return
		}
		if !a.retryPassword(err) {
			return
		}
	}
}

func (a *App) deleteComment(ctx context.Context, postID int, comments []model.Comment) {
	id := a.pickComment(comments)
	if id == 0 {
		return
	}

	for {
		err := a.repos.Comments.Delete(ctx, postID, id, a.prompt("Password"))
		if err == nil {
			a.successln("Comment deleted")
			return
		}
		if !a.retryPassword(err) {
			return
		}
	}
}

// retryPassword reports whether the error was a server rejection worth a
// second password attempt.
func (a *App) retryPassword(err error) bool {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && (apiErr.Status == 401 || apiErr.Status == 403) {
		a.errorln("Wrong password")
		return a.prompt("Try again? [y/N]") == "y"
	}
	a.reportError(err)
	return false
}

func (a *App) pickComment(comments []model.Comment) int {
	if len(comments) == 0 {
		a.noticeln("Nothing to pick")
		return 0
	}
	for i, c := range comments {
		fmt.Println(a.styles.Muted.Render(fmt.Sprintf("  %d: %s: %s", i+1, c.Author, truncate(c.Body, 40))))
	}
	input := a.prompt("Comment number")
	for i, c := range comments {
		if fmt.Sprint(i+1) == input {
			return c.ID
		}
	}
	a.errorln("No such comment")
	return 0
}
