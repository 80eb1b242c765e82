package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/model"
	"github.com/techboard/techboard/internal/render"
	"github.com/techboard/techboard/internal/repository"
	"github.com/techboard/techboard/internal/theme"
	"github.com/techboard/techboard/internal/validate"
)

// browseReviews is the review list page. A search keyword takes over the
// view while present; clearing it drops back to whatever type filter the
// user had selected.
func (a *App) browseReviews(ctx context.Context) {
	var (
		keyword    string
		reviewType model.ReviewType
		page       = 0
	)

	for {
		reviews, err := a.repos.Reviews.Browse(ctx, keyword, reviewType, page)
		if err != nil {
			a.reportError(err)
			return
		}

		fmt.Println()
		switch {
		case strings.TrimSpace(keyword) != "":
			fmt.Println(a.styles.Header.Render(fmt.Sprintf("Reviews matching %q", keyword)))
		case reviewType != "":
			fmt.Println(a.styles.Header.Render("Reviews: " + string(reviewType)))
		default:
			fmt.Println(a.styles.Header.Render("Reviews"))
		}

		for i, r := range reviews.Content {
			fmt.Println(a.styles.Item.Render(fmt.Sprintf("%2d. %s %s",
				i+1, stars(r.Rating), r.Title)))
			fmt.Println(a.styles.Muted.Render(fmt.Sprintf("    %s: %s", r.ReviewType, r.ItemTitle)))
		}
		fmt.Println(a.styles.Muted.Render(fmt.Sprintf("page %d/%d, %d reviews",
			reviews.CurrentPage+1, max(reviews.TotalPages, 1), reviews.TotalElements)))

		switch input := a.prompt("[n]ext, [p]rev, [s]earch, [f]ilter, review number, or [q]uit"); input {
		case "n":
			if page < reviews.TotalPages-1 {
				page++
			}
		case "p":
			if page > 0 {
				page--
			}
		case "s":
			keyword = a.prompt("Keyword (blank to clear)")
			page = 0
		case "f":
			reviewType = a.pickReviewType()
			page = 0
		case "q", "":
			return
		default:
			for i, r := range reviews.Content {
				if fmt.Sprint(i+1) == input {
					a.showReview(ctx, r.ID)
				}
			}
		}
	}
}

func (a *App) pickReviewType() model.ReviewType {
	switch a.prompt("Type: [b]ooks, [c]ourses, or blank for all") {
	case "b":
		return model.ReviewBook
	case "c":
		return model.ReviewCourse
	default:
		return ""
	}
}

func (a *App) showReview(ctx context.Context, id int) {
	review, err := a.repos.Reviews.ByID(ctx, id)
	if err != nil {
		a.reportError(err)
		return
	}

	fmt.Println()
	fmt.Println(a.styles.Title.Render(review.Title))
	item := string(review.ReviewType) + ": " + review.ItemTitle
	if review.ItemAuthor != "" {
		item += " by " + review.ItemAuthor
	}
	fmt.Println(a.styles.Muted.Render(item))
	if review.ItemLink != "" {
		fmt.Println(a.styles.Muted.Render(review.ItemLink))
	}
	fmt.Println(a.styles.Notice.Render(stars(review.Rating)))
	fmt.Println()
	fmt.Println(string(render.MarkdownCached([]byte(review.Content), theme.SyntaxTheme(a.ui.Theme()))))
}

func (a *App) manageReviews(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}

	for {
		fmt.Println()
		fmt.Println(a.styles.Header.Render("Manage reviews"))
		fmt.Println(a.styles.Item.Render(" 1) Write a new review"))
		fmt.Println(a.styles.Item.Render(" 2) Edit a review"))
		fmt.Println(a.styles.Item.Render(" 3) Delete a review"))
		fmt.Println(a.styles.Item.Render(" 0) Back"))

		choice, err := a.promptInt("Select an option")
		if err != nil {
			a.errorln(err.Error())
			continue
		}

		switch choice {
		case 1:
			a.writeReview(ctx)
		case 2:
			a.editReview(ctx)
		case 3:
			a.deleteReview(ctx)
		case 0:
			return
		default:
			a.errorln("Unknown option")
		}
	}
}

func (a *App) writeReview(ctx context.Context) {
	form, ok := a.editReviewForm(ctx, model.ReviewRequest{ReviewType: model.ReviewBook, Rating: 5})
	if !ok {
		return
	}
	if err := validate.Review(reviewForm(form)); err != nil {
		a.errorln(err.Error())
		return
	}
	review, err := a.repos.Reviews.Create(ctx, form)
	if err != nil {
		a.reportError(err)
		return
	}
	a.successln(fmt.Sprintf("Created review %d", review.ID))
}

func (a *App) editReview(ctx context.Context) {
	id, err := a.promptInt("Review id")
	if err != nil {
		a.errorln(err.Error())
		return
	}
	review, err := a.repos.Reviews.ByID(ctx, id)
	if err != nil {
		a.reportError(err)
		return
	}

	seed := model.ReviewRequest{
		ReviewType: review.ReviewType,
		Title:      review.Title,
		Content:    review.Content,
		Rating:     review.Rating,
		ItemTitle:  review.ItemTitle,
		ItemAuthor: review.ItemAuthor,
		ItemLink:   review.ItemLink,
	}
	form, ok := a.editReviewForm(ctx, seed)
	if !ok {
		return
	}
	if err := validate.Review(reviewForm(form)); err != nil {
		a.errorln(err.Error())
		return
	}
	updated, err := a.repos.Reviews.Update(ctx, id, form)
	if err != nil {
		a.reportError(err)
		return
	}
	a.successln(fmt.Sprintf("Updated review %d", updated.ID))
}

func (a *App) deleteReview(ctx context.Context) {
	id, err := a.promptInt("Review id")
	if err != nil {
		a.errorln(err.Error())
		return
	}
	if a.prompt(fmt.Sprintf("Delete review %d? [y/N]", id)) != "y" {
		return
	}
	if err := a.repos.Reviews.Delete(ctx, id); err != nil {
		a.reportError(err)
		return
	}
	a.successln("Deleted")
}

// editReviewForm collects review fields. For book reviews an ISBN lookup can
// prefill the item fields; the reviewer's own title, content and rating are
// never overwritten by a lookup.
func (a *App) editReviewForm(ctx context.Context, seed model.ReviewRequest) (model.ReviewRequest, bool) {
	form := seed

	switch a.promptDefault("Type (BOOK/COURSE)", string(form.ReviewType)) {
	case "COURSE", "course", "c":
		form.ReviewType = model.ReviewCourse
	default:
		form.ReviewType = model.ReviewBook
	}

	if form.ReviewType == model.ReviewBook {
		if isbn := a.prompt("ISBN to prefill book details (blank to skip)"); isbn != "" {
			book, err := a.repos.Reviews.LookupBook(ctx, isbn)
			if err != nil {
				if api.IsNotFound(err) {
					a.noticeln("No book found for that ISBN; fill the fields by hand.")
				} else {
					a.reportError(err)
				}
			} else {
				repository.Prefill(&form, book)
				a.successln("Prefilled " + book.Title)
			}
		}
	}

	form.ItemTitle = a.promptDefault("Item title", form.ItemTitle)
	form.ItemAuthor = a.promptDefault("Item author", form.ItemAuthor)
	form.ItemLink = a.promptDefault("Item link", form.ItemLink)
	form.Title = a.promptDefault("Review title", form.Title)
	if input := a.prompt(fmt.Sprintf("Rating 1-5 [%d]", form.Rating)); input != "" {
		fmt.Sscanf(input, "%d", &form.Rating)
	}
	if a.prompt("Edit content? [Y/n]") != "n" {
		form.Content = a.promptMultiline("Content")
	}

	if a.prompt("Save? [Y/n]") == "n" {
		return form, false
	}
	return form, true
}

func reviewForm(r model.ReviewRequest) validate.ReviewForm {
	return validate.ReviewForm{
		ReviewType: string(r.ReviewType),
		Title:      r.Title,
		Content:    r.Content,
		Rating:     r.Rating,
		ItemTitle:  r.ItemTitle,
		ItemAuthor: r.ItemAuthor,
		ItemLink:   r.ItemLink,
	}
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
