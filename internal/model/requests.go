package model

// PostRequest is the write shape for posts. Tags are referenced by name;
// the server resolves or creates them.
type PostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Summary    string   `json:"summary,omitempty"`
	Author     string   `json:"author"`
	CategoryID *int     `json:"categoryId,omitempty"`
	TagNames   []string `json:"tagNames"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ReviewRequest struct {
	ReviewType ReviewType `json:"reviewType"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Rating     int        `json:"rating"`
	ItemTitle  string     `json:"itemTitle"`
	ItemAuthor string     `json:"itemAuthor,omitempty"`
	ItemLink   string     `json:"itemLink,omitempty"`
}

// Comment passwords are write-only: they are submitted with every comment
// mutation and never stored client-side nor returned by the server.
type CommentCreateRequest struct {
	Author   string `json:"author"`
	Password string `json:"password"`
	Body     string `json:"body"`
}

type CommentUpdateRequest struct {
	Password string `json:"password"`
	Body     string `json:"body"`
}

type CommentDeleteRequest struct {
	Password string `json:"password"`
}
