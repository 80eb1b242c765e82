package api

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/techboard/techboard/internal/model"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL+"/api", 5*time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("Encoding response failed: %v", err)
	}
}

func TestPublishedPostsPagination(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "0" || q.Get("size") != "10" || q.Get("sort") != "createdAt,desc" {
			t.Errorf("Unexpected query %v", q)
		}

		page := model.Page[model.Post]{
			Content:       []model.Post{{ID: 1, Title: "Hello"}, {ID: 2, Title: "World"}},
			TotalElements: 23,
			TotalPages:    3,
			CurrentPage:   0,
			Size:          10,
		}
		writeJSON(t, w, http.StatusOK, page)
	}))

	page, err := client.Posts().Published(context.Background(), 0, 10, "createdAt,desc")
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}

	if page.TotalElements != 23 || page.TotalPages != 3 || page.CurrentPage != 0 {
		t.Errorf("Pagination metadata lost: %+v", page)
	}
	if len(page.Content) != 2 || page.Content[0].Title != "Hello" {
		t.Errorf("Content lost: %+v", page.Content)
	}
}

func TestRequestHeaders(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Missing content type, got %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("Accept-Encoding") != "zstd, gzip" {
			t.Errorf("Unexpected Accept-Encoding %q", r.Header.Get("Accept-Encoding"))
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("Missing request id")
		}
		writeJSON(t, w, http.StatusOK, model.Post{ID: 1})
	}))

	if _, err := client.Posts().BySlug(context.Background(), "hello"); err != nil {
		t.Fatalf("BySlug failed: %v", err)
	}
}

func TestAPIErrorFromServer(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, model.ErrorResponse{
			Status:  404,
			Message: "Post not found",
		})
	}))

	_, err := client.Posts().BySlug(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected an APIError, got %v", err)
	}
	if apiErr.Status != 404 || apiErr.Message != "Post not found" {
		t.Errorf("APIError lost detail: %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should detect a 404")
	}
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream exploded")
	}))

	err := client.Posts().Delete(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected an APIError, got %v", err)
	}
	if apiErr.Status != 502 || apiErr.Message != "Bad Gateway" {
		t.Errorf("Fallback message missing: %+v", apiErr)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := New(srv.URL+"/api", time.Second, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Posts().Published(context.Background(), 0, 10, "")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected a NetworkError, got %v", err)
	}
	if netErr.Unwrap() == nil {
		t.Error("NetworkError should wrap the transport error")
	}
}

func TestCommentDeleteSendsPassword(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" || r.URL.Path != "/api/posts/7/comments/3" {
			t.Errorf("Unexpected %s %s", r.Method, r.URL.Path)
		}
		var req model.CommentDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Decoding delete body failed: %v", err)
		}
		if req.Password != "hunter2" {
			writeJSON(t, w, http.StatusForbidden, model.ErrorResponse{Status: 403, Message: "Wrong password"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Comments().Delete(context.Background(), 7, 3, "hunter2"); err != nil {
		t.Fatalf("Delete with the right password failed: %v", err)
	}

	err := client.Comments().Delete(context.Background(), 7, 3, "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 403 {
		t.Errorf("Expected a 403 APIError on a wrong password, got %v", err)
	}
}

func TestBookByISBNNormalizesPath(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reviews/books/isbn/9781234567890" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, model.BookInfo{Title: "The Go Programming Language"})
	}))

	book, err := client.Reviews().BookByISBN(context.Background(), " 978-1-2345-6789-0 ")
	if err != nil {
		t.Fatalf("BookByISBN failed: %v", err)
	}
	if book.Title == "" {
		t.Error("Book detail lost")
	}
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"978-1-2345-6789-0", "9781234567890"},
		{"  0 13 468599 7 ", "0134685997"},
		{"9781234567890", "9781234567890"},
		{"\t978-0134190440\t", "9780134190440"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeISBN(tt.in); got != tt.want {
			t.Errorf("NormalizeISBN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeCompressedResponses(t *testing.T) {
	post := model.Post{ID: 9, Title: "compressed"}
	payload, err := json.Marshal(post)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("zstd", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "zstd")
			enc, err := zstd.NewWriter(w)
			if err != nil {
				t.Fatal(err)
			}
			enc.Write(payload)
			enc.Close()
		}))

		got, err := client.Posts().BySlug(context.Background(), "compressed")
		if err != nil {
			t.Fatalf("BySlug failed: %v", err)
		}
		if got.ID != 9 {
			t.Errorf("Decoded post %+v, want id 9", got)
		}
	})

	t.Run("gzip", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			enc := gzip.NewWriter(w)
			enc.Write(payload)
			enc.Close()
		}))

		got, err := client.Posts().BySlug(context.Background(), "compressed")
		if err != nil {
			t.Fatalf("BySlug failed: %v", err)
		}
		if got.ID != 9 {
			t.Errorf("Decoded post %+v, want id 9", got)
		}
	})

	t.Run("identity", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(payload)
		}))

		got, err := client.Posts().BySlug(context.Background(), "compressed")
		if err != nil {
			t.Fatalf("BySlug failed: %v", err)
		}
		if got.ID != 9 {
			t.Errorf("Decoded post %+v, want id 9", got)
		}
	})
}

func TestTogglePublishPath(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PATCH" || r.URL.Path != "/api/posts/5/publish" {
			t.Errorf("Unexpected %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, model.Post{ID: 5, Status: model.StatusPublished})
	}))

	post, err := client.Posts().TogglePublish(context.Background(), 5)
	if err != nil {
		t.Fatalf("TogglePublish failed: %v", err)
	}
	if post.Status != model.StatusPublished {
		t.Errorf("Status = %s, want PUBLISHED", post.Status)
	}
}
