package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		token:   "test-token",
		apiURL:  server.URL,
		httpCli: server.Client(),
	}
}

func TestGetPullRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if r.URL.Path != "/repos/owner/repo/pulls/42" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(PullRequest{
			Number: 42,
			Title:  "Add feature",
			User:   User{Login: "octocat"},
			Head:   Ref{Ref: "feature", SHA: "abc123"},
		})
	}))
	defer server.Close()

	pr, err := testClient(server).GetPullRequest(context.Background(), "owner", "repo", 42)
	if err != nil {
		t.Fatalf("GetPullRequest error: %v", err)
	}
	if pr.Number != 42 || pr.User.Login != "octocat" || pr.Head.SHA != "abc123" {
		t.Errorf("pr = %+v", pr)
	}
}

func TestListChangedFiles_Paginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		var files []ChangedFile
		switch page {
		case "1":
			for i := 0; i < 100; i++ {
				files = append(files, ChangedFile{Filename: fmt.Sprintf("file%03d.go", i)})
			}
		case "2":
			files = []ChangedFile{{Filename: "last.go", Status: "modified"}}
		default:
			t.Errorf("unexpected page %q", page)
		}
		json.NewEncoder(w).Encode(files)
	}))
	defer server.Close()

	files, err := testClient(server).ListChangedFiles(context.Background(), "owner", "repo", 7)
	if err != nil {
		t.Fatalf("ListChangedFiles error: %v", err)
	}
	if len(files) != 101 {
		t.Fatalf("files count = %d, want 101", len(files))
	}
	if files[0].Filename != "file000.go" || files[100].Filename != "last.go" {
		t.Errorf("ordering broken: first=%q last=%q", files[0].Filename, files[100].Filename)
	}
}

func TestGetFileContent_Base64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/contents/src/main.go" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("ref") != "abc123" {
			t.Errorf("ref = %q", r.URL.Query().Get("ref"))
		}
		json.NewEncoder(w).Encode(contentsEntry{
			Type:     "file",
			Path:     "src/main.go",
			Encoding: "base64",
			Content:  base64.StdEncoding.EncodeToString([]byte("package main\n")),
		})
	}))
	defer server.Close()

	content, ok, err := testClient(server).GetFileContent(context.Background(), "owner", "repo", "src/main.go", "abc123")
	if err != nil {
		t.Fatalf("GetFileContent error: %v", err)
	}
	if !ok {
		t.Fatal("expected file to be found")
	}
	if content != "package main\n" {
		t.Errorf("content = %q", content)
	}
}

func TestGetFileContent_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	_, ok, err := testClient(server).GetFileContent(context.Background(), "owner", "repo", "gone.go", "")
	if err != nil {
		t.Fatalf("a missing file should not be an error, got %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing file")
	}
}

func TestGetFileContent_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	_, _, err := testClient(server).GetFileContent(context.Background(), "owner", "repo", "a.go", "")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !IsAuthError(err) {
		t.Errorf("IsAuthError(%v) = false, want true", err)
	}
}

func TestListDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]contentsEntry{
			{Type: "file", Path: "src/a.go"},
			{Type: "dir", Path: "src/sub"},
			{Type: "file", Path: "src/b.go"},
		})
	}))
	defer server.Close()

	names, err := testClient(server).ListDirectory(context.Background(), "owner", "repo", "src", "")
	if err != nil {
		t.Fatalf("ListDirectory error: %v", err)
	}
	if len(names) != 2 || names[0] != "src/a.go" || names[1] != "src/b.go" {
		t.Errorf("names = %v", names)
	}
}

func TestPostReview(t *testing.T) {
	var got ReviewRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/repos/owner/repo/pulls/5/reviews" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(200)
	}))
	defer server.Close()

	req := ReviewRequest{
		Body:  "summary",
		Event: "COMMENT",
		Comments: []DraftComment{
			{Path: "main.go", Line: 3, Side: "RIGHT", Body: "check this"},
		},
	}
	if err := testClient(server).PostReview(context.Background(), "owner", "repo", 5, req); err != nil {
		t.Fatalf("PostReview error: %v", err)
	}
	if got.Body != "summary" || len(got.Comments) != 1 || got.Comments[0].Side != "RIGHT" {
		t.Errorf("posted review = %+v", got)
	}
}

func TestPostReview_422(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(422)
		w.Write([]byte(`{"message":"Unprocessable"}`))
	}))
	defer server.Close()

	err := testClient(server).PostReview(context.Background(), "owner", "repo", 5, ReviewRequest{Body: "x"})
	if err == nil {
		t.Fatal("expected error for 422")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error = %q", err)
	}
}

func TestAddLabels(t *testing.T) {
	var payload map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/issues/5/labels" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(200)
	}))
	defer server.Close()

	err := testClient(server).AddLabels(context.Background(), "owner", "repo", 5, []string{"security", "review-effort/3"})
	if err != nil {
		t.Fatalf("AddLabels error: %v", err)
	}
	if len(payload["labels"]) != 2 {
		t.Errorf("labels = %v", payload["labels"])
	}
}

func TestAddLabels_Empty(t *testing.T) {
	// No labels means no API call: a server returning 500 must never be hit.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
		w.WriteHeader(500)
	}))
	defer server.Close()

	if err := testClient(server).AddLabels(context.Background(), "owner", "repo", 5, nil); err != nil {
		t.Fatalf("AddLabels error: %v", err)
	}
}

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		url       string
		owner     string
		repo      string
		expectErr bool
	}{
		{"https://github.com/foo/bar.git", "foo", "bar", false},
		{"https://github.com/foo/bar", "foo", "bar", false},
		{"git@github.com:foo/bar.git", "foo", "bar", false},
		{"not a url", "", "", true},
	}
	for _, tt := range tests {
		owner, repo, err := ParseRemoteURL(tt.url)
		if (err != nil) != tt.expectErr {
			t.Errorf("ParseRemoteURL(%q) error = %v", tt.url, err)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("ParseRemoteURL(%q) = %q/%q, want %q/%q", tt.url, owner, repo, tt.owner, tt.repo)
		}
	}
}
