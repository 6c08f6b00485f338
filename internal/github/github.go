package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.github.com"

// Client provides access to the GitHub REST API.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a new GitHub client. Requires GITHUB_TOKEN env var.
func NewClient() (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}

	apiURL := os.Getenv("GITHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	apiURL = strings.TrimRight(apiURL, "/")

	return &Client{
		token:   token,
		apiURL:  apiURL,
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// PullRequest holds the PR metadata the pipeline needs.
type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	State   string `json:"state"`
	Draft   bool   `json:"draft"`
	User    User   `json:"user"`
	Head    Ref    `json:"head"`
	Base    Ref    `json:"base"`
	HTMLURL string `json:"html_url"`
}

// User is a GitHub account reference.
type User struct {
	Login string `json:"login"`
}

// Ref is a branch reference with its head commit.
type Ref struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// ChangedFile mirrors one entry of the PR files listing. Patch is empty for
// binary files and very large diffs.
type ChangedFile struct {
	Filename         string `json:"filename"`
	Status           string `json:"status"`
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	Patch            string `json:"patch,omitempty"`
	PreviousFilename string `json:"previous_filename,omitempty"`
}

// GetPullRequest fetches PR metadata.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, prNumber int) (*PullRequest, error) {
	var pr PullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, prNumber)
	if err := c.getJSON(ctx, path, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// ListChangedFiles fetches the full changed-file list for a pull request,
// following pagination. Order is GitHub's listing order and is stable
// within a run.
func (c *Client) ListChangedFiles(ctx context.Context, owner, repo string, prNumber int) ([]ChangedFile, error) {
	var all []ChangedFile
	for page := 1; ; page++ {
		path := fmt.Sprintf("/repos/%s/%s/pulls/%d/files?per_page=100&page=%d", owner, repo, prNumber, page)
		var files []ChangedFile
		if err := c.getJSON(ctx, path, &files); err != nil {
			return nil, err
		}
		all = append(all, files...)
		if len(files) < 100 {
			return all, nil
		}
	}
}

// contentsEntry is the subset of the contents API payload we consume.
type contentsEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// GetFileContent fetches a file's content at ref. A missing file is not an
// error: the second return value is false.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, bool, error) {
	reqPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))
	if ref != "" {
		reqPath += "?ref=" + url.QueryEscape(ref)
	}

	var entry contentsEntry
	err := c.getJSON(ctx, reqPath, &entry)
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	if entry.Type != "file" {
		return "", false, nil
	}
	if entry.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(entry.Content, "\n", ""))
		if err != nil {
			return "", false, fmt.Errorf("decoding content of %s: %w", path, err)
		}
		return string(decoded), true, nil
	}
	return entry.Content, true, nil
}

// ListDirectory lists the file names (not subdirectories) directly inside
// dir at ref. A missing directory yields an empty list.
func (c *Client) ListDirectory(ctx context.Context, owner, repo, dir, ref string) ([]string, error) {
	reqPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(dir))
	if ref != "" {
		reqPath += "?ref=" + url.QueryEscape(ref)
	}

	var entries []contentsEntry
	err := c.getJSON(ctx, reqPath, &entries)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type == "file" {
			names = append(names, e.Path)
		}
	}
	return names, nil
}

// DraftComment is one inline comment of a review to publish. Side is
// "RIGHT" for new-file lines and "LEFT" for old-file lines.
type DraftComment struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Side string `json:"side"`
	Body string `json:"body"`
}

// ReviewRequest is a PR review to post.
type ReviewRequest struct {
	Body     string         `json:"body"`
	Event    string         `json:"event"`
	Comments []DraftComment `json:"comments,omitempty"`
}

// PostReview posts a pull request review with inline comments.
func (c *Client) PostReview(ctx context.Context, owner, repo string, prNumber int, review ReviewRequest) error {
	payload, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("marshaling review: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/reviews", c.apiURL, owner, repo, prNumber)
	body, status, err := c.do(ctx, "POST", url, payload)
	if err != nil {
		return fmt.Errorf("posting review: %w", err)
	}
	if status == 422 {
		return fmt.Errorf("GitHub rejected review (422): %s", body)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("GitHub API error (status %d): %s", status, body)
	}
	return nil
}

// AddLabels adds labels to the PR's underlying issue. Existing labels are
// preserved by the API.
func (c *Client) AddLabels(ctx context.Context, owner, repo string, prNumber int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	payload, err := json.Marshal(map[string][]string{"labels": labels})
	if err != nil {
		return fmt.Errorf("marshaling labels: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d/labels", c.apiURL, owner, repo, prNumber)
	body, status, err := c.do(ctx, "POST", url, payload)
	if err != nil {
		return fmt.Errorf("adding labels: %w", err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("GitHub API error (status %d): %s", status, body)
	}
	return nil
}

// notFoundError marks a 404 so callers can treat absence as a degraded
// result instead of a failure.
type notFoundError struct {
	path string
}

func (e *notFoundError) Error() string { return "not found: " + e.path }

func isNotFound(err error) bool {
	_, ok := err.(*notFoundError)
	return ok
}

// authFailedError marks a 401/403 response. Authentication failure is fatal
// for the whole run.
type authFailedError struct {
	message string
}

func (e *authFailedError) Error() string {
	return "authentication failed: " + e.message
}

// IsAuthError checks if an error is a GitHub authentication error.
func IsAuthError(err error) bool {
	_, ok := err.(*authFailedError)
	return ok
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, status, err := c.do(ctx, "GET", c.apiURL+path, nil)
	if err != nil {
		return err
	}
	switch {
	case status == 404:
		return &notFoundError{path: path}
	case status == 401 || status == 403:
		return &authFailedError{message: body}
	case status != 200:
		return fmt.Errorf("GitHub API error (status %d): %s", status, body)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) (string, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return "", 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("reading response: %w", err)
	}
	return string(body), resp.StatusCode, nil
}

// escapePath escapes each path segment while keeping separators.
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL.
func DetectRepo() (owner, repo string, err error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	return ParseRemoteURL(strings.TrimSpace(string(out)))
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
