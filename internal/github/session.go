package github

import "context"

// PRSession binds a Client to one pull request. Content lookups are pinned
// to the PR head commit so the assembled context matches the diff being
// reviewed.
type PRSession struct {
	cli     *Client
	owner   string
	repo    string
	number  int
	headSHA string
}

// NewPRSession fetches the PR metadata and returns the bound session.
func NewPRSession(ctx context.Context, cli *Client, owner, repo string, prNumber int) (*PRSession, *PullRequest, error) {
	pr, err := cli.GetPullRequest(ctx, owner, repo, prNumber)
	if err != nil {
		return nil, nil, err
	}
	s := &PRSession{
		cli:     cli,
		owner:   owner,
		repo:    repo,
		number:  prNumber,
		headSHA: pr.Head.SHA,
	}
	return s, pr, nil
}

// ListChangedFiles returns the PR's changed files in GitHub's listing order.
func (s *PRSession) ListChangedFiles(ctx context.Context) ([]ChangedFile, error) {
	return s.cli.ListChangedFiles(ctx, s.owner, s.repo, s.number)
}

// GetFileContent returns a file's content at the PR head. The second return
// value is false when the file does not exist there.
func (s *PRSession) GetFileContent(ctx context.Context, path string) (string, bool, error) {
	return s.cli.GetFileContent(ctx, s.owner, s.repo, path, s.headSHA)
}

// ListDirectory lists the files directly inside dir at the PR head.
func (s *PRSession) ListDirectory(ctx context.Context, dir string) ([]string, error) {
	return s.cli.ListDirectory(ctx, s.owner, s.repo, dir, s.headSHA)
}

// PostReview publishes a review on the bound PR.
func (s *PRSession) PostReview(ctx context.Context, review ReviewRequest) error {
	return s.cli.PostReview(ctx, s.owner, s.repo, s.number, review)
}

// AddLabels adds labels to the bound PR.
func (s *PRSession) AddLabels(ctx context.Context, labels []string) error {
	return s.cli.AddLabels(ctx, s.owner, s.repo, s.number, labels)
}
