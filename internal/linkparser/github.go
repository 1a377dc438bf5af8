package linkparser

import "regexp"

// Matches https://github.com/<owner>/<repo> with no further path
var githubURLRegex = regexp.MustCompile(`^https?://github\.com/([\w-]+)/([\w-]+)$`)

// GitHubRecognizer handles GitHub repository URLs
type GitHubRecognizer struct{}

// Name returns the recognizer name
func (GitHubRecognizer) Name() string {
	return "github"
}

// Pattern returns the regular expression URLs must match in full
func (GitHubRecognizer) Pattern() string {
	return githubURLRegex.String()
}

// Extract returns "owner/repo" for a repository URL
func (GitHubRecognizer) Extract(url string) (string, bool) {
	matches := githubURLRegex.FindStringSubmatch(url)
	if matches == nil {
		return "", false
	}
	return matches[1] + "/" + matches[2], true
}
