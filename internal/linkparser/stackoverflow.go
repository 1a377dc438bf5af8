package linkparser

import "regexp"

// The segment after the question id is required but may be empty.
// It stops at any line terminator, not only \n.
var stackOverflowURLRegex = regexp.MustCompile(`^https?://stackoverflow\.com/questions/(\d+)/[^\r\n\x{85}\x{2028}\x{2029}]*$`)

// StackOverflowRecognizer handles StackOverflow question URLs
type StackOverflowRecognizer struct{}

// Name returns the recognizer name
func (StackOverflowRecognizer) Name() string {
	return "stackoverflow"
}

// Pattern returns the regular expression URLs must match in full
func (StackOverflowRecognizer) Pattern() string {
	return stackOverflowURLRegex.String()
}

// Extract returns the numeric question id
func (StackOverflowRecognizer) Extract(url string) (string, bool) {
	matches := stackOverflowURLRegex.FindStringSubmatch(url)
	if matches == nil {
		return "", false
	}
	return matches[1], true
}
