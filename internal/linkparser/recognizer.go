// Package linkparser classifies URLs by the external service they point to
// and extracts a normalized identifier from them.
//
// Classification is a pure string match. A URL that no recognizer accepts is
// reported through the ok result, never through an error.
package linkparser

// Recognizer matches the URLs of a single service
type Recognizer interface {
	// Name returns the service name
	Name() string
	// Extract returns the normalized identifier if url belongs to the service
	Extract(url string) (string, bool)
}

// Link is the outcome of a successful classification
type Link struct {
	Service string `json:"service"`
	ID      string `json:"id"`
}

// String returns "service:id"
func (l Link) String() string {
	return l.Service + ":" + l.ID
}
