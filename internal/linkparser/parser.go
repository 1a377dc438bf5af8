package linkparser

import (
	"errors"
	"fmt"
)

// ErrNoRecognizers is returned by New when called without recognizers
var ErrNoRecognizers = errors.New("linkparser: at least one recognizer is required")

// Parser tries its recognizers in order and reports the first match.
// It is immutable after construction and safe for concurrent use.
type Parser struct {
	recognizers []Recognizer
}

// New creates a Parser. Argument order is precedence order.
func New(recognizers ...Recognizer) (*Parser, error) {
	if len(recognizers) == 0 {
		return nil, ErrNoRecognizers
	}
	for i, r := range recognizers {
		if r == nil {
			return nil, fmt.Errorf("linkparser: recognizer %d is nil", i)
		}
	}

	rs := make([]Recognizer, len(recognizers))
	copy(rs, recognizers)
	return &Parser{recognizers: rs}, nil
}

// MustNew is like New but panics on error
func MustNew(recognizers ...Recognizer) *Parser {
	p, err := New(recognizers...)
	if err != nil {
		panic(err)
	}
	return p
}

// GitHub is checked before StackOverflow
var defaultParser = MustNew(
	GitHubRecognizer{},
	StackOverflowRecognizer{},
)

// Default returns the parser for all supported services
func Default() *Parser {
	return defaultParser
}

// Classify returns the identifier extracted by the first matching recognizer
func (p *Parser) Classify(url string) (string, bool) {
	link, ok := p.Resolve(url)
	return link.ID, ok
}

// Resolve is like Classify but also reports which service matched
func (p *Parser) Resolve(url string) (Link, bool) {
	for _, r := range p.recognizers {
		if id, ok := r.Extract(url); ok {
			return Link{Service: r.Name(), ID: id}, true
		}
	}
	return Link{}, false
}

// Recognizers returns a copy of the recognizers in precedence order
func (p *Parser) Recognizers() []Recognizer {
	rs := make([]Recognizer, len(p.recognizers))
	copy(rs, p.recognizers)
	return rs
}

// Classify classifies url with the default parser
func Classify(url string) (string, bool) {
	return defaultParser.Classify(url)
}
