package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidIssue reports a newsletter issue that failed validation.
var ErrInvalidIssue = errors.New("invalid newsletter issue")

// IssueContent carries both renderings of an issue body. Every delivery sends
// both so clients can pick.
type IssueContent struct {
	HTML string
	Text string
}

// Issue is a single newsletter edition submitted for publication.
type Issue struct {
	Title   string
	Content IssueContent
}

// ParseIssue validates the submitted fields and builds an Issue.
func ParseIssue(title, html, text string) (Issue, error) {
	if title == "" {
		return Issue{}, fmt.Errorf("%w: title must not be empty", ErrInvalidIssue)
	}
	if html == "" && text == "" {
		return Issue{}, fmt.Errorf("%w: content must not be empty", ErrInvalidIssue)
	}
	return Issue{Title: title, Content: IssueContent{HTML: html, Text: text}}, nil
}
