package publish

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRateLimited is reported when the remote asks the caller to slow down.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnauthorized is reported when the credential is rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is reported for objects that do not exist or are not shared with the integration.
	ErrNotFound = errors.New("object not found")
	// ErrRootPreparation aborts a run when the root page cannot be cleared or retitled.
	ErrRootPreparation = errors.New("root page preparation failed")
)

// RemoteError describes a failed remote call.
type RemoteError struct {
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err is a rate-limit signal from the remote.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// AccessError is returned when the credential or the root page cannot be
// used. Steps tell the operator how to fix it.
type AccessError struct {
	Reason string
	PageID string
	Steps  []string
	Err    error
}

func (e *AccessError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Steps) > 0 {
		b.WriteString("\nTo fix this:\n")
		for i, s := range e.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	if e.PageID != "" {
		fmt.Fprintf(&b, "Your page ID is: %s\n", e.PageID)
	}
	return b.String()
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

var tokenSteps = []string{
	"Go to https://www.notion.so/my-integrations",
	"Create a new internal integration named \"DocFlow\" in your workspace",
	"Copy the integration secret",
	"Set NOTION_API_KEY in your .env file or environment",
}

var pageAccessSteps = []string{
	"Open the Notion page that should hold the documentation",
	"Click 'Share' in the top right",
	"Click 'Add people, emails, groups, or integrations'",
	"Search for your integration (DocFlow) and click 'Invite'",
	"If the ID below looks wrong, copy it again from the page URL",
}
