// Package errs is the error vocabulary of the booking service:
// cockroachdb/errors for wrapping with stacks, plus Mark to tag
// usecase failures with the domain sentinels handlers map to HTTP
// statuses via errors.Is.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark associates err with a sentinel (usually one from
// domain_errors.go) without hiding the original cause.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// ExtractStackLines renders the first maxLines of the verbose error
// for structured logs, where a full stack would drown the entry.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
