//go:generate mockgen -source=source.go -destination=mocks/mock_entry_source.go -package=mocks

package app

import (
	"context"

	"github.com/agbru/gradecalc/internal/grades"
)

// EntrySource yields the entries of one grading session.
//
// Implementations return the entries accepted so far together with any
// error, so a session cut short can still be reported.
type EntrySource interface {
	Collect(ctx context.Context) (grades.Entries, error)
}
