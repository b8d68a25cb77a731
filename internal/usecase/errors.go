package usecase

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput      = crerr.New("invalid input")
	ErrMalformedRecord   = crerr.New("malformed record")
	ErrSourceUnavailable = crerr.New("source unavailable")
	ErrPersistence       = crerr.New("persistence failure")
)

// MalformedRecordError reports an upstream record that could not be mapped
// into a canonical match. It is absorbed by skipping the record.
type MalformedRecordError struct {
	MatchID string
	Reason  string
}

func (e *MalformedRecordError) Error() string {
	if e.MatchID == "" {
		return fmt.Sprintf("malformed record: %s", e.Reason)
	}
	return fmt.Sprintf("malformed record match_id=%s: %s", e.MatchID, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// SourceUnavailable marks err as a fatal provider failure.
func SourceUnavailable(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(crerr.Wrapf(err, format, args...), ErrSourceUnavailable)
}

// Persistence marks err as a fatal storage failure.
func Persistence(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(crerr.Wrapf(err, format, args...), ErrPersistence)
}
