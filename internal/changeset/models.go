package changeset

import (
	"errors"
	"fmt"
)

const (
	ActionCreate  = "create"
	ActionReplace = "replace"
	ActionDelete  = "delete"
)

// ZoneChange is one parsed row of a zone changeset.
type ZoneChange struct {
	Action      string
	DNSName     string
	GCPName     string
	Description string
	RecordInfo  string
	Line        int
}

// RecordChange is one parsed row of a record set changeset.
type RecordChange struct {
	Action     string
	Name       string
	RecordType string
	TTL        int64
	Data       []string
	Line       int
}

// RowError is a changeset row failure tagged with the source line number.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Summary reports how a changeset run went. Failed is only ever non-zero
// when errors are being ignored; otherwise the first failure aborts the run.
type Summary struct {
	Applied int
	Failed  int
}

var (
	errInvalidAction = errors.New("invalid action")
	errMissingData   = errors.New("missing data")
)

func missingField(name string) error {
	return fmt.Errorf("missing field: %s", name)
}
