package errors

import "errors"

var (
	// ErrZoneNotFound is returned when a requested zone does not exist
	ErrZoneNotFound = errors.New("zone not found")

	// ErrZoneConflict is returned when a conflicting zone already exists
	ErrZoneConflict = errors.New("a conflicting zone already exists")

	// ErrRecordSetNotFound is returned when a record set does not exist
	ErrRecordSetNotFound = errors.New("record set not found")

	// ErrExistingRecordSetFound is returned when a record set already exists
	// and replacing it was not requested
	ErrExistingRecordSetFound = errors.New("existing record set found")

	// ErrMissingCredentialFile is returned when no credential file is provided
	ErrMissingCredentialFile = errors.New("credential file is required")

	// ErrMissingProject is returned when no project could be determined from
	// the flags or the credential file
	ErrMissingProject = errors.New("project is required")
)
