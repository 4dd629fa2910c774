package clouddns

import (
	"github.com/domainaware/gcpdns/pkg/errors"
)

var (
	// ErrZoneNotFound is returned when a requested zone does not exist
	ErrZoneNotFound = errors.ErrZoneNotFound

	// ErrZoneConflict is returned when a conflicting zone already exists
	ErrZoneConflict = errors.ErrZoneConflict

	// ErrRecordSetNotFound is returned when a record set does not exist
	ErrRecordSetNotFound = errors.ErrRecordSetNotFound

	// ErrExistingRecordSetFound is returned when a record set already exists
	// and replacing it was not requested
	ErrExistingRecordSetFound = errors.ErrExistingRecordSetFound

	// ErrMissingCredentialFile is returned when no credential file is provided
	ErrMissingCredentialFile = errors.ErrMissingCredentialFile

	// ErrMissingProject is returned when no project could be determined from
	// the flags or the credential file
	ErrMissingProject = errors.ErrMissingProject
)
