package changeset

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ZoneService is the set of provider operations a zone changeset needs.
type ZoneService interface {
	CreateZone(ctx context.Context, dnsName, gcpName, description string) error
	DeleteZone(ctx context.Context, name string) error
	DeleteRecordSet(ctx context.Context, name, recordType string) error
}

// RecordService is the set of provider operations a record changeset needs.
type RecordService interface {
	CreateOrReplaceRecordSet(ctx context.Context, name, recordType string, ttl int64, data []string, replace bool) error
	DeleteRecordSet(ctx context.Context, name, recordType string) error
}

// Applier applies changeset rows strictly in order. Each row either becomes
// exactly one provider mutation or fails; with ignoreErrors a failed row is
// logged and skipped, otherwise it aborts the run. Applied rows are never
// rolled back.
type Applier struct {
	logger       *zap.Logger
	ignoreErrors bool
}

// NewApplier initializes an Applier with the given error policy.
func NewApplier(logger *zap.Logger, ignoreErrors bool) *Applier {
	return &Applier{logger: logger, ignoreErrors: ignoreErrors}
}

// ApplyZones reads a zone changeset CSV and applies each row against zones.
func (a *Applier) ApplyZones(ctx context.Context, input io.Reader, zones ZoneService) (Summary, error) {
	a.logger.Info("Applying zones changeset")

	rows, err := newRowReader(input)
	if err != nil {
		return Summary{}, err
	}

	return a.run(rows, func(row map[string]string, line int) error {
		change, err := parseZoneChange(row, line)
		if err != nil {
			return err
		}
		return a.applyZoneChange(ctx, zones, change)
	})
}

// ApplyRecordSets reads a record changeset CSV and applies each row against
// records.
func (a *Applier) ApplyRecordSets(ctx context.Context, input io.Reader, records RecordService) (Summary, error) {
	a.logger.Info("Applying record sets changeset")

	rows, err := newRowReader(input)
	if err != nil {
		return Summary{}, err
	}

	return a.run(rows, func(row map[string]string, line int) error {
		change, err := parseRecordChange(row, line)
		if err != nil {
			return err
		}
		return a.applyRecordChange(ctx, records, change)
	})
}

// run drives the per-row loop and the error policy shared by both changeset
// kinds.
func (a *Applier) run(rows *rowReader, applyRow func(row map[string]string, line int) error) (Summary, error) {
	var summary Summary
	for {
		row, line, err := rows.next()
		if err == io.EOF {
			break
		}
		if err == nil {
			err = applyRow(row, line)
		}
		if err != nil {
			summary.Failed++
			rowErr := &RowError{Line: line, Err: err}
			if !a.ignoreErrors {
				return summary, rowErr
			}
			a.logger.Error("Skipping failed row",
				zap.Int("line", rowErr.Line),
				zap.Error(rowErr.Err))
			continue
		}
		summary.Applied++
	}

	a.logger.Info("Changeset applied",
		zap.Int("applied", summary.Applied),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func parseZoneChange(row map[string]string, line int) (*ZoneChange, error) {
	action := strings.ToLower(row["action"])
	if action == "" {
		return nil, missingField("action")
	}
	dnsName := strings.ToLower(row["dns_name"])
	if dnsName == "" {
		return nil, missingField("dns_name")
	}

	return &ZoneChange{
		Action:      action,
		DNSName:     dnsName,
		GCPName:     row["gcp_name"],
		Description: row["description"],
		RecordInfo:  row["record_info"],
		Line:        line,
	}, nil
}

func parseRecordChange(row map[string]string, line int) (*RecordChange, error) {
	action := strings.ToLower(row["action"])
	if action == "" {
		return nil, missingField("action")
	}
	name := strings.ToLower(row["name"])
	if name == "" {
		return nil, missingField("name")
	}
	recordType := strings.ToUpper(row["record_type"])
	if recordType == "" {
		return nil, missingField("record_type")
	}

	var ttl int64
	if rawTTL := row["ttl"]; rawTTL != "" {
		parsed, err := strconv.ParseInt(rawTTL, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ttl: %s", rawTTL)
		}
		ttl = parsed
	}

	return &RecordChange{
		Action:     action,
		Name:       name,
		RecordType: recordType,
		TTL:        ttl,
		Data:       SplitData(recordType, row["data"]),
		Line:       line,
	}, nil
}

// SplitData splits raw record data on |. CNAME data is a single value and is
// passed through unsplit.
func SplitData(recordType, raw string) []string {
	if raw == "" {
		return nil
	}
	if strings.ToUpper(recordType) == "CNAME" {
		return []string{raw}
	}
	return strings.Split(raw, "|")
}

func (a *Applier) applyZoneChange(ctx context.Context, zones ZoneService, change *ZoneChange) error {
	switch change.Action {
	case ActionCreate:
		return zones.CreateZone(ctx, change.DNSName, change.GCPName, change.Description)
	case ActionDelete:
		// Record sets listed in record_info are removed first so the zone
		// delete does not fail on leftover records.
		for _, entry := range strings.Split(change.RecordInfo, "|") {
			if entry == "" {
				continue
			}
			parts := strings.SplitN(entry, ":", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid record_info entry: %s", entry)
			}
			if err := zones.DeleteRecordSet(ctx, parts[1], parts[0]); err != nil {
				a.logger.Warn("Record set could not be deleted",
					zap.String("entry", entry),
					zap.Error(err))
				return err
			}
		}
		return zones.DeleteZone(ctx, change.DNSName)
	default:
		return errInvalidAction
	}
}

func (a *Applier) applyRecordChange(ctx context.Context, records RecordService, change *RecordChange) error {
	switch change.Action {
	case ActionCreate, ActionReplace:
		if len(change.Data) == 0 {
			return errMissingData
		}
		return records.CreateOrReplaceRecordSet(ctx, change.Name, change.RecordType,
			change.TTL, change.Data, change.Action == ActionReplace)
	case ActionDelete:
		return records.DeleteRecordSet(ctx, change.Name, change.RecordType)
	default:
		return errInvalidAction
	}
}
