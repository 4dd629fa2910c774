package clouddns

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	dns "google.golang.org/api/dns/v1"
)

// quoteSpace matches quote characters and any whitespace that follows them.
// TXT record data is stripped of these before being chunked and re-quoted.
var quoteSpace = regexp.MustCompile("[\"'`]\\s*")

// dottedRecordTypes lists the record types whose data values must end with a
// trailing dot.
var dottedRecordTypes = map[string]bool{
	"CNAME": true,
	"MX":    true,
	"NS":    true,
	"PTR":   true,
	"SRV":   true,
}

// maxTXTStringLength is the longest single character-string allowed in TXT
// record data.
const maxTXTStringLength = 253

// zoneForRecord resolves the zone a record name belongs to, going through
// the run-scoped cache keyed by the name's registrable domain.
func (p *Provider) zoneForRecord(ctx context.Context, name string) (*dns.ManagedZone, error) {
	trimmed := strings.TrimSuffix(strings.ToLower(name), ".")
	domain, err := publicsuffix.EffectiveTLDPlusOne(trimmed)
	if err != nil {
		// Names at or above the public suffix boundary are looked up as-is.
		domain = trimmed
	}
	return p.zoneCache.GetOrPopulate(domain, func() (*dns.ManagedZone, error) {
		return p.GetZone(ctx, domain)
	})
}

// CreateOrReplaceRecordSet creates a resource record set, or replaces an
// existing one when replace is true. A replace deletes the old set and adds
// the new one in a single change.
func (p *Provider) CreateOrReplaceRecordSet(ctx context.Context, name, recordType string, ttl int64, data []string, replace bool) error {
	zone, err := p.zoneForRecord(ctx, name)
	if err != nil {
		return err
	}

	name = qualifyName(name, zone.DnsName)
	recordType = strings.ToUpper(recordType)
	if ttl <= 0 {
		ttl = p.ttl
	}
	data = formatRecordData(recordType, data)

	records, err := p.apiClient.ListResourceRecordSets(ctx, zone.Name)
	if err != nil {
		p.logger.Error("Failed to list record sets",
			zap.String("zone", zone.Name),
			zap.Error(err))
		return fmt.Errorf("failed to list record sets for zone %s: %w", zone.Name, err)
	}

	change := &dns.Change{}
	var existing *dns.ResourceRecordSet
	for _, record := range records {
		if record.Name == name && record.Type == recordType {
			if !replace {
				return fmt.Errorf("%w: %s %s %d %v",
					ErrExistingRecordSetFound, record.Name, record.Type, record.Ttl, record.Rrdatas)
			}
			existing = record
			change.Deletions = append(change.Deletions, record)
		}
	}

	if existing == nil {
		p.logger.Info("Adding record set",
			zap.String("name", name),
			zap.String("type", recordType),
			zap.Int64("ttl", ttl),
			zap.Strings("data", data))
	} else {
		p.logger.Info("Replacing record set",
			zap.String("name", name),
			zap.String("type", recordType),
			zap.Int64("old_ttl", existing.Ttl),
			zap.Strings("old_data", existing.Rrdatas),
			zap.Int64("ttl", ttl),
			zap.Strings("data", data))
	}

	change.Additions = append(change.Additions, &dns.ResourceRecordSet{
		Name:    name,
		Type:    recordType,
		Ttl:     ttl,
		Rrdatas: data,
	})

	if p.dryRun {
		p.logger.Info("Would apply change (dry-run)", zap.String("zone", zone.Name))
		return nil
	}

	if _, err := p.apiClient.ApplyChange(ctx, zone.Name, change); err != nil {
		p.logger.Error("Failed to apply record set change",
			zap.String("name", name),
			zap.String("type", recordType),
			zap.Error(err))
		return fmt.Errorf("failed to apply change for %s %s: %w", name, recordType, err)
	}
	return nil
}

// DeleteRecordSet deletes the record set with the given name and type.
func (p *Provider) DeleteRecordSet(ctx context.Context, name, recordType string) error {
	p.logger.Info("Deleting record set",
		zap.String("name", name),
		zap.String("type", recordType))

	zone, err := p.zoneForRecord(ctx, name)
	if err != nil {
		return err
	}

	name = qualifyName(name, zone.DnsName)
	recordType = strings.ToUpper(recordType)

	records, err := p.apiClient.ListResourceRecordSets(ctx, zone.Name)
	if err != nil {
		p.logger.Error("Failed to list record sets",
			zap.String("zone", zone.Name),
			zap.Error(err))
		return fmt.Errorf("failed to list record sets for zone %s: %w", zone.Name, err)
	}

	var target *dns.ResourceRecordSet
	for _, record := range records {
		if record.Name == name && record.Type == recordType {
			target = record
		}
	}
	if target == nil {
		return fmt.Errorf("%w: %s %s", ErrRecordSetNotFound, name, recordType)
	}

	if p.dryRun {
		p.logger.Info("Would delete record set (dry-run)",
			zap.String("name", name),
			zap.String("type", recordType))
		return nil
	}

	change := &dns.Change{Deletions: []*dns.ResourceRecordSet{target}}
	if _, err := p.apiClient.ApplyChange(ctx, zone.Name, change); err != nil {
		p.logger.Error("Failed to delete record set",
			zap.String("name", name),
			zap.String("type", recordType),
			zap.Error(err))
		return fmt.Errorf("failed to delete %s %s: %w", name, recordType, err)
	}
	return nil
}

// DumpRecords returns the exported view of every record set in a zone.
func (p *Provider) DumpRecords(ctx context.Context, zoneName string) ([]RecordDump, error) {
	zone, err := p.GetZone(ctx, zoneName)
	if err != nil {
		return nil, err
	}

	records, err := p.apiClient.ListResourceRecordSets(ctx, zone.Name)
	if err != nil {
		p.logger.Error("Failed to list record sets",
			zap.String("zone", zone.Name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list record sets for zone %s: %w", zone.Name, err)
	}

	dumps := make([]RecordDump, 0, len(records))
	for _, record := range records {
		dumps = append(dumps, RecordDump{
			Name:       record.Name,
			RecordType: record.Type,
			TTL:        record.Ttl,
			Data:       record.Rrdatas,
		})
	}

	p.logger.Debug("Dumped record sets",
		zap.String("zone", zone.Name),
		zap.Int("count", len(dumps)))
	return dumps, nil
}

// qualifyName rewrites a record name as a fully-qualified name inside the
// given zone. The zone's DNS name may be present or absent in the input.
func qualifyName(name, zoneDNSName string) string {
	name = strings.TrimSuffix(strings.ToLower(name), ".")
	base := strings.TrimSuffix(zoneDNSName, ".")
	name = strings.TrimSuffix(name, base)
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return zoneDNSName
	}
	return name + "." + zoneDNSName
}

// formatRecordData normalizes record data values for the given type: TXT
// data is quote-stripped, chunked, and re-quoted; types with hostname data
// gain a trailing dot.
func formatRecordData(recordType string, data []string) []string {
	if recordType == "TXT" {
		formatted := make([]string, 0, len(data))
		for _, value := range data {
			formatted = append(formatted, formatTXTValue(value))
		}
		return formatted
	}

	if dottedRecordTypes[recordType] {
		formatted := make([]string, 0, len(data))
		for _, value := range data {
			formatted = append(formatted, ensureTrailingDot(value))
		}
		return formatted
	}

	return data
}

// formatTXTValue strips quoting from a TXT value and re-encodes it as one or
// more quoted character-strings no longer than 253 bytes each. Chunks break
// on rune boundaries so multi-byte values stay valid UTF-8.
func formatTXTValue(value string) string {
	value = quoteSpace.ReplaceAllString(value, "")
	if value == "" {
		return `""`
	}
	var b strings.Builder
	for len(value) > 0 {
		end := maxTXTStringLength
		if end >= len(value) {
			end = len(value)
		} else {
			for end > 0 && !utf8.RuneStart(value[end]) {
				end--
			}
		}
		b.WriteString("\"" + value[:end] + "\"")
		value = value[end:]
	}
	return b.String()
}

// ensureTrailingDot ensures the given name ends with a dot.
func ensureTrailingDot(name string) string {
	return strings.TrimSuffix(name, ".") + "."
}
