package clouddns

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	dns "google.golang.org/api/dns/v1"
)

// GetZone returns a managed zone matched by its GCP name or its DNS name.
func (p *Provider) GetZone(ctx context.Context, name string) (*dns.ManagedZone, error) {
	dnsName := ensureTrailingDot(strings.ToLower(name))

	zones, err := p.apiClient.ListManagedZones(ctx)
	if err != nil {
		p.logger.Error("Failed to list zones", zap.Error(err))
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	for _, zone := range zones {
		if zone.Name == name || zone.DnsName == dnsName {
			return zone, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, name)
}

// CreateZone creates a managed zone. The GCP name defaults to the DNS name
// with dots replaced by dashes. A zone that already uses either name is a
// conflict.
func (p *Provider) CreateZone(ctx context.Context, dnsName, gcpName, description string) error {
	dnsName = strings.TrimSuffix(strings.ToLower(dnsName), ".")
	if gcpName == "" {
		gcpName = strings.ReplaceAll(dnsName, ".", "-")
	}
	dnsName = dnsName + "."

	zones, err := p.apiClient.ListManagedZones(ctx)
	if err != nil {
		p.logger.Error("Failed to list zones", zap.Error(err))
		return fmt.Errorf("failed to list zones: %w", err)
	}
	for _, zone := range zones {
		if zone.Name == gcpName || zone.DnsName == dnsName {
			return fmt.Errorf("%w: %s (%s)", ErrZoneConflict, zone.DnsName, zone.Name)
		}
	}

	if p.dryRun {
		p.logger.Info("Would create zone (dry-run)",
			zap.String("dns_name", dnsName),
			zap.String("name", gcpName))
		return nil
	}

	p.logger.Info("Creating zone",
		zap.String("dns_name", dnsName),
		zap.String("name", gcpName))

	_, err = p.apiClient.CreateManagedZone(ctx, &dns.ManagedZone{
		Name:        gcpName,
		DnsName:     dnsName,
		Description: description,
	})
	if err != nil {
		p.logger.Error("Failed to create zone",
			zap.String("dns_name", dnsName),
			zap.Error(err))
		return fmt.Errorf("failed to create zone %s: %w", dnsName, err)
	}
	return nil
}

// DeleteZone deletes a managed zone matched by its GCP name or DNS name.
func (p *Provider) DeleteZone(ctx context.Context, name string) error {
	zone, err := p.GetZone(ctx, name)
	if err != nil {
		return err
	}

	if p.dryRun {
		p.logger.Info("Would delete zone (dry-run)", zap.String("name", zone.Name))
		return nil
	}

	p.logger.Info("Deleting zone",
		zap.String("dns_name", zone.DnsName),
		zap.String("name", zone.Name))

	if err := p.apiClient.DeleteManagedZone(ctx, zone.Name); err != nil {
		p.logger.Error("Failed to delete zone",
			zap.String("name", zone.Name),
			zap.Error(err))
		return fmt.Errorf("failed to delete zone %s: %w", zone.Name, err)
	}
	return nil
}

// DumpZones returns the exported view of every managed zone in the project.
// When includeRecords is true, each zone also lists the name and type of its
// record sets.
func (p *Provider) DumpZones(ctx context.Context, includeRecords bool) ([]ZoneDump, error) {
	zones, err := p.apiClient.ListManagedZones(ctx)
	if err != nil {
		p.logger.Error("Failed to list zones", zap.Error(err))
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	dumps := make([]ZoneDump, 0, len(zones))
	for _, zone := range zones {
		dump := ZoneDump{
			DNSName:     zone.DnsName,
			Name:        zone.Name,
			Created:     zone.CreationTime,
			Description: zone.Description,
			NameServers: zone.NameServers,
		}
		if includeRecords {
			records, err := p.apiClient.ListResourceRecordSets(ctx, zone.Name)
			if err != nil {
				p.logger.Error("Failed to list record sets",
					zap.String("zone", zone.Name),
					zap.Error(err))
				return nil, fmt.Errorf("failed to list record sets for zone %s: %w", zone.Name, err)
			}
			dump.ZoneRecords = make([]ZoneRecordInfo, 0, len(records))
			for _, record := range records {
				dump.ZoneRecords = append(dump.ZoneRecords, ZoneRecordInfo{
					Name:       record.Name,
					RecordType: record.Type,
				})
			}
		}
		dumps = append(dumps, dump)
	}

	p.logger.Debug("Dumped zones", zap.Int("count", len(dumps)))
	return dumps, nil
}
