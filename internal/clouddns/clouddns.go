package clouddns

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	dns "google.golang.org/api/dns/v1"
	"google.golang.org/api/option"
)

// DefaultTTL is the TTL (in seconds) applied to record sets when no TTL
// is given.
const DefaultTTL int64 = 300

// CloudDNSAPI defines the interface for interacting with the Cloud DNS API
type CloudDNSAPI interface {
	ListManagedZones(ctx context.Context) ([]*dns.ManagedZone, error)
	CreateManagedZone(ctx context.Context, zone *dns.ManagedZone) (*dns.ManagedZone, error)
	DeleteManagedZone(ctx context.Context, name string) error
	ListResourceRecordSets(ctx context.Context, zoneName string) ([]*dns.ResourceRecordSet, error)
	ApplyChange(ctx context.Context, zoneName string, change *dns.Change) (*dns.Change, error)
}

// Provider manages zones and resource record sets in a single Cloud DNS
// project.
type Provider struct {
	apiClient CloudDNSAPI
	logger    *zap.Logger
	project   string
	ttl       int64
	dryRun    bool
	zoneCache *ZoneCache
}

// NewProvider initializes a new Cloud DNS provider from a service account
// credential file.
func NewProvider(ctx context.Context, logger *zap.Logger, providerConfig Config) (*Provider, error) {
	if providerConfig.CredentialFile == "" {
		return nil, ErrMissingCredentialFile
	}

	project := providerConfig.Project
	if project == "" {
		var err error
		project, err = projectFromCredentialFile(providerConfig.CredentialFile)
		if err != nil {
			logger.Error("Failed to read project from credential file", zap.Error(err))
			return nil, err
		}
	}
	if project == "" {
		return nil, ErrMissingProject
	}

	service, err := dns.NewService(ctx,
		option.WithCredentialsFile(providerConfig.CredentialFile),
		option.WithScopes(dns.CloudPlatformScope, dns.NdevClouddnsReadwriteScope),
	)
	if err != nil {
		logger.Error("Failed to create Cloud DNS service", zap.Error(err))
		return nil, fmt.Errorf("failed to create Cloud DNS service: %w", err)
	}

	ttl := providerConfig.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	provider := &Provider{
		apiClient: &dnsService{service: service, project: project},
		logger:    logger,
		project:   project,
		ttl:       ttl,
		dryRun:    providerConfig.DryRun,
		zoneCache: NewZoneCache(),
	}

	return provider, nil
}

// projectFromCredentialFile reads the project_id field from a service
// account key file.
func projectFromCredentialFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}

	var key struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(content, &key); err != nil {
		return "", fmt.Errorf("failed to parse credential file: %w", err)
	}
	return key.ProjectID, nil
}

// dnsService is the CloudDNSAPI implementation backed by the real Cloud DNS
// service. It follows page tokens so callers always see complete listings.
type dnsService struct {
	service *dns.Service
	project string
}

func (s *dnsService) ListManagedZones(ctx context.Context) ([]*dns.ManagedZone, error) {
	var zones []*dns.ManagedZone
	call := s.service.ManagedZones.List(s.project)
	err := call.Pages(ctx, func(resp *dns.ManagedZonesListResponse) error {
		zones = append(zones, resp.ManagedZones...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (s *dnsService) CreateManagedZone(ctx context.Context, zone *dns.ManagedZone) (*dns.ManagedZone, error) {
	return s.service.ManagedZones.Create(s.project, zone).Context(ctx).Do()
}

func (s *dnsService) DeleteManagedZone(ctx context.Context, name string) error {
	return s.service.ManagedZones.Delete(s.project, name).Context(ctx).Do()
}

func (s *dnsService) ListResourceRecordSets(ctx context.Context, zoneName string) ([]*dns.ResourceRecordSet, error) {
	var records []*dns.ResourceRecordSet
	call := s.service.ResourceRecordSets.List(s.project, zoneName)
	err := call.Pages(ctx, func(resp *dns.ResourceRecordSetsListResponse) error {
		records = append(records, resp.Rrsets...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *dnsService) ApplyChange(ctx context.Context, zoneName string, change *dns.Change) (*dns.Change, error) {
	return s.service.Changes.Create(s.project, zoneName, change).Context(ctx).Do()
}
