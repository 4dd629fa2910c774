package clouddns

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	dns "google.golang.org/api/dns/v1"
)

// MockCloudDNSClient is a mock implementation of the CloudDNSAPI interface
type MockCloudDNSClient struct {
	mock.Mock
}

// ListManagedZones mocks the ListManagedZones method
func (m *MockCloudDNSClient) ListManagedZones(ctx context.Context) ([]*dns.ManagedZone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*dns.ManagedZone), args.Error(1)
}

// CreateManagedZone mocks the CreateManagedZone method
func (m *MockCloudDNSClient) CreateManagedZone(ctx context.Context, zone *dns.ManagedZone) (*dns.ManagedZone, error) {
	args := m.Called(ctx, zone)
	return args.Get(0).(*dns.ManagedZone), args.Error(1)
}

// DeleteManagedZone mocks the DeleteManagedZone method
func (m *MockCloudDNSClient) DeleteManagedZone(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// ListResourceRecordSets mocks the ListResourceRecordSets method
func (m *MockCloudDNSClient) ListResourceRecordSets(ctx context.Context, zoneName string) ([]*dns.ResourceRecordSet, error) {
	args := m.Called(ctx, zoneName)
	return args.Get(0).([]*dns.ResourceRecordSet), args.Error(1)
}

// ApplyChange mocks the ApplyChange method
func (m *MockCloudDNSClient) ApplyChange(ctx context.Context, zoneName string, change *dns.Change) (*dns.Change, error) {
	args := m.Called(ctx, zoneName, change)
	return args.Get(0).(*dns.Change), args.Error(1)
}

func newTestProvider(client CloudDNSAPI) *Provider {
	return &Provider{
		apiClient: client,
		logger:    zap.NewNop(),
		project:   "test-project",
		ttl:       DefaultTTL,
		zoneCache: NewZoneCache(),
	}
}

func exampleZones() []*dns.ManagedZone {
	return []*dns.ManagedZone{
		{
			Name:        "example-com",
			DnsName:     "example.com.",
			Description: "Primary zone",
			NameServers: []string{"ns1.example.net.", "ns2.example.net."},
		},
		{
			Name:    "example-org",
			DnsName: "example.org.",
		},
	}
}

// TestGetZoneByDNSName tests that a zone can be matched by its DNS name,
// with or without the trailing dot
func TestGetZoneByDNSName(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return(exampleZones(), nil)

	provider := newTestProvider(mockClient)

	zone, err := provider.GetZone(context.Background(), "example.com")
	assert.NoError(t, err)
	assert.Equal(t, "example-com", zone.Name)

	zone, err = provider.GetZone(context.Background(), "EXAMPLE.COM.")
	assert.NoError(t, err)
	assert.Equal(t, "example-com", zone.Name)
}

// TestGetZoneByGCPName tests that a zone can be matched by its GCP name
func TestGetZoneByGCPName(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return(exampleZones(), nil)

	provider := newTestProvider(mockClient)

	zone, err := provider.GetZone(context.Background(), "example-org")
	assert.NoError(t, err)
	assert.Equal(t, "example.org.", zone.DnsName)
}

// TestGetZoneNotFound tests that an unknown zone returns ErrZoneNotFound
func TestGetZoneNotFound(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return(exampleZones(), nil)

	provider := newTestProvider(mockClient)

	_, err := provider.GetZone(context.Background(), "missing.example")
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

// TestCreateZoneDefaultName tests that the GCP name defaults to the DNS
// name with dots replaced by dashes
func TestCreateZoneDefaultName(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return([]*dns.ManagedZone{}, nil)

	var created *dns.ManagedZone
	mockClient.On("CreateManagedZone", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*dns.ManagedZone)
		}).
		Return(&dns.ManagedZone{}, nil)

	provider := newTestProvider(mockClient)

	err := provider.CreateZone(context.Background(), "Example.COM", "", "test zone")
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "example-com", created.Name)
	assert.Equal(t, "example.com.", created.DnsName)
	assert.Equal(t, "test zone", created.Description)
}

// TestCreateZoneConflict tests that a conflicting zone blocks creation
// before any remote create call
func TestCreateZoneConflict(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return(exampleZones(), nil)

	provider := newTestProvider(mockClient)

	err := provider.CreateZone(context.Background(), "example.com", "", "")
	assert.ErrorIs(t, err, ErrZoneConflict)
	mockClient.AssertNotCalled(t, "CreateManagedZone", mock.Anything, mock.Anything)
}

// TestDeleteZone tests that a zone delete resolves the GCP name first
func TestDeleteZone(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return(exampleZones(), nil)
	mockClient.On("DeleteManagedZone", mock.Anything, "example-com").Return(nil)

	provider := newTestProvider(mockClient)

	err := provider.DeleteZone(context.Background(), "example.com")
	assert.NoError(t, err)
	mockClient.AssertCalled(t, "DeleteManagedZone", mock.Anything, "example-com")
}

// TestDeleteZoneNotFound tests that deleting an unknown zone fails without
// a remote delete call
func TestDeleteZoneNotFound(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return(exampleZones(), nil)

	provider := newTestProvider(mockClient)

	err := provider.DeleteZone(context.Background(), "missing.example")
	assert.ErrorIs(t, err, ErrZoneNotFound)
	mockClient.AssertNotCalled(t, "DeleteManagedZone", mock.Anything, mock.Anything)
}

// TestDumpZonesWithRecords tests that record info is attached to each
// dumped zone when requested
func TestDumpZonesWithRecords(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return(exampleZones(), nil)
	mockClient.On("ListResourceRecordSets", mock.Anything, "example-com").Return([]*dns.ResourceRecordSet{
		{Name: "www.example.com.", Type: "A", Ttl: 300, Rrdatas: []string{"198.51.100.1"}},
	}, nil)
	mockClient.On("ListResourceRecordSets", mock.Anything, "example-org").Return([]*dns.ResourceRecordSet{}, nil)

	provider := newTestProvider(mockClient)

	zones, err := provider.DumpZones(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, zones, 2)
	assert.Equal(t, "example.com.", zones[0].DNSName)
	assert.Equal(t, []ZoneRecordInfo{{Name: "www.example.com.", RecordType: "A"}}, zones[0].ZoneRecords)
	assert.Empty(t, zones[1].ZoneRecords)
}

// TestDumpZonesListError tests that a listing failure propagates
func TestDumpZonesListError(t *testing.T) {
	mockClient := new(MockCloudDNSClient)
	mockClient.On("ListManagedZones", mock.Anything).Return([]*dns.ManagedZone{}, errors.New("API error"))

	provider := newTestProvider(mockClient)

	_, err := provider.DumpZones(context.Background(), false)
	assert.Error(t, err)
}
