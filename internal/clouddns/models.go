package clouddns

// ZoneRecordInfo is a shorthand entry for a record set that belongs to a
// dumped zone.
type ZoneRecordInfo struct {
	Name       string `json:"name"`
	RecordType string `json:"record_type"`
}

// ZoneDump is the exported view of a managed zone.
type ZoneDump struct {
	DNSName     string           `json:"dns_name"`
	Name        string           `json:"name"`
	Created     string           `json:"created"`
	Description string           `json:"description"`
	NameServers []string         `json:"name_servers"`
	ZoneRecords []ZoneRecordInfo `json:"zone_records,omitempty"`
}

// RecordDump is the exported view of a resource record set.
type RecordDump struct {
	Name       string   `json:"name"`
	RecordType string   `json:"record_type"`
	TTL        int64    `json:"ttl"`
	Data       []string `json:"data"`
}
