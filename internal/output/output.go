package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/domainaware/gcpdns/internal/clouddns"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Dump holds the same data rendered in both supported formats.
type Dump struct {
	JSON string
	CSV  string
}

// Get returns the rendering for the requested format.
func (d Dump) Get(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return d.JSON, nil
	case FormatCSV:
		return d.CSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Zones renders a zone dump as JSON and CSV. In the CSV rendering the name
// servers and record info are collapsed into |-joined cells.
func Zones(zones []clouddns.ZoneDump) (Dump, error) {
	jsonStr, err := encodeJSON(zones)
	if err != nil {
		return Dump{}, err
	}

	rows := make([][]string, 0, len(zones))
	for _, zone := range zones {
		records := make([]string, 0, len(zone.ZoneRecords))
		for _, record := range zone.ZoneRecords {
			records = append(records, record.RecordType+":"+record.Name)
		}
		rows = append(rows, []string{
			zone.DNSName,
			zone.Name,
			zone.Created,
			zone.Description,
			strings.Join(zone.NameServers, "|"),
			strings.Join(records, "|"),
		})
	}
	csvStr, err := encodeCSV(
		[]string{"dns_name", "name", "created", "description", "name_servers", "zone_records"},
		rows)
	if err != nil {
		return Dump{}, err
	}

	return Dump{JSON: jsonStr, CSV: csvStr}, nil
}

// Records renders a record set dump as JSON and CSV.
func Records(records []clouddns.RecordDump) (Dump, error) {
	jsonStr, err := encodeJSON(records)
	if err != nil {
		return Dump{}, err
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Name,
			record.RecordType,
			strconv.FormatInt(record.TTL, 10),
			strings.Join(record.Data, "|"),
		})
	}
	csvStr, err := encodeCSV([]string{"name", "record_type", "ttl", "data"}, rows)
	if err != nil {
		return Dump{}, err
	}

	return Dump{JSON: jsonStr, CSV: csvStr}, nil
}

// Write sends the dump to stdout in the requested format, or, when output
// paths are given, writes each file in the format its extension selects and
// suppresses stdout.
func Write(d Dump, format string, paths []string, stdout io.Writer) error {
	if len(paths) == 0 {
		content, err := d.Get(format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(stdout, ensureTrailingNewline(content))
		return err
	}

	for _, path := range paths {
		var content string
		switch {
		case strings.HasSuffix(strings.ToLower(path), ".json"):
			content = d.JSON
		case strings.HasSuffix(strings.ToLower(path), ".csv"):
			content = d.CSV
		default:
			return fmt.Errorf("output path must end in .csv or .json: %s", path)
		}
		if err := os.WriteFile(path, []byte(ensureTrailingNewline(content)), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

func ensureTrailingNewline(content string) string {
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

func encodeJSON(v any) (string, error) {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(content), nil
}

func encodeCSV(header []string, rows [][]string) (string, error) {
	var b strings.Builder
	writer := csv.NewWriter(&b)
	if err := writer.Write(header); err != nil {
		return "", err
	}
	if err := writer.WriteAll(rows); err != nil {
		return "", err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
