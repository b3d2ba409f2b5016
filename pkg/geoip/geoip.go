// Package geoip provides MMDB-based IP geolocation for country enrichment
// of tracking events.
//
// Supports the common MMDB providers (MaxMind GeoLite2, DB-IP Lite,
// IP2Location LITE). The reader degrades gracefully: when no database is
// configured or the file is missing, NewReader returns nil and lookups
// return empty results, leaving enrichment to request headers.
package geoip

import (
	"net"
	"path/filepath"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// Reader provides IP geolocation lookups using an MMDB database
type Reader struct {
	db       *geoip2.Reader
	provider string
	dbPath   string
}

// NewReader creates a new GeoIP reader from an MMDB file
//
// Returns nil, nil if the path is empty or the file doesn't exist
// (graceful degradation). Returns nil, error if the file exists but
// can't be opened.
func NewReader(mmdbPath string) (*Reader, error) {
	if mmdbPath == "" {
		return nil, nil
	}

	db, err := geoip2.Open(mmdbPath)
	if err != nil {
		if strings.Contains(err.Error(), "no such file") || strings.Contains(err.Error(), "cannot find") {
			return nil, nil
		}
		return nil, err
	}

	return &Reader{
		db:       db,
		provider: detectProvider(mmdbPath),
		dbPath:   mmdbPath,
	}, nil
}

// detectProvider attempts to identify the MMDB provider from filename
func detectProvider(mmdbPath string) string {
	filename := strings.ToLower(filepath.Base(mmdbPath))

	switch {
	case strings.Contains(filename, "geolite2") || strings.Contains(filename, "maxmind"):
		return "maxmind"
	case strings.Contains(filename, "dbip") || strings.Contains(filename, "db-ip"):
		return "dbip"
	case strings.Contains(filename, "ip2location"):
		return "ip2location"
	default:
		return "unknown"
	}
}

// CountryCode returns the ISO country code for the given IP address.
//
// Returns "" if no database is loaded, the IP is invalid or private,
// or the IP is not found in the database.
func (r *Reader) CountryCode(ipStr string) string {
	if r == nil || r.db == nil {
		return ""
	}

	// Handle "ip:port" format by extracting just the IP
	host, _, err := net.SplitHostPort(ipStr)
	if err != nil {
		host = ipStr
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return ""
	}

	// Private/local IPs won't be in geo databases anyway
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsPrivate() {
		return ""
	}

	record, err := r.db.Country(ip)
	if err != nil {
		return ""
	}

	return record.Country.IsoCode
}

// Provider returns the detected provider name
func (r *Reader) Provider() string {
	if r == nil {
		return "none"
	}
	return r.provider
}

// IsLoaded returns true if a database is successfully loaded
func (r *Reader) IsLoaded() bool {
	return r != nil && r.db != nil
}

// Close closes the underlying database
func (r *Reader) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
