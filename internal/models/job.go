// Shared record shapes for both collection sources.
// RawExtraction is the adapter -> normalizer contract,
// JobRecord is the canonical persisted shape.

package models

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// ErrorTitle is the sentinel title earlier collection runs wrote when a
// posting page came back blocked. The audit and cleanup tools treat
// rows carrying it as invalid.
const ErrorTitle = "403 ERROR"

// Source identifies which adapter produced an extraction.
type Source string

const (
	SourceOLX    Source = "olx"
	SourceAdzuna Source = "adzuna"
)

// Field names shared by both adapters. The normalizer only
// recognizes these keys; anything else is dropped.
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldCompany      = "company"
	FieldSalary       = "salary"
	FieldLocation     = "location"
	FieldWorkTime     = "work_time"
	FieldContractType = "contract_type"
	FieldDescription  = "description"
)

// RawExtraction is the loosely-typed output of one extracted item.
// Missing fields are simply absent from the map; a field that was
// present but blank is never stored, so "blank" and "missing" look
// identical downstream.
type RawExtraction struct {
	Source Source
	URL    string
	Fields map[string]string
}

func NewRawExtraction(source Source, url string) *RawExtraction {
	return &RawExtraction{
		Source: source,
		URL:    url,
		Fields: make(map[string]string),
	}
}

// Set stores a field value. Blank values (after trimming) are dropped
// so they normalize the same way as fields that were never found.
func (r *RawExtraction) Set(field, value string) {
	value = collapseWhitespace(value)
	if value == "" {
		return
	}
	r.Fields[field] = value
}

// Get returns the field value or "" when absent.
func (r *RawExtraction) Get(field string) string {
	return r.Fields[field]
}

// collapseWhitespace squashes runs of whitespace (including newlines
// inside descriptions) into single spaces and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JobRecord is the canonical record written to the sink. Every string
// field is "" when the source had nothing for it; ID and URL are always
// non-empty on records produced by the normalizer.
type JobRecord struct {
	ID           string
	URL          string
	Title        string
	Company      string
	Salary       string
	Location     string
	WorkTime     string
	ContractType string
	ScrapedAt    time.Time
	Description  string
}

// DeriveID produces a stable identifier from a posting URL: the last
// path segment without its .html suffix, so re-scraping the same offer
// yields the same id. URLs without a usable segment fall back to a
// short content hash of the whole URL.
func DeriveID(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		segment := strings.Trim(u.Path, "/")
		if i := strings.LastIndex(segment, "/"); i >= 0 {
			segment = segment[i+1:]
		}
		segment = strings.TrimSuffix(segment, ".html")
		if segment != "" {
			return segment
		}
	}
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:12]
}
