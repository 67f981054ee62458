// Package catalog describes the datasets listed in the dashboard sidebar.
package catalog

import (
	"fmt"
	"strings"
)

// Health is the backend-reported index health.
type Health string

// Health values. Anything else the backend reports maps to Unknown.
const (
	HealthGreen   Health = "green"
	HealthYellow  Health = "yellow"
	HealthRed     Health = "red"
	HealthUnknown Health = "unknown"
)

// ParseHealth normalizes a backend health string.
func ParseHealth(s string) Health {
	switch Health(strings.ToLower(strings.TrimSpace(s))) {
	case HealthGreen:
		return HealthGreen
	case HealthYellow:
		return HealthYellow
	case HealthRed:
		return HealthRed
	default:
		return HealthUnknown
	}
}

// Descriptor is an immutable value object describing one index.
type Descriptor struct {
	id            string
	name          string
	documentCount int64
	sizeLabel     string
	health        Health
	status        string
	lastUpdated   string
	category      string
	hasGeoData    bool
}

// Params carries the optional descriptor attributes.
type Params struct {
	DisplayName   string
	DocumentCount int64
	SizeLabel     string
	Health        Health
	Status        string
	LastUpdated   string
	Category      string
	HasGeoData    bool
}

// New validates and creates a Descriptor. Display name defaults to the id.
func New(id string, p Params) (Descriptor, error) {
	if strings.TrimSpace(id) == "" {
		return Descriptor{}, fmt.Errorf("index identifier is required")
	}
	if p.DocumentCount < 0 {
		return Descriptor{}, fmt.Errorf("document count for %q must not be negative", id)
	}
	name := p.DisplayName
	if name == "" {
		name = id
	}
	health := p.Health
	if health == "" {
		health = HealthUnknown
	}
	return Descriptor{
		id:            id,
		name:          name,
		documentCount: p.DocumentCount,
		sizeLabel:     p.SizeLabel,
		health:        health,
		status:        p.Status,
		lastUpdated:   p.LastUpdated,
		category:      p.Category,
		hasGeoData:    p.HasGeoData,
	}, nil
}

// ID returns the identifier used to fetch records.
func (d Descriptor) ID() string { return d.id }

// Name returns the display name.
func (d Descriptor) Name() string { return d.name }

// DocumentCount returns the number of documents in the index.
func (d Descriptor) DocumentCount() int64 { return d.documentCount }

// SizeLabel returns the human-readable store size.
func (d Descriptor) SizeLabel() string { return d.sizeLabel }

// Health returns the index health.
func (d Descriptor) Health() Health { return d.health }

// Status returns the backend status (open/close).
func (d Descriptor) Status() string { return d.status }

// LastUpdated returns the last update label.
func (d Descriptor) LastUpdated() string { return d.lastUpdated }

// Category returns the grouping label.
func (d Descriptor) Category() string { return d.category }

// HasGeoData reports whether records are expected to carry coordinates.
func (d Descriptor) HasGeoData() bool { return d.hasGeoData }

// IsZero reports whether d is the empty descriptor.
func (d Descriptor) IsZero() bool { return d.id == "" }

// Matches reports whether the sidebar search term hits the name or category.
// An empty term matches everything.
func (d Descriptor) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(d.name), t) ||
		strings.Contains(strings.ToLower(d.category), t)
}
