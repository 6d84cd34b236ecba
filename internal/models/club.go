package models

import (
	"strings"
	"time"
)

// Club represents a nightlife venue
type Club struct {
	ID          int       `json:"id" db:"id" yaml:"-"`
	Name        string    `json:"name" db:"name" yaml:"name"`
	Location    string    `json:"location" db:"location" yaml:"location"`
	Description string    `json:"description" db:"description" yaml:"description"`
	Category    string    `json:"category" db:"category" yaml:"category"`
	Type        string    `json:"type" db:"type" yaml:"type"`
	Rating      float64   `json:"rating" db:"rating" yaml:"rating"`
	ImageURL    string    `json:"image_url" db:"image_url" yaml:"image_url"`
	Tags        []string  `json:"tags" db:"tags" yaml:"tags"`
	IsActive    bool      `json:"is_active" db:"is_active" yaml:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" yaml:"-"`
}

// PromotionalAd is an exclusive offer for a club at a special per-person price
type PromotionalAd struct {
	ID            int       `json:"id" db:"id" yaml:"-"`
	ClubID        int       `json:"club_id" db:"club_id" yaml:"-"`
	Title         string    `json:"title" db:"title" yaml:"title"`
	Description   string    `json:"description" db:"description" yaml:"description"`
	ImageURL      string    `json:"image_url" db:"image_url" yaml:"image_url"`
	OriginalPrice int       `json:"original_price" db:"original_price" yaml:"original_price"`
	SpecialPrice  int       `json:"special_price" db:"special_price" yaml:"special_price"`
	IsActive      bool      `json:"is_active" db:"is_active" yaml:"-"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" yaml:"-"`
}

// Savings returns the per-person discount of the promotion
func (p *PromotionalAd) Savings() int {
	if p.OriginalPrice <= p.SpecialPrice {
		return 0
	}
	return p.OriginalPrice - p.SpecialPrice
}

// ClubSearchFilters represents filters for club search
type ClubSearchFilters struct {
	Query   string   // Substring of name, location, description or a tag
	Filters []string // Category or type names, any of which may match
}

// Matches reports whether the club satisfies the filters
func (f ClubSearchFilters) Matches(c *Club) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !containsFold(c.Name, q) && !containsFold(c.Location, q) && !containsFold(c.Description, q) && !hasTag(c.Tags, q) {
			return false
		}
	}

	if len(f.Filters) > 0 {
		matched := false
		for _, filter := range f.Filters {
			if strings.EqualFold(filter, c.Category) || strings.EqualFold(filter, c.Type) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// FilterClubs returns the clubs matching the filters, preserving order
func FilterClubs(clubs []*Club, filters ClubSearchFilters) []*Club {
	result := make([]*Club, 0, len(clubs))
	for _, club := range clubs {
		if filters.Matches(club) {
			result = append(result, club)
		}
	}
	return result
}

func containsFold(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}

func hasTag(tags []string, lowerSubstr string) bool {
	for _, tag := range tags {
		if containsFold(tag, lowerSubstr) {
			return true
		}
	}
	return false
}
