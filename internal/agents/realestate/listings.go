package realestate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// listings is the canned property inventory; a production deployment would
// query an MLS or property API here.
var listings = []domain.Property{
	{
		ID:          "PROP001",
		Address:     "123 Main St, Downtown",
		Price:       450000,
		Bedrooms:    3,
		Bathrooms:   2,
		Sqft:        1800,
		Description: "Beautiful downtown condo with city views",
	},
	{
		ID:          "PROP002",
		Address:     "456 Oak Ave, Suburbs",
		Price:       520000,
		Bedrooms:    4,
		Bathrooms:   3,
		Sqft:        2200,
		Description: "Spacious family home with large backyard",
	},
}

// SearchCriteria filters a property search.
type SearchCriteria struct {
	MaxPrice float64
	Bedrooms int
	Location string
}

var (
	bedroomsRe = regexp.MustCompile(`(\d+)[- ]?(?:bed(?:room)?s?|br)\b`)
	maxPriceRe = regexp.MustCompile(`(?:under|below|max|up to)\s*\$?(\d+)\s*k`)
)

var knownLocations = []string{"downtown", "suburbs", "city", "urban"}

// parseCriteria extracts search filters from a free-text query.
func parseCriteria(query string) SearchCriteria {
	lower := strings.ToLower(query)
	var c SearchCriteria

	if m := bedroomsRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.Bedrooms = n
		}
	}
	if m := maxPriceRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.MaxPrice = float64(n) * 1000
		}
	}
	for _, loc := range knownLocations {
		if strings.Contains(lower, loc) {
			c.Location = loc
			break
		}
	}
	return c
}

// SearchProperties filters the inventory against the criteria and formats
// the results.
func SearchProperties(c SearchCriteria) string {
	var matched []domain.Property
	for _, prop := range listings {
		if c.MaxPrice > 0 && prop.Price > c.MaxPrice {
			continue
		}
		if c.Bedrooms > 0 && prop.Bedrooms != c.Bedrooms {
			continue
		}
		if c.Location != "" && !strings.Contains(strings.ToLower(prop.Address), c.Location) {
			continue
		}
		matched = append(matched, prop)
	}

	if len(matched) == 0 {
		return "No properties found matching your criteria."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d properties:\n\n", len(matched))
	for _, prop := range matched {
		fmt.Fprintf(&b, "%s\n", prop.Address)
		fmt.Fprintf(&b, "  $%s\n", formatPrice(prop.Price))
		fmt.Fprintf(&b, "  %d bed, %d bath\n", prop.Bedrooms, prop.Bathrooms)
		fmt.Fprintf(&b, "  %d sqft\n", prop.Sqft)
		fmt.Fprintf(&b, "  %s\n\n", prop.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', 0, 64)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
