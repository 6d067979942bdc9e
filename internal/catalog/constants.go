package catalog

import "time"

// Hospitals is the fixed set of delivery locations
var Hospitals = []string{
	"ALEXANDRA HOSPITAL",
	"CHANGI GENERAL HOSPITAL",
	"INSTITUTE OF MENTAL HEALTH",
	"KHOO TECK PUAT HOSPITAL",
	"KK WOMEN'S AND CHILDREN'S HOSPITAL",
	"NATIONAL UNIVERSITY HOSPITAL",
	"NG TENG FONG GENERAL HOSPITAL & JURONG COMMUNITY HOSPITAL",
	"SENGKANG GENERAL HOSPITAL",
	"SINGAPORE GENERAL HOSPITAL",
	"TAN TOCK SENG HOSPITAL PTE LTD",
	"WOODLANDS HEALTH",
}

const (
	// DefaultHospital is the delivery location preselected for new sessions
	DefaultHospital = "SENGKANG GENERAL HOSPITAL"

	// ValidReferralCode is the single accepted referral code,
	// compared case-insensitively against user input
	ValidReferralCode = "354ZAN"

	// DateFormat is the calendar date layout used throughout the service
	DateFormat = "2006-01-02"
)

// IsValidHospital reports whether name is one of the fixed delivery locations
func IsValidHospital(name string) bool {
	for _, h := range Hospitals {
		if h == name {
			return true
		}
	}
	return false
}

// DefaultDeliveryDate returns tomorrow relative to now, the earliest
// date the kitchen can fulfil
func DefaultDeliveryDate(now time.Time) string {
	return now.AddDate(0, 0, 1).Format(DateFormat)
}
