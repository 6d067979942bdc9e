package schedule

// SessionView is the read-only slice of the order service the schedule
// queries need
type SessionView interface {
	OrdersByDate() map[string]map[string]int
	Hospital() string
	LoyaltyPoints() int
}
