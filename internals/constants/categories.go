package constants

// Closed set of event categories.
const (
	CategoryWorkshop    = "Workshop"
	CategorySeminar     = "Seminar"
	CategoryConference  = "Conference"
	CategoryCompetition = "Competition"
	CategoryCultural    = "Cultural"
	CategoryAcademic    = "Academic"
	CategorySports      = "Sports"
)

var EventCategories = []string{
	CategoryWorkshop,
	CategorySeminar,
	CategoryConference,
	CategoryCompetition,
	CategoryCultural,
	CategoryAcademic,
	CategorySports,
}

func IsValidCategory(c string) bool {
	for _, v := range EventCategories {
		if v == c {
			return true
		}
	}
	return false
}

// EventIDPrefix is prepended to the sequential event number (EVT001).
const EventIDPrefix = "EVT"
