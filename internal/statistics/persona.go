package statistics

// Persona is a reader tier derived from the average pages read per day
type Persona string

const (
	// PersonaCasual reads fewer than 15 pages a day
	PersonaCasual Persona = "Casual"
	// PersonaSteady reads 15 to 30 pages a day
	PersonaSteady Persona = "Steady"
	// PersonaDevourer reads 30 to 50 pages a day
	PersonaDevourer Persona = "Devourer"
	// PersonaLiterary reads 50 pages a day or more
	PersonaLiterary Persona = "Literary-tier"
)

// personaThresholds are upper bounds, exclusive, in ascending order
var personaThresholds = []struct {
	below   float64
	persona Persona
}{
	{below: 15, persona: PersonaCasual},
	{below: 30, persona: PersonaSteady},
	{below: 50, persona: PersonaDevourer},
}

// ClassifyPersona maps an average of daily pages to a persona.
// A value equal to a threshold belongs to the higher tier.
func ClassifyPersona(avgDailyPages float64) Persona {
	for _, threshold := range personaThresholds {
		if avgDailyPages < threshold.below {
			return threshold.persona
		}
	}
	return PersonaLiterary
}

// Pace is the motivational tier for a yearly book projection
type Pace string

const (
	// PaceAmazing is 20 books a year or more
	PaceAmazing Pace = "amazing"
	// PaceOnTrack is 10 to 20 books a year
	PaceOnTrack Pace = "on_track"
	// PaceBelowPace is fewer than 10 books a year
	PaceBelowPace Pace = "below_pace"
)

// ClassifyPace maps books per year to a motivational tier
func ClassifyPace(booksPerYear float64) Pace {
	switch {
	case booksPerYear >= 20:
		return PaceAmazing
	case booksPerYear >= 10:
		return PaceOnTrack
	default:
		return PaceBelowPace
	}
}

// Message returns the sentence shown to the reader for the pace
func (p Pace) Message() string {
	switch p {
	case PaceAmazing:
		return "You're doing amazing! If you keep it up, you'll finish more than 20 books a year!"
	case PaceOnTrack:
		return "You're doing well! Looks like you'll read at least 10 books this year."
	default:
		return "Your pace is a bit low, but every page counts. Keep going!"
	}
}
