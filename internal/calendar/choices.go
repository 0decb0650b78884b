package calendar

// Choice pairs a stored code with its display label.
type Choice struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EventTypeChoices enumerates the supported event categories.
var EventTypeChoices = []Choice{
	{"NONE", "None"},
	{"CUSM", "Customer Meeting"},
	{"SCAL", "Sales Call"},
	{"FLUP", "Follow-Up"},
	{"PDEM", "Product Demo"},
	{"PDIS", "Proposal Discussion"},
	{"CSNG", "Contract Signing"},
	{"FSES", "Feedback Session"},
	{"TSES", "Training Session"},
	{"NEVT", "Networking Event"},
	{"LQCL", "Lead Qualification Call"},
	{"OSES", "Onboarding Session"},
	{"CLCH", "Campaign Launch"},
	{"SUCL", "Support Call"},
	{"CARY", "Customer Anniversary"},
	{"RREM", "Renewal Reminder"},
	{"CSSY", "Customer Satisfaction Survey"},
	{"TMTG", "Team Meeting"},
	{"GLRW", "Goal Review"},
	{"PERW", "Performance Review"},
	{"PPDN", "Partnership Discussion"},
	{"BDAY", "Birthday"},
}

// RecurrenceChoices enumerates the supported repeat intervals.
var RecurrenceChoices = []Choice{
	{"NONE", "None"},
	{"DALY", "Daily"},
	{"WEEK", "Weekly"},
	{"MONT", "Monthly"},
	{"YEAR", "Yearly"},
}

// ValidEventType reports whether code is a known event type.
func ValidEventType(code string) bool {
	return containsChoice(EventTypeChoices, code)
}

// ValidRecurrence reports whether code is a known recurrence interval.
func ValidRecurrence(code string) bool {
	return containsChoice(RecurrenceChoices, code)
}

func containsChoice(choices []Choice, code string) bool {
	for _, c := range choices {
		if c.Key == code {
			return true
		}
	}
	return false
}
