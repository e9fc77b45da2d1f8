package domain

import "time"

// Default settings seeded on first start
const (
	DefaultHorizonDays         = 3
	DefaultTimezoneOffsetHours = 2
	DefaultHolidayDescription  = "Holiday"
)

// DefaultForbiddenWeekdays weekdays closed by default
var DefaultForbiddenWeekdays = []time.Weekday{time.Friday}

// DefaultCategories booking categories offered until an admin configures them
var DefaultCategories = []string{"consultation", "checkup"}

// Business validation constants
const (
	MinHorizonDays         = 1
	MaxHorizonDays         = 30
	MinTimezoneOffsetHours = -12
	MaxTimezoneOffsetHours = 14
	MinCategoryLength      = 2
	MaxCategoryLength      = 30
	MaxCategories          = 20
	MinContactNameLength   = 2
	MaxContactNameLength   = 30
	ContactPhoneLength     = 11
	MaxNotesLength         = 200
	MinVisitorIDLength     = 5
	MaxVisitorIDLength     = 120
	MaxHolidayDescription  = 100
)

// Roles carried in identity tokens
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
