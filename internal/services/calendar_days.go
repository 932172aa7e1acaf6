package services

import "time"

var CalendarWeekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type CalendarDayState struct {
	Date        time.Time `json:"date"`
	DateString  string    `json:"date_string"`
	Day         int       `json:"day"`
	IsToday     bool      `json:"is_today"`
	IsPeriod    bool      `json:"is_period"`
	IsOvulation bool      `json:"is_ovulation"`
}

type CalendarMonth struct {
	Year          int                `json:"year"`
	Month         time.Month         `json:"month"`
	Label         string             `json:"label"`
	LeadingBlanks int                `json:"leading_blanks"`
	Days          []CalendarDayState `json:"days"`
}

// BuildCalendarMonth lays out one month with Sunday-first leading blanks.
func BuildCalendarMonth(model *CycleModel, monthStart time.Time, now time.Time, location *time.Location) CalendarMonth {
	if location == nil {
		location = time.UTC
	}
	year, month, _ := monthStart.In(location).Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, location)
	last := first.AddDate(0, 1, -1)

	calendar := CalendarMonth{
		Year:          year,
		Month:         month,
		Label:         first.Format("January 2006"),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]CalendarDayState, 0, last.Day()),
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		calendar.Days = append(calendar.Days, CalendarDayState{
			Date:        day,
			DateString:  day.Format(dayInputLayout),
			Day:         day.Day(),
			IsToday:     SameCalendarDay(day, now, location),
			IsPeriod:    model.IsPeriodDay(day),
			IsOvulation: model.IsOvulationDay(day),
		})
	}
	return calendar
}

func ShiftMonth(monthStart time.Time, delta int) time.Time {
	year, month, _ := monthStart.Date()
	return time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, monthStart.Location())
}
