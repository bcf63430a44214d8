package scraper

import "time"

// MonthYear is one calendar month to scrape.
type MonthYear struct {
	Month int
	Year  int
}

// CurrentAndNextMonths returns the current month and the next one,
// wrapping December into January of the following year.
func CurrentAndNextMonths(now time.Time) []MonthYear {
	month := int(now.Month())
	year := now.Year()

	nextMonth := month + 1
	nextYear := year
	if month == 12 {
		nextMonth = 1
		nextYear = year + 1
	}

	return []MonthYear{
		{Month: month, Year: year},
		{Month: nextMonth, Year: nextYear},
	}
}
