package dto

type DayOutput struct {
	Date  string
	Hours float64
}

type SummaryOutput struct {
	Days         []DayOutput
	TotalHours   float64
	DailyAverage float64
	Empty        bool
}
