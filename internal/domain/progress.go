package domain

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// StartOfDay truncates a timestamp to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of the day containing t.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// StartOfWeek steps back from t to the most recent Sunday at midnight.
// If t is already a Sunday, it truncates to that day.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// ComputeStreak derives the consecutive-day streak from a user's completed
// sessions, scanning backward one calendar day at a time starting at today.
// A user who practiced every prior day but not yet today reads 0: the streak
// counts days ending at today, not at the last practice day.
func ComputeStreak(sessions []*PracticeSession, today time.Time) int {
	streak := 0
	day := StartOfDay(today)

	for hasSessionOn(sessions, day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

func hasSessionOn(sessions []*PracticeSession, day time.Time) bool {
	for _, s := range sessions {
		if s.WasCompleted && SameDay(s.CompletedAt.In(day.Location()), day) {
			return true
		}
	}
	return false
}

// DayBucket is one calendar day of the weekly report.
type DayBucket struct {
	Day      string `json:"day"`
	Date     string `json:"date"`
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
}

// WeeklyBuckets folds completed sessions into the 7 calendar days of the
// week containing today, Sunday first. Always returns exactly 7 buckets;
// days without sessions are zero-valued.
func WeeklyBuckets(sessions []*PracticeSession, today time.Time) []DayBucket {
	start := StartOfWeek(today)
	buckets := make([]DayBucket, 0, 7)

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		bucket := DayBucket{
			Day:  day.Weekday().String(),
			Date: day.Format(DateLayout),
		}

		for _, s := range sessions {
			if s.WasCompleted && SameDay(s.CompletedAt.In(day.Location()), day) {
				bucket.Minutes += s.Minutes()
				bucket.Sessions++
			}
		}

		buckets = append(buckets, bucket)
	}

	return buckets
}
