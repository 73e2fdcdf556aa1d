package entity

import "github.com/google/uuid"

type Month struct {
	ID       uuid.UUID `json:"id"`
	Year     int       `json:"year"`
	MonthNum int       `json:"month_num"`
}

func ValidMonthNum(n int) bool {
	return n >= 1 && n <= 12
}
