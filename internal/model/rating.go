package model

import "fmt"

type Rating string

const (
	RatingER    Rating = "ER"
	RatingL     Rating = "L"
	RatingAge10 Rating = "10"
	RatingAge12 Rating = "12"
	RatingAge14 Rating = "14"
	RatingAge16 Rating = "16"
	RatingAge18 Rating = "18"
)

var ratings = map[Rating]struct{}{
	RatingER:    {},
	RatingL:     {},
	RatingAge10: {},
	RatingAge12: {},
	RatingAge14: {},
	RatingAge16: {},
	RatingAge18: {},
}

func (r Rating) IsValid() bool {
	_, ok := ratings[r]
	return ok
}

func (r Rating) String() string {
	return string(r)
}

func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown rating %q", s)
	}
	return r, nil
}
