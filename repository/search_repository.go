package repository

import "college-predictor/domain"

// SearchRepository remembers the most recent search so it can be relaxed
// and resubmitted.
type SearchRepository interface {
	Save(input domain.StudentInput) error
	Last() (domain.StudentInput, bool)
}
