package repository

import (
	"sync"

	"college-predictor/domain"
)

// SearchRepositoryMemory is an in-memory implementation of SearchRepository.
// It keeps every saved input in submission order.
type SearchRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.StudentInput
}

// NewSearchRepositoryMemory creates a new in-memory search repository.
func NewSearchRepositoryMemory() *SearchRepositoryMemory {
	return &SearchRepositoryMemory{
		data: []domain.StudentInput{},
	}
}

// Save stores a copy of the input.
func (r *SearchRepositoryMemory) Save(input domain.StudentInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, input.Clone())
	return nil
}

func (r *SearchRepositoryMemory) Last() (domain.StudentInput, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.data) == 0 {
		return domain.StudentInput{}, false
	}
	return r.data[len(r.data)-1].Clone(), true
}

func (r *SearchRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
