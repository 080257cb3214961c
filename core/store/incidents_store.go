package store

import (
	"context"
	"sort"
	"sync"
)

const DefaultIncidentStatus = "open"

const (
	msgCreateFieldsRequired = "'title' and 'description' are required fields"
	msgStatusRequired       = "'status' field is required"
)

type Incident struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// CreateIncidentInput carries the raw request fields. A nil pointer means
// the field was absent or null; an empty string is a valid value.
type CreateIncidentInput struct {
	Title       *string
	Description *string
	Status      *string
}

type IncidentsStore interface {
	CreateIncident(ctx context.Context, in CreateIncidentInput) (*Incident, error)
	UpdateIncidentStatus(ctx context.Context, id int64, status *string) (*Incident, error)
	GetIncident(ctx context.Context, id int64) (*Incident, error)
	ListIncidents(ctx context.Context) ([]Incident, error)
	CountIncidents(ctx context.Context) int
	NextID() int64
}

type memoryIncidentsStore struct {
	mu    sync.RWMutex
	items map[int64]*Incident
	seq   *Sequence
}

func NewMemoryIncidentsStore() IncidentsStore {
	return NewMemoryIncidentsStoreWithSequence(NewSequence())
}

func NewMemoryIncidentsStoreWithSequence(seq *Sequence) IncidentsStore {
	if seq == nil {
		seq = NewSequence()
	}
	return &memoryIncidentsStore{items: make(map[int64]*Incident), seq: seq}
}

func (s *memoryIncidentsStore) CreateIncident(_ context.Context, in CreateIncidentInput) (*Incident, error) {
	var missing []string
	if in.Title == nil {
		missing = append(missing, "title")
	}
	if in.Description == nil {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing, Message: msgCreateFieldsRequired}
	}
	status := DefaultIncidentStatus
	if in.Status != nil {
		status = *in.Status
	}
	incident := &Incident{
		Title:       *in.Title,
		Description: *in.Description,
		Status:      status,
	}

	// id allocation and insertion must not be separable by any reader
	s.mu.Lock()
	incident.ID = s.seq.Next()
	s.items[incident.ID] = incident
	out := *incident
	s.mu.Unlock()
	return &out, nil
}

func (s *memoryIncidentsStore) UpdateIncidentStatus(_ context.Context, id int64, status *string) (*Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	incident, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if status == nil {
		return nil, &ValidationError{Fields: []string{"status"}, Message: msgStatusRequired}
	}
	incident.Status = *status
	out := *incident
	return &out, nil
}

func (s *memoryIncidentsStore) GetIncident(_ context.Context, id int64) (*Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	incident, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *incident
	return &out, nil
}

func (s *memoryIncidentsStore) ListIncidents(_ context.Context) ([]Incident, error) {
	s.mu.RLock()
	res := make([]Incident, 0, len(s.items))
	for _, incident := range s.items {
		res = append(res, *incident)
	}
	s.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *memoryIncidentsStore) CountIncidents(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// NextID reports the id the next successful create will receive.
func (s *memoryIncidentsStore) NextID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq.Peek()
}
