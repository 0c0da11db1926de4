package service

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/yndnr/easycar-go/internal/core/domain"
)

// VehicleService keeps each user's vehicles in memory. Lists are kept in
// insertion order.
type VehicleService struct {
	mu      sync.RWMutex
	byOwner map[string][]domain.Vehicle
	newID   func() string
}

// NewVehicleService creates an empty VehicleService.
func NewVehicleService() *VehicleService {
	return &VehicleService{
		byOwner: make(map[string][]domain.Vehicle),
		newID:   uuid.NewString,
	}
}

// List returns a copy of owner's vehicles, never nil.
func (s *VehicleService) List(ctx context.Context, owner string) ([]domain.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Vehicle, len(s.byOwner[owner]))
	copy(out, s.byOwner[owner])
	return out, nil
}

// Create validates plate and registers it for owner. A plate the owner
// already has is rejected with ErrValidation.
func (s *VehicleService) Create(ctx context.Context, owner, plate string) (domain.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return domain.Vehicle{}, err
	}
	plate, err := domain.NormalizePlate(plate)
	if err != nil {
		return domain.Vehicle{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byOwner[owner]
	if slices.ContainsFunc(list, func(v domain.Vehicle) bool { return v.Plate == plate }) {
		return domain.Vehicle{}, domain.ErrValidation.WithDetails("plate: already registered")
	}

	v := domain.Vehicle{ID: s.newID(), Plate: plate}
	s.byOwner[owner] = append(list, v)
	return v, nil
}

// Delete removes the vehicle id from owner's list.
func (s *VehicleService) Delete(ctx context.Context, owner, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byOwner[owner]
	i := slices.IndexFunc(list, func(v domain.Vehicle) bool { return v.ID == id })
	if i < 0 {
		return domain.ErrVehicleNotFound.WithDetails("id: " + id)
	}
	s.byOwner[owner] = slices.Delete(list, i, i+1)
	return nil
}

// Count returns the number of vehicles across all owners.
func (s *VehicleService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, list := range s.byOwner {
		n += len(list)
	}
	return n
}
