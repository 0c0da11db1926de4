package connection

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/yndnr/easycar-go/internal/core/domain"
)

// VehicleService manages the signed-in user's vehicles. Requests carry the
// client's current bearer token.
type VehicleService struct {
	client *HTTPClient
}

// NewVehicleService creates a VehicleService over client.
func NewVehicleService(client *HTTPClient) *VehicleService {
	return &VehicleService{client: client}
}

// List returns the user's vehicles. An empty list is not an error.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	resp, err := s.client.Get(ctx, "/vehicle")
	if err != nil {
		return nil, mapVehicleError(err)
	}

	var vehicles []domain.Vehicle
	if err := ParseResponse(resp, &vehicles); err != nil {
		return nil, mapVehicleError(err)
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return vehicles, nil
}

type createVehicleRequest struct {
	Plate string `json:"plate"`
}

// Create registers a vehicle. The plate is normalized first; an invalid
// plate is domain.ErrValidation and nothing is sent.
func (s *VehicleService) Create(ctx context.Context, plate string) (domain.Vehicle, error) {
	plate, err := domain.NormalizePlate(plate)
	if err != nil {
		return domain.Vehicle{}, err
	}

	resp, err := s.client.Post(ctx, "/vehicle", createVehicleRequest{Plate: plate})
	if err != nil {
		return domain.Vehicle{}, mapVehicleError(err)
	}

	var v domain.Vehicle
	if err := ParseResponse(resp, &v); err != nil {
		return domain.Vehicle{}, mapVehicleError(err)
	}
	return v, nil
}

// Delete removes the vehicle with the given ID.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation.WithDetails("id: enter the vehicle id")
	}

	resp, err := s.client.Delete(ctx, "/vehicle/"+url.PathEscape(id))
	if err != nil {
		return mapVehicleError(err)
	}
	if err := ParseResponse(resp, nil); err != nil {
		return mapVehicleError(err).WithDetails("id: " + id)
	}
	return nil
}

// mapVehicleError converts transport and API errors to domain errors.
func mapVehicleError(err error) *domain.DomainError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return domain.ErrUnauthorized.WithCause(err)
		case http.StatusNotFound:
			return domain.ErrVehicleNotFound.WithCause(err)
		case http.StatusBadRequest:
			return domain.ErrValidation.WithCause(err).WithDetails(apiErr.Message)
		}
	}
	return domain.ErrBackend.WithCause(err)
}
