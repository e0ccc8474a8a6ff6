package booking

import (
	"context"
	"errors"

	"github.com/hazelmere/envbooker-backend/internal/environment"
	"github.com/hazelmere/envbooker-backend/internal/resourcetype"
	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

type Service interface {
	// ListAvailability returns the environment's current slot set annotated
	// with occupancy, rendered for tzName.
	ListAvailability(ctx context.Context, environmentID, tzName, holderID string) ([]schedule.Availability, error)

	// Book reserves a slot for the holder. The slot key is re-validated
	// against a freshly generated slot set, so a stale key from an old
	// render (e.g. a one-off whose deadline passed between render and
	// click) fails with ErrSlotInvalid before touching storage.
	Book(ctx context.Context, environmentID, slotKey, holderID, tzName string) (*Booking, error)

	// Cancel releases the holder's booking. The actor must be the holder or
	// an administrator of the environment's resource type. No slot
	// re-validation: cancelling an expired booking is always allowed.
	Cancel(ctx context.Context, environmentID, slotKey, holderID, actorID string) error
}

type service struct {
	repo       Repository
	envService environment.Service
	rtService  resourcetype.Service
	clock      schedule.Clock
}

func NewService(repo Repository, envService environment.Service, rtService resourcetype.Service, clock schedule.Clock) Service {
	return &service{
		repo:       repo,
		envService: envService,
		rtService:  rtService,
		clock:      clock,
	}
}

// currentSlots loads the environment and derives its slot set as seen from
// tzName at the facade clock's now.
func (s *service) currentSlots(ctx context.Context, environmentID, tzName string) (*environment.Environment, []schedule.Slot, error) {
	env, err := s.envService.GetByID(ctx, environmentID)
	if err != nil {
		if errors.Is(err, environment.ErrNotFound) {
			return nil, nil, ErrEnvironmentNotFound
		}
		return nil, nil, err
	}

	loc, err := schedule.LoadLocation(tzName)
	if err != nil {
		return nil, nil, ErrInvalidTimezone
	}

	return env, schedule.Generate(env.Pattern, env.Settings, loc, s.clock.Now()), nil
}

func (s *service) ListAvailability(ctx context.Context, environmentID, tzName, holderID string) ([]schedule.Availability, error) {
	env, slots, err := s.currentSlots(ctx, environmentID, tzName)
	if err != nil {
		return nil, err
	}

	occupants, err := s.repo.OccupantsBySlot(ctx, environmentID)
	if err != nil {
		return nil, err
	}

	return schedule.Annotate(slots, occupants, env.Capacity, holderID), nil
}

func (s *service) Book(ctx context.Context, environmentID, slotKey, holderID, tzName string) (*Booking, error) {
	env, slots, err := s.currentSlots(ctx, environmentID, tzName)
	if err != nil {
		return nil, err
	}

	if !schedule.ContainsKey(slots, slotKey) {
		return nil, ErrSlotInvalid
	}

	return s.repo.Reserve(ctx, environmentID, slotKey, holderID, env.Capacity)
}

func (s *service) Cancel(ctx context.Context, environmentID, slotKey, holderID, actorID string) error {
	if actorID != holderID {
		env, err := s.envService.GetByID(ctx, environmentID)
		if err != nil {
			if errors.Is(err, environment.ErrNotFound) {
				return ErrEnvironmentNotFound
			}
			return err
		}

		isAdmin, err := s.rtService.IsAdministrator(ctx, env.ResourceTypeID, actorID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return ErrPermissionDenied
		}
	}

	return s.repo.Release(ctx, environmentID, slotKey, holderID)
}
