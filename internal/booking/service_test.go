package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazelmere/envbooker-backend/internal/environment"
	"github.com/hazelmere/envbooker-backend/internal/resourcetype"
	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeStore mirrors the SQL transaction's semantics: the occupancy check and
// the insert happen under one lock.
type fakeStore struct {
	mu     sync.Mutex
	rows   map[string][]string // envID+slotKey -> holder ids
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string][]string)}
}

func storeKey(environmentID, slotKey string) string {
	return environmentID + "|" + slotKey
}

func (f *fakeStore) Reserve(_ context.Context, environmentID, slotKey, holderID string, capacity int) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	holders := f.rows[storeKey(environmentID, slotKey)]
	for _, h := range holders {
		if h == holderID {
			return nil, ErrAlreadyBooked
		}
	}
	if len(holders) >= capacity {
		return nil, ErrSlotFull
	}

	f.rows[storeKey(environmentID, slotKey)] = append(holders, holderID)
	f.nextID++
	return &Booking{
		ID:            fmt.Sprintf("b-%d", f.nextID),
		EnvironmentID: environmentID,
		SlotKey:       slotKey,
		HolderID:      holderID,
	}, nil
}

func (f *fakeStore) Release(_ context.Context, environmentID, slotKey, holderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := storeKey(environmentID, slotKey)
	holders := f.rows[key]
	for i, h := range holders {
		if h == holderID {
			f.rows[key] = append(holders[:i:i], holders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) OccupantsBySlot(_ context.Context, environmentID string) (map[string][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	occupants := make(map[string][]string)
	for key, holders := range f.rows {
		if len(holders) == 0 {
			continue
		}
		for i := 0; i < len(key); i++ {
			if key[i] == '|' {
				if key[:i] == environmentID {
					occupants[key[i+1:]] = append([]string(nil), holders...)
				}
				break
			}
		}
	}
	return occupants, nil
}

func (f *fakeStore) count(environmentID, slotKey, holderID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, h := range f.rows[storeKey(environmentID, slotKey)] {
		if h == holderID {
			n++
		}
	}
	return n
}

// fakeEnvService serves a fixed set of environments.
type fakeEnvService struct {
	environment.Service
	envs map[string]*environment.Environment
}

func (f *fakeEnvService) GetByID(_ context.Context, id string) (*environment.Environment, error) {
	e, ok := f.envs[id]
	if !ok {
		return nil, environment.ErrNotFound
	}
	return e, nil
}

// fakeRTService serves a fixed administrator set.
type fakeRTService struct {
	resourcetype.Service
	admins map[string][]string // resource type id -> admin user ids
}

func (f *fakeRTService) IsAdministrator(_ context.Context, id, userID string) (bool, error) {
	for _, admin := range f.admins[id] {
		if admin == userID {
			return true, nil
		}
	}
	return false, nil
}

var facadeNow = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

func newTestFacade(envs ...*environment.Environment) (Service, *fakeStore) {
	store := newFakeStore()
	envMap := make(map[string]*environment.Environment, len(envs))
	for _, e := range envs {
		envMap[e.ID] = e
	}
	svc := NewService(
		store,
		&fakeEnvService{envs: envMap},
		&fakeRTService{admins: map[string][]string{"rt-1": {"U-admin"}}},
		fixedClock{t: facadeNow},
	)
	return svc, store
}

func dailyEnv(capacity int) *environment.Environment {
	return &environment.Environment{
		ID:             "env-1",
		ResourceTypeID: "rt-1",
		Name:           "Lab A",
		Pattern:        schedule.PatternDaily,
		Settings:       schedule.Settings{DaysAhead: 2},
		Capacity:       capacity,
	}
}

func TestBookAndListAvailability(t *testing.T) {
	svc, _ := newTestFacade(dailyEnv(2))
	ctx := context.Background()

	_, err := svc.Book(ctx, "env-1", "2024-01-10", "U1", "UTC")
	require.NoError(t, err)

	slots, err := svc.ListAvailability(ctx, "env-1", "UTC", "U1")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, "2024-01-10", slots[0].Key)
	assert.Equal(t, []string{"U1"}, slots[0].Occupants)
	assert.True(t, slots[0].IsMine)
	assert.False(t, slots[0].IsFull)

	assert.Empty(t, slots[1].Occupants)
	assert.False(t, slots[1].IsMine)
}

func TestBookRejectsStaleSlotKey(t *testing.T) {
	// A one-off whose instant has already passed: the slot set is re-derived
	// at call time, so the stale key from an old render is refused.
	env := &environment.Environment{
		ID:             "env-1",
		ResourceTypeID: "rt-1",
		Name:           "Hall",
		Pattern:        schedule.PatternOneOff,
		Settings:       schedule.Settings{Instant: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Capacity:       1,
	}
	svc, store := newTestFacade(env)

	_, err := svc.Book(context.Background(), "env-1", "2024-01-01 00:00", "U1", "UTC")

	assert.True(t, errors.Is(err, ErrSlotInvalid))
	assert.Equal(t, 0, store.count("env-1", "2024-01-01 00:00", "U1"))
}

func TestBookRejectsOutOfWindowDay(t *testing.T) {
	svc, _ := newTestFacade(dailyEnv(1))

	// DaysAhead=2 covers Jan 10 and 11 only.
	_, err := svc.Book(context.Background(), "env-1", "2024-01-15", "U1", "UTC")

	assert.True(t, errors.Is(err, ErrSlotInvalid))
}

func TestBookUnknownEnvironment(t *testing.T) {
	svc, _ := newTestFacade(dailyEnv(1))

	_, err := svc.Book(context.Background(), "nope", "2024-01-10", "U1", "UTC")

	assert.True(t, errors.Is(err, ErrEnvironmentNotFound))
}

func TestBookInvalidTimezone(t *testing.T) {
	svc, _ := newTestFacade(dailyEnv(1))

	_, err := svc.Book(context.Background(), "env-1", "2024-01-10", "U1", "Mars/Olympus")

	assert.True(t, errors.Is(err, ErrInvalidTimezone))
}

func TestBookTwiceIsAlreadyBooked(t *testing.T) {
	svc, store := newTestFacade(dailyEnv(3))
	ctx := context.Background()

	_, err := svc.Book(ctx, "env-1", "2024-01-10", "U1", "UTC")
	require.NoError(t, err)

	_, err = svc.Book(ctx, "env-1", "2024-01-10", "U1", "UTC")
	assert.True(t, errors.Is(err, ErrAlreadyBooked))
	assert.Equal(t, 1, store.count("env-1", "2024-01-10", "U1"))
}

func TestConcurrentReservesRespectCapacity(t *testing.T) {
	const capacity = 3
	svc, _ := newTestFacade(dailyEnv(capacity))
	ctx := context.Background()

	// capacity+1 distinct holders race for the same slot.
	var wg sync.WaitGroup
	results := make([]error, capacity+1)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Book(ctx, "env-1", "2024-01-10", fmt.Sprintf("U%d", i), "UTC")
		}(i)
	}
	wg.Wait()

	successes, fulls := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotFull):
			fulls++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, capacity, successes)
	assert.Equal(t, 1, fulls)

	slots, err := svc.ListAvailability(ctx, "env-1", "UTC", "U0")
	require.NoError(t, err)
	assert.True(t, slots[0].IsFull)
	assert.Len(t, slots[0].Occupants, capacity)
}

func TestBookCancelRoundTrip(t *testing.T) {
	svc, store := newTestFacade(dailyEnv(1))
	ctx := context.Background()

	_, err := svc.Book(ctx, "env-1", "2024-01-10", "U1", "UTC")
	require.NoError(t, err)

	err = svc.Cancel(ctx, "env-1", "2024-01-10", "U1", "U1")
	require.NoError(t, err)
	assert.Equal(t, 0, store.count("env-1", "2024-01-10", "U1"))

	// Second cancel of the same triple fails NotFound.
	err = svc.Cancel(ctx, "env-1", "2024-01-10", "U1", "U1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCancelOnBehalfRequiresAdministrator(t *testing.T) {
	svc, store := newTestFacade(dailyEnv(2))
	ctx := context.Background()

	_, err := svc.Book(ctx, "env-1", "2024-01-10", "U1", "UTC")
	require.NoError(t, err)

	// A random user cannot cancel someone else's booking.
	err = svc.Cancel(ctx, "env-1", "2024-01-10", "U1", "U2")
	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Equal(t, 1, store.count("env-1", "2024-01-10", "U1"))

	// A resource type administrator can.
	err = svc.Cancel(ctx, "env-1", "2024-01-10", "U1", "U-admin")
	require.NoError(t, err)
	assert.Equal(t, 0, store.count("env-1", "2024-01-10", "U1"))
}

func TestCancelExpiredBookingAllowed(t *testing.T) {
	// Cancelling never re-validates the slot: a booking whose one-off
	// instant has passed can still be released.
	env := &environment.Environment{
		ID:             "env-1",
		ResourceTypeID: "rt-1",
		Pattern:        schedule.PatternOneOff,
		Settings:       schedule.Settings{Instant: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Capacity:       1,
	}
	svc, store := newTestFacade(env)
	ctx := context.Background()

	// Seed directly: the booking was made before the instant passed.
	_, err := store.Reserve(ctx, "env-1", "2024-01-01 00:00", "U1", 1)
	require.NoError(t, err)

	err = svc.Cancel(ctx, "env-1", "2024-01-01 00:00", "U1", "U1")
	require.NoError(t, err)
}
