package environment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	byID   map[string]*Environment
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Environment)}
}

func (f *fakeRepo) Create(_ context.Context, e *Environment) error {
	for _, existing := range f.byID {
		if existing.ResourceTypeID == e.ResourceTypeID && existing.Name == e.Name {
			return ErrNameTaken
		}
	}
	f.nextID++
	e.ID = fmt.Sprintf("env-%d", f.nextID)
	e.CreatedAt = time.Now()
	clone := *e
	f.byID[e.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Environment, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*Environment, int, error) {
	var result []*Environment
	for _, e := range f.byID {
		if filter.ResourceTypeID != "" && e.ResourceTypeID != filter.ResourceTypeID {
			continue
		}
		clone := *e
		result = append(result, &clone)
	}
	return result, len(result), nil
}

func (f *fakeRepo) Update(_ context.Context, e *Environment) error {
	if _, ok := f.byID[e.ID]; !ok {
		return ErrNotFound
	}
	clone := *e
	f.byID[e.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

var testNow = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fixedClock{t: testNow}), repo
}

func TestCreateValidatesSettings(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name      string
		req       CreateRequest
		wantField string
	}{
		{
			name: "custom with duplicate times",
			req: CreateRequest{
				ResourceTypeID: "rt-1",
				Name:           "Lab A",
				Pattern:        schedule.PatternCustom,
				Settings:       schedule.Settings{DaysAhead: 2, TimesOfDay: []string{"09:00", "09:00"}},
			},
			wantField: "times_of_day",
		},
		{
			name: "daily without days ahead",
			req: CreateRequest{
				ResourceTypeID: "rt-1",
				Name:           "Lab A",
				Pattern:        schedule.PatternDaily,
			},
			wantField: "days_ahead",
		},
		{
			name: "one-off in the past",
			req: CreateRequest{
				ResourceTypeID: "rt-1",
				Name:           "Hall",
				Pattern:        schedule.PatternOneOff,
				Settings:       schedule.Settings{Instant: testNow.Add(-time.Hour)},
			},
			wantField: "instant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.NotEmpty(t, cfgErr.Fields)
			assert.Equal(t, tt.wantField, cfgErr.Fields[0].Field)
		})
	}
}

func TestCreateDefaultsCapacityToOne(t *testing.T) {
	svc, _ := newTestService()

	e, err := svc.Create(context.Background(), CreateRequest{
		ResourceTypeID: "rt-1",
		Name:           "Lab A",
		Pattern:        schedule.PatternDaily,
		Settings:       schedule.Settings{DaysAhead: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, e.Capacity)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := CreateRequest{
		ResourceTypeID: "rt-1",
		Name:           "Lab A",
		Pattern:        schedule.PatternDaily,
		Settings:       schedule.Settings{DaysAhead: 2},
		Capacity:       2,
	}

	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.True(t, errors.Is(err, ErrNameTaken))
}

func TestUpdateRevalidatesSettings(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateRequest{
		ResourceTypeID: "rt-1",
		Name:           "Lab A",
		Pattern:        schedule.PatternCustom,
		Settings:       schedule.Settings{DaysAhead: 2, TimesOfDay: []string{"09:00"}},
	})
	require.NoError(t, err)

	bad := schedule.Settings{DaysAhead: 2, TimesOfDay: []string{"10:00", "10:00"}}
	_, err = svc.Update(ctx, e.ID, UpdateRequest{Settings: &bad})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "times_of_day", cfgErr.Fields[0].Field)

	// The stored environment keeps its previous, valid settings.
	stored, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, stored.Settings.TimesOfDay)
}

func TestListBookableDropsExpiredOneOffs(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedClock{t: testNow})
	ctx := context.Background()

	// Valid daily environment.
	_, err := svc.Create(ctx, CreateRequest{
		ResourceTypeID: "rt-1",
		Name:           "Lab A",
		Pattern:        schedule.PatternDaily,
		Settings:       schedule.Settings{DaysAhead: 2},
	})
	require.NoError(t, err)

	// One-off still in the future at creation, expired by listing time.
	expired := &Environment{
		ResourceTypeID: "rt-1",
		Name:           "Hall",
		Pattern:        schedule.PatternOneOff,
		Settings:       schedule.Settings{Instant: testNow.Add(-24 * time.Hour)},
		Capacity:       1,
	}
	require.NoError(t, repo.Create(ctx, expired))

	bookable, err := svc.ListBookable(ctx, "rt-1", time.UTC)
	require.NoError(t, err)
	require.Len(t, bookable, 1)
	assert.Equal(t, "Lab A", bookable[0].Name)
}
