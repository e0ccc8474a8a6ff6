package resourcetype

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	byID   map[string]*ResourceType
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*ResourceType)}
}

func (f *fakeRepo) Create(_ context.Context, rt *ResourceType) error {
	for _, existing := range f.byID {
		if existing.OrganizationID == rt.OrganizationID && existing.Name == rt.Name {
			return ErrNameTaken
		}
	}
	f.nextID++
	rt.ID = fmt.Sprintf("rt-%d", f.nextID)
	rt.CreatedAt = time.Now()
	clone := *rt
	f.byID[rt.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*ResourceType, error) {
	rt, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rt
	return &clone, nil
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*ResourceType, int, error) {
	var result []*ResourceType
	for _, rt := range f.byID {
		if filter.OrganizationID != "" && rt.OrganizationID != filter.OrganizationID {
			continue
		}
		clone := *rt
		result = append(result, &clone)
	}
	return result, len(result), nil
}

func (f *fakeRepo) Update(_ context.Context, rt *ResourceType) error {
	if _, ok := f.byID[rt.ID]; !ok {
		return ErrNotFound
	}
	clone := *rt
	f.byID[rt.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestCreateDefaultsAdministratorsToCreator(t *testing.T) {
	svc := NewService(newFakeRepo())

	rt, err := svc.Create(context.Background(), CreateRequest{
		OrganizationID: "ws-1",
		Name:           "Meeting Rooms",
		CreatorID:      "U-creator",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"U-creator"}, rt.Administrators)
}

func TestCreateKeepsExplicitAdministrators(t *testing.T) {
	svc := NewService(newFakeRepo())

	rt, err := svc.Create(context.Background(), CreateRequest{
		OrganizationID: "ws-1",
		Name:           "Meeting Rooms",
		Administrators: []string{"U-a", "U-b"},
		CreatorID:      "U-creator",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"U-a", "U-b"}, rt.Administrators)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateRequest{Name: "Rooms"})
	assert.ErrorIs(t, err, ErrOrgRequired)

	_, err = svc.Create(context.Background(), CreateRequest{OrganizationID: "ws-1", Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestCreateDuplicateNameInOrganization(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateRequest{OrganizationID: "ws-1", Name: "Rooms", CreatorID: "U-1"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{OrganizationID: "ws-1", Name: "Rooms", CreatorID: "U-2"})
	assert.ErrorIs(t, err, ErrNameTaken)

	// Same name in another workspace is fine.
	_, err = svc.Create(context.Background(), CreateRequest{OrganizationID: "ws-2", Name: "Rooms", CreatorID: "U-2"})
	assert.NoError(t, err)
}

func TestIsAdministrator(t *testing.T) {
	svc := NewService(newFakeRepo())

	rt, err := svc.Create(context.Background(), CreateRequest{
		OrganizationID: "ws-1",
		Name:           "Rooms",
		Administrators: []string{"U-a", "U-b"},
	})
	require.NoError(t, err)

	ok, err := svc.IsAdministrator(context.Background(), rt.ID, "U-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAdministrator(context.Background(), rt.ID, "U-c")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.IsAdministrator(context.Background(), "rt-missing", "U-a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReplacesAdministrators(t *testing.T) {
	svc := NewService(newFakeRepo())

	rt, err := svc.Create(context.Background(), CreateRequest{
		OrganizationID: "ws-1",
		Name:           "Rooms",
		Administrators: []string{"U-a"},
	})
	require.NoError(t, err)

	admins := []string{"U-b", "U-c"}
	updated, err := svc.Update(context.Background(), rt.ID, UpdateRequest{Administrators: &admins})
	require.NoError(t, err)

	assert.Equal(t, admins, updated.Administrators)

	ok, err := svc.IsAdministrator(context.Background(), rt.ID, "U-a")
	require.NoError(t, err)
	assert.False(t, ok)
}
