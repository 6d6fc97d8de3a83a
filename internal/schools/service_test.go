package schools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/schoolhub/internal/shared"
)

type mockRepository struct {
	schools map[string]School
	nextID  int
	deletes int
}

func newMockRepository() *mockRepository {
	return &mockRepository{schools: make(map[string]School), nextID: 1}
}

func (m *mockRepository) put(s School) School {
	m.schools[s.ID] = s
	return s
}

func (m *mockRepository) Create(_ context.Context, s School) (School, error) {
	s.ID = "S" + string(rune('0'+m.nextID))
	m.nextID++
	m.schools[s.ID] = s
	return s, nil
}

func (m *mockRepository) FindByID(_ context.Context, id string) (School, error) {
	s, ok := m.schools[id]
	if !ok {
		return School{}, shared.ErrNotFound
	}
	return s, nil
}

func (m *mockRepository) List(_ context.Context) ([]School, error) {
	out := []School{}
	for _, s := range m.schools {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, s School) (School, error) {
	if _, ok := m.schools[s.ID]; !ok {
		return School{}, shared.ErrNotFound
	}
	m.schools[s.ID] = s
	return s, nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	m.deletes++
	if _, ok := m.schools[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.schools, id)
	return nil
}

var root = &shared.Principal{UserID: "U9", Role: shared.RoleSuperAdmin}

func TestCreateSchool(t *testing.T) {
	svc := NewService(newMockRepository(), nil, nil)

	school, err := svc.CreateSchool(context.Background(), root, CreateSchoolInput{
		Name: "North High", Address: "1 Main St", Email: "office@north.test", Phone: "555-0100",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, school.ID)
	assert.Equal(t, "North High", school.Name)
}

func TestCreateSchoolNameRequired(t *testing.T) {
	svc := NewService(newMockRepository(), nil, nil)

	_, err := svc.CreateSchool(context.Background(), root, CreateSchoolInput{Name: "  "})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, "school name is required", err.Error())
}

func TestCreateSchoolNilPrincipal(t *testing.T) {
	svc := NewService(newMockRepository(), nil, nil)
	_, err := svc.CreateSchool(context.Background(), nil, CreateSchoolInput{Name: "North High"})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestGetSchoolNotFound(t *testing.T) {
	svc := NewService(newMockRepository(), nil, nil)

	_, err := svc.GetSchool(context.Background(), root, "missing")
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "school not found", err.Error())
}

func TestGetSchoolOpenToSchoolAdmin(t *testing.T) {
	repo := newMockRepository()
	repo.put(School{ID: "S2", Name: "South High"})
	svc := NewService(repo, nil, nil)

	// Any admin can read any school; the roster routes are where tenant
	// scoping applies.
	other := &shared.Principal{UserID: "U1", Role: shared.RoleSchoolAdmin, SchoolID: "S1"}
	school, err := svc.GetSchool(context.Background(), other, "S2")
	require.NoError(t, err)
	assert.Equal(t, "South High", school.Name)
}

func TestUpdateSchoolPatchesFields(t *testing.T) {
	repo := newMockRepository()
	repo.put(School{ID: "S1", Name: "North High", Phone: "555-0100"})
	svc := NewService(repo, nil, nil)

	name := "North Senior High"
	email := "office@north.test"
	updated, err := svc.UpdateSchool(context.Background(), root, "S1", UpdateSchoolInput{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "North Senior High", updated.Name)
	assert.Equal(t, "office@north.test", updated.Email)
	assert.Equal(t, "555-0100", updated.Phone, "unset fields stay untouched")
}

func TestUpdateSchoolBlankNameRejected(t *testing.T) {
	repo := newMockRepository()
	repo.put(School{ID: "S1", Name: "North High"})
	svc := NewService(repo, nil, nil)

	blank := ""
	_, err := svc.UpdateSchool(context.Background(), root, "S1", UpdateSchoolInput{Name: &blank})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteSchool(t *testing.T) {
	repo := newMockRepository()
	repo.put(School{ID: "S1", Name: "North High"})
	svc := NewService(repo, nil, nil)

	require.NoError(t, svc.DeleteSchool(context.Background(), root, "S1"))

	err := svc.DeleteSchool(context.Background(), root, "S1")
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "school not found", err.Error())
}

func TestSchoolIDRequired(t *testing.T) {
	svc := NewService(newMockRepository(), nil, nil)

	_, err := svc.GetSchool(context.Background(), root, "")
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, "school id is required", err.Error())

	err = svc.DeleteSchool(context.Background(), root, "")
	assert.ErrorIs(t, err, shared.ErrValidation)
}
