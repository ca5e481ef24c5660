package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lecturetrack/internal/model"
	"lecturetrack/internal/repository"
)

func TestAdminService_ListUsers_GroupsProgressPerUser(t *testing.T) {
	m := newMockRepos()
	done := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m.users.On("ListByRole", mock.Anything, model.RoleUser).Return([]model.User{
		{ID: "u1", Name: "Ada", Email: "ada@x.com", Role: model.RoleUser},
		{ID: "u2", Name: "Bob", Email: "bob@x.com", Role: model.RoleUser},
	}, nil)
	m.progress.On("List", mock.Anything).Return([]model.Progress{
		{ID: "p1", UserID: "u1", LectureID: 1, CompletedAt: &done},
		{ID: "p2", UserID: "u1", LectureID: 2, Note: "todo"},
		{ID: "p3", UserID: "admin", LectureID: 1, CompletedAt: &done},
	}, nil)

	views, err := NewAdminService(m.repositories(), nil, zerolog.Nop()).ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "u1", views[0].ID)
	assert.Len(t, views[0].Progress, 2)
	assert.Equal(t, "p1", views[0].Progress[1].ID)
	assert.Equal(t, "todo", views[0].Progress[2].Note)

	assert.Equal(t, "u2", views[1].ID)
	assert.NotNil(t, views[1].Progress)
	assert.Empty(t, views[1].Progress)
	m.assertExpectations(t)
}

func TestAdminService_ListUsers_StorageError(t *testing.T) {
	m := newMockRepos()
	m.users.On("ListByRole", mock.Anything, model.RoleUser).Return(nil, errors.New("timeout"))

	_, err := NewAdminService(m.repositories(), nil, zerolog.Nop()).ListUsers(context.Background())

	assert.ErrorContains(t, err, "timeout")
	m.progress.AssertNotCalled(t, "List", mock.Anything)
}

func TestAdminService_DeleteUser_CascadesWithCapturedEmail(t *testing.T) {
	m := newMockRepos()

	find := m.users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Email: "ada@x.com"}, nil)
	del := m.users.On("Delete", mock.Anything, "u1").Return(nil)
	progress := m.progress.On("DeleteByUser", mock.Anything, "u1").Return(int64(3), nil)
	notes := m.notes.On("DeleteByEmail", mock.Anything, "ada@x.com").Return(int64(2), nil)
	mock.InOrder(find, del, progress, notes)

	err := NewAdminService(m.repositories(), nil, zerolog.Nop()).DeleteUser(context.Background(), "u1")

	require.NoError(t, err)
	m.assertExpectations(t)
}

func TestAdminService_DeleteUser_MissingUserSkipsNotes(t *testing.T) {
	m := newMockRepos()

	m.users.On("FindByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound)
	m.users.On("Delete", mock.Anything, "gone").Return(nil)
	m.progress.On("DeleteByUser", mock.Anything, "gone").Return(int64(0), nil)

	err := NewAdminService(m.repositories(), nil, zerolog.Nop()).DeleteUser(context.Background(), "gone")

	require.NoError(t, err)
	m.notes.AssertNotCalled(t, "DeleteByEmail", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestAdminService_DeleteUser_StopsOnProgressFailure(t *testing.T) {
	m := newMockRepos()

	m.users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Email: "ada@x.com"}, nil)
	m.users.On("Delete", mock.Anything, "u1").Return(nil)
	m.progress.On("DeleteByUser", mock.Anything, "u1").Return(int64(0), errors.New("disk full"))

	err := NewAdminService(m.repositories(), nil, zerolog.Nop()).DeleteUser(context.Background(), "u1")

	assert.ErrorContains(t, err, "disk full")
	m.notes.AssertNotCalled(t, "DeleteByEmail", mock.Anything, mock.Anything)
}

func TestAdminService_ExportProgress(t *testing.T) {
	m := newMockRepos()
	done := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2023, 9, 1, 8, 0, 0, 0, time.UTC)

	m.users.On("ListByRole", mock.Anything, model.RoleUser).Return([]model.User{
		{ID: "u1", Name: "Ada", Email: "ada@x.com", CreatedAt: created},
	}, nil)
	m.progress.On("List", mock.Anything).Return([]model.Progress{
		{UserID: "u1", LectureID: 1, CompletedAt: &done},
		{UserID: "u1", LectureID: 2, CompletedAt: &done},
		{UserID: "u1", LectureID: 3},
	}, nil)
	m.settings.On("FindOrCreate", mock.Anything, model.Settings{TotalLectures: model.DefaultTotalLectures}).
		Return(&model.Settings{TotalLectures: 8}, nil)

	data, err := NewAdminService(m.repositories(), nil, zerolog.Nop()).ExportProgress(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Name", "Email", "Created At", "Completed Lectures", "Total Lectures", "Percent"}, rows[0])
	assert.Equal(t, []string{"Ada", "ada@x.com", "2023-09-01T08:00:00Z", "2", "8", "25"}, rows[1])
	m.assertExpectations(t)
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 0.0, percentOf(5, 0))
	assert.Equal(t, 33.3, percentOf(1, 3))
	assert.Equal(t, 100.0, percentOf(200, 200))
}
