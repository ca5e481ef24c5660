package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lecturetrack/internal/model"
)

// These tests run against real stores and are skipped unless the matching
// environment variable is set, e.g. MONGODB_URI=mongodb://localhost:27017.

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}
	ctx := context.Background()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	database := client.Database("lecturetrack_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	t.Cleanup(func() { _ = database.Drop(context.Background()) })
	require.NoError(t, EnsureMongoIndexes(ctx, database))

	runStoreTests(t, NewMongoRepositories(database))
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	runStoreTests(t, openSQLStore(t, postgres.Open(dsn)))
}

func TestMySQLStore(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set")
	}
	runStoreTests(t, openSQLStore(t, mysql.Open(dsn)))
}

func openSQLStore(t *testing.T, dialector gorm.Dialector) *Repositories {
	t.Helper()
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	tables := []interface{}{&model.User{}, &model.Progress{}, &model.SharedNote{}, &model.Settings{}}
	require.NoError(t, db.Migrator().DropTable(tables...))
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		_ = db.Migrator().DropTable(tables...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewSQLRepositories(db)
}

func runStoreTests(t *testing.T, repos *Repositories) {
	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repos.Ping(context.Background()))
	})
	t.Run("duplicate email is rejected", func(t *testing.T) {
		testUniqueEmail(t, repos.Users)
	})
	t.Run("repeated progress upsert keeps one record", func(t *testing.T) {
		testProgressUpsert(t, repos.Users, repos.Progress)
	})
	t.Run("settings stay a singleton", func(t *testing.T) {
		testSettingsSingleton(t, repos.Settings)
	})
	t.Run("notes collapse on natural key", func(t *testing.T) {
		testNoteNaturalKey(t, repos.Notes)
	})
}

func testUniqueEmail(t *testing.T, users UserRepository) {
	ctx := context.Background()

	first := &model.User{Name: "A", Email: "dup@x.com", Password: "pw", Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, first))

	err := users.Create(ctx, &model.User{Name: "B", Email: "dup@x.com", Password: "pw", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	name := "A2"
	require.NoError(t, users.UpsertByEmail(ctx, "dup@x.com", model.UserPatch{Name: &name}))
	require.NoError(t, users.UpsertByEmail(ctx, "new@x.com", model.UserPatch{Name: &name}))

	stored, err := users.FindByEmail(ctx, "dup@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "A2", stored.Name)
	assert.Equal(t, "pw", stored.Password)

	created, err := users.FindByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.False(t, created.CreatedAt.IsZero())

	all, err := users.List(ctx)
	require.NoError(t, err)
	count := 0
	for _, u := range all {
		if u.Email == "dup@x.com" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func testProgressUpsert(t *testing.T, users UserRepository, progress ProgressRepository) {
	ctx := context.Background()

	owner := &model.User{Name: "P", Email: "progress@x.com", Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, owner))

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	a, b := "a", "b"

	_, err := progress.Upsert(ctx, owner.ID, 3, model.ProgressUpdate{CompletedAt: &first, Note: &a})
	require.NoError(t, err)
	saved, err := progress.Upsert(ctx, owner.ID, 3, model.ProgressUpdate{CompletedAt: &second, Note: &b})
	require.NoError(t, err)
	assert.Equal(t, "b", saved.Note)

	records, err := progress.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].LectureID)
	assert.Equal(t, "b", records[0].Note)
	require.NotNil(t, records[0].CompletedAt)
	assert.True(t, second.Equal(*records[0].CompletedAt))

	// a missing note keeps the stored one; a nil completedAt clears completion
	_, err = progress.Upsert(ctx, owner.ID, 3, model.ProgressUpdate{})
	require.NoError(t, err)
	records, err = progress.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].Note)
	assert.Nil(t, records[0].CompletedAt)

	removed, err := progress.DeleteByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

func testSettingsSingleton(t *testing.T, settings SettingsRepository) {
	ctx := context.Background()
	defaults := model.Settings{TotalLectures: model.DefaultTotalLectures}

	created, err := settings.FindOrCreate(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTotalLectures, created.TotalLectures)

	again, err := settings.FindOrCreate(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	total := 150
	updated, err := settings.Upsert(ctx, model.SettingsPatch{TotalLectures: &total})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 150, updated.TotalLectures)

	reread, err := settings.FindOrCreate(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, created.ID, reread.ID)
	assert.Equal(t, 150, reread.TotalLectures)
}

func testNoteNaturalKey(t *testing.T, notes SharedNoteRepository) {
	ctx := context.Background()
	date := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, notes.UpsertByNaturalKey(ctx, &model.SharedNote{
		LectureNumber: 3, TextContent: "first", UploadedBy: "A", Email: "notes@x.com", Date: date,
	}))
	require.NoError(t, notes.UpsertByNaturalKey(ctx, &model.SharedNote{
		LectureNumber: 3, TextContent: "second", UploadedBy: "A", Email: "notes@x.com", Date: date,
	}))
	require.NoError(t, notes.UpsertByNaturalKey(ctx, &model.SharedNote{
		LectureNumber: 4, TextContent: "other", UploadedBy: "A", Email: "notes@x.com", Date: date.Add(time.Hour),
	}))

	stored, err := notes.ListByDateDesc(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "other", stored[0].TextContent)
	assert.Equal(t, "second", stored[1].TextContent)

	removed, err := notes.DeleteByEmail(ctx, "notes@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
}
