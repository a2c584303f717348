package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/elearning-backend/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return New(db)
}

type fixture struct {
	store    *Store
	manager  *models.User
	category *models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newTestStore(t)
	ctx := context.Background()

	manager := &models.User{Name: "Manager One", Email: "manager@example.com", Password: "hash", Role: models.RoleManager, Photo: models.DefaultPhoto}
	require.NoError(t, s.CreateUser(ctx, manager))

	category := &models.Category{Name: "Programming", Slug: "programming"}
	require.NoError(t, s.CreateCategory(ctx, category))

	return &fixture{store: s, manager: manager, category: category}
}

func (f *fixture) course(t *testing.T, name string) *models.Course {
	t.Helper()
	c := &models.Course{
		Name:        name,
		Thumbnail:   "thumbnail-1.png",
		CategoryID:  f.category.ID,
		Tagline:     "Learn things",
		Description: "A long enough description",
		ManagerID:   f.manager.ID,
	}
	require.NoError(t, f.store.CreateCourse(context.Background(), c))
	return c
}

func (f *fixture) student(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Student " + email, Email: email, Password: "hash", Role: models.RoleStudent, Photo: models.DefaultPhoto, ManagerID: &f.manager.ID}
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) detail(t *testing.T, courseID uuid.UUID, kind models.ContentType) *models.CourseDetail {
	t.Helper()
	d := &models.CourseDetail{Title: "Lesson " + string(kind), Type: kind, CourseID: courseID}
	if kind == models.ContentVideo {
		d.YoutubeID = "dQw4w9WgXcQ"
	} else {
		d.Text = "Some text"
	}
	require.NoError(t, f.store.CreateCourseDetail(context.Background(), f.manager.ID, d))
	return d
}

func countRows(t *testing.T, s *Store, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB().Model(model).Where(query, args...).Count(&n).Error)
	return n
}
