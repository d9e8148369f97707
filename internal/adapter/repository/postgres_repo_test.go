package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"alc-index-builder/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB 创建一个模拟的数据库连接
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func sampleRecord() *domain.PageRecord {
	return &domain.PageRecord{
		ID:           "alc-kart",
		RepoName:     "alc-kart",
		Theme:        domain.ThemeMario,
		Score:        100,
		Passed:       true,
		FailedChecks: "",
		HTMLSize:     4096,
		SiteURL:      "https://kart.alc.example.com",
		SiteOnline:   true,
		BuiltAt:      time.Now(),
	}
}

func TestPostgresRepo_Save(t *testing.T) {
	tests := []struct {
		name        string
		record      *domain.PageRecord
		setupMock   func(sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name:   "成功保存构建记录",
			record: sampleRecord(),
			setupMock: func(mock sqlmock.Sqlmock) {
				// 主键非空时 GORM Save 走 UPDATE
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "page_records"`)).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			expectError: false,
		},
		{
			name: "保存不合格记录",
			record: &domain.PageRecord{
				ID:           "alc-lab",
				RepoName:     "alc-lab",
				Theme:        domain.ThemeLabBench,
				Score:        55,
				Passed:       false,
				FailedChecks: "hasRequiredElements,isInteractive",
				BuiltAt:      time.Now(),
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "page_records"`)).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock, cleanup := setupMockDB(t)
			defer cleanup()

			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			repo := &PostgresRepo{db: gormDB}
			err := repo.Save(context.Background(), tt.record)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepo_Exists(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "page_records"`)).
		WithArgs("alc-kart").
		WillReturnRows(rows)

	repo := &PostgresRepo{db: gormDB}
	exists, err := repo.Exists(context.Background(), "alc-kart")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_MarkAsNotified(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "page_records"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := &PostgresRepo{db: gormDB}
	err := repo.MarkAsNotified(context.Background(), "alc-kart")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_History(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "repo_name", "theme", "score", "passed", "built_at"}).
		AddRow("alc-kart", "alc-kart", "mario", 100, true, now).
		AddRow("alc-lab", "alc-lab", "lab-bench", 55, false, now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "page_records"`)).
		WillReturnRows(rows)

	repo := &PostgresRepo{db: gormDB}
	records, err := repo.History(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "alc-kart", records[0].ID)
	assert.Equal(t, domain.ThemeMario, records[0].Theme)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_FindFailing(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "repo_name", "score", "passed"}).
		AddRow("alc-lab", "alc-lab", 55, false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "page_records"`)).
		WithArgs(false).
		WillReturnRows(rows)

	repo := &PostgresRepo{db: gormDB}
	records, err := repo.FindFailing(context.Background())

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.False(t, records[0].Passed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Search(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "repo_name", "theme"}).
		AddRow("alc-kart", "alc-kart", "mario")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "page_records"`)).
		WithArgs("%kart%", "%kart%", "%kart%").
		WillReturnRows(rows)

	repo := &PostgresRepo{db: gormDB}
	records, err := repo.Search(context.Background(), "kart")

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "alc-kart", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
