package repository

import (
	"context"
	"errors"
	"testing"

	"powercup-backend/internal/database/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestMatchUpdateStatusGuarded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "matches" SET "status"=\$1 WHERE id = \$2 AND status = \$3`).
		WithArgs("in_progress", sqlmock.AnyArg(), "preparing").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), 7, models.MatchStatusPreparing,
		map[string]interface{}{"status": models.MatchStatusInProgress})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchUpdateStatusLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "matches" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), 7, models.MatchStatusPreparing,
		map[string]interface{}{"status": models.MatchStatusCancelled})

	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTournamentUpdate(t *testing.T) {
	tests := []struct {
		name     string
		expected models.TournamentStatus
		query    string
		rows     int64
		wantErr  error
	}{
		{
			name:  "unguarded update",
			query: `UPDATE "tournaments" SET "name"=\$1 WHERE id = \$2$`,
			rows:  1,
		},
		{
			name:    "unguarded update of a missing tournament",
			query:   `UPDATE "tournaments" SET "name"=\$1 WHERE id = \$2$`,
			wantErr: gorm.ErrRecordNotFound,
		},
		{
			name:     "guarded update",
			expected: models.TournamentStatusPending,
			query:    `UPDATE "tournaments" SET "name"=\$1 WHERE id = \$2 AND status = \$3`,
			rows:     1,
		},
		{
			name:     "guarded update after the status moved",
			expected: models.TournamentStatusPending,
			query:    `UPDATE "tournaments" SET "name"=\$1 WHERE id = \$2 AND status = \$3`,
			wantErr:  ErrConcurrentUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewTournamentRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(tt.query).WillReturnResult(sqlmock.NewResult(0, tt.rows))
			mock.ExpectCommit()

			err := repo.Update(context.Background(), 3, tt.expected, map[string]interface{}{"name": "Autumn Cup"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTeamDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTeamRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "teams" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptRollsBackWhenAlreadyResolved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTeamJoinRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "team_join_requests" WHERE team_id = \$1 AND user_id = \$2 AND type = \$3`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "invite").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Accept(context.Background(), 1, 2, models.JoinRequestTypeInvite)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptRollsBackWhenMembershipInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTeamJoinRequestRepository(db)
	insertErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "team_join_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "team_members"`).WillReturnError(insertErr)
	mock.ExpectRollback()

	err := repo.Accept(context.Background(), 1, 2, models.JoinRequestTypeRequest)

	assert.ErrorIs(t, err, insertErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGameExistsByName(t *testing.T) {
	t.Run("without exclusion", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGameRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "games" WHERE lower\(name\) = lower\(\$1\)$`).
			WithArgs("CS2").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByName(context.Background(), "CS2", 0)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excluding the game itself", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGameRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "games" WHERE lower\(short_name\) = lower\(\$1\) AND id <> \$2`).
			WithArgs("cs2", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByShortName(context.Background(), "cs2", 5)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserGetByNameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE lower\(name\) = lower\(\$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	user, err := repo.GetByName(context.Background(), "Ghost")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
