package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"earshot/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEpisodeRepository_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEpisodeRepository(db)
	ctx := context.Background()

	// One transaction: the like row plus the favorites row.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_favorite_episodes`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Like(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEpisodeRepository_Like_Repeated(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEpisodeRepository(db)
	ctx := context.Background()

	// ON CONFLICT DO NOTHING makes a second like affect zero rows but
	// still succeed.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO user_favorite_episodes`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Like(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEpisodeRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEpisodeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM likes WHERE user_id = \$1 AND episode_id = \$2`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM user_favorite_episodes WHERE user_id = \$1 AND episode_id = \$2`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Unlike(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEpisodeRepository_CountLikes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEpisodeRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE episode_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountLikes(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEpisodeRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEpisodeRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND episode_id = \$2`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	liked, err := repo.IsLiked(ctx, 1, 2)
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEpisodeRepository_GetBySlug_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEpisodeRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT episodes\.\*`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetBySlug(ctx, "no-such-episode")
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEpisodeRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEpisodeRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT episodes.*, (SELECT COUNT(*) FROM likes WHERE likes.episode_id = episodes.id) AS likes_count FROM "episodes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "likes_count"}).
			AddRow(2, "Second", "second", 5).
			AddRow(1, "First", "first", 0))

	episodes, err := repo.List(ctx, 10, 0)
	assert.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, 5, episodes[0].LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
