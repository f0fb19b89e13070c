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
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Content: "Great episode!", EpisodeID: 1, UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	// Reload with the author preloaded.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."id" = $1 AND "comments"."deleted_at" IS NULL`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id"}).
			AddRow(1, "Great episode!", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "listener"))

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.Equal(t, "listener", comment.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByUserWithEpisode(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT comments\.\*, episodes\.title AS episode_title`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "episode_title", "like_count"}).
			AddRow(2, "Newer comment", 1, "Second Episode", 3).
			AddRow(1, "Older comment", 1, "First Episode", 0))

	comments, err := repo.ListByUserWithEpisode(ctx, 1)
	assert.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Second Episode", comments[0].EpisodeTitle)
	assert.Equal(t, 3, comments[0].LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 99)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_LikeComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO comment_likes`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.LikeComment(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_UnlikeComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM comment_likes WHERE user_id = \$1 AND comment_id = \$2`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UnlikeComment(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_CountCommentLikes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "comment_likes" WHERE comment_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountCommentLikes(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
