package service

import (
	"context"
	"testing"

	"earshot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookService_CreateBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates book with featured episode", func(t *testing.T) {
		t.Parallel()
		bookRepo := noopBookRepo()
		var created *models.Book
		bookRepo.createFn = func(_ context.Context, b *models.Book) error {
			b.ID = 7
			created = b
			return nil
		}
		svc := NewBookService(bookRepo, noopEpisodeRepo())

		episodeID := uint(3)
		book, err := svc.CreateBook(ctx, CreateBookInput{
			Title:             "The Overstory",
			Author:            "Richard Powers",
			FeaturedEpisodeID: &episodeID,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(7), book.ID)
		require.NotNil(t, created.FeaturedEpisodeID)
		assert.Equal(t, episodeID, *created.FeaturedEpisodeID)
	})

	t.Run("requires title and author", func(t *testing.T) {
		t.Parallel()
		svc := NewBookService(noopBookRepo(), noopEpisodeRepo())

		_, err := svc.CreateBook(ctx, CreateBookInput{Author: "Richard Powers"})
		assertValidationError(t, err)

		_, err = svc.CreateBook(ctx, CreateBookInput{Title: "The Overstory"})
		assertValidationError(t, err)
	})

	t.Run("rejects missing featured episode", func(t *testing.T) {
		t.Parallel()
		episodeRepo := noopEpisodeRepo()
		episodeRepo.getByIDFn = func(_ context.Context, id uint) (*models.Episode, error) {
			return nil, models.NewNotFoundError("Episode", id)
		}
		svc := NewBookService(noopBookRepo(), episodeRepo)

		episodeID := uint(99)
		_, err := svc.CreateBook(ctx, CreateBookInput{
			Title:             "The Overstory",
			Author:            "Richard Powers",
			FeaturedEpisodeID: &episodeID,
		})
		assertNotFoundError(t, err)
	})
}
