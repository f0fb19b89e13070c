package service

import (
	"context"

	"earshot/internal/models"
	"earshot/internal/repository"
)

type BookService struct {
	bookRepo    repository.BookRepository
	episodeRepo repository.EpisodeRepository
}

type CreateBookInput struct {
	Title             string
	Author            string
	CoverImagePath    string
	FeaturedEpisodeID *uint
}

func NewBookService(bookRepo repository.BookRepository, episodeRepo repository.EpisodeRepository) *BookService {
	return &BookService{bookRepo: bookRepo, episodeRepo: episodeRepo}
}

func (s *BookService) CreateBook(ctx context.Context, in CreateBookInput) (*models.Book, error) {
	if in.Title == "" || in.Author == "" {
		return nil, models.NewValidationError("Title and author are required")
	}

	if in.FeaturedEpisodeID != nil {
		if _, err := s.episodeRepo.GetByID(ctx, *in.FeaturedEpisodeID); err != nil {
			return nil, err
		}
	}

	book := &models.Book{
		Title:             in.Title,
		Author:            in.Author,
		CoverImagePath:    in.CoverImagePath,
		FeaturedEpisodeID: in.FeaturedEpisodeID,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.bookRepo.List(ctx)
}

func (s *BookService) GetBookByID(ctx context.Context, id uint) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}
