package seed

import (
	"fmt"
	"log"
	"time"

	"earshot/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the development seeder.
type Options struct {
	NumUsers    int
	NumEpisodes int
	NumBooks    int
	ShouldClean bool
}

// Seed populates the database with fake development data: users, episodes
// with tags and mentioned books, comments and likes.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return err
		}
	}

	if opts.NumUsers == 0 {
		opts.NumUsers = 10
	}
	if opts.NumEpisodes == 0 {
		opts.NumEpisodes = 20
	}
	if opts.NumBooks == 0 {
		opts.NumBooks = 8
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return err
	}
	books, err := createBooks(db, opts.NumBooks)
	if err != nil {
		return err
	}
	episodes, err := createEpisodes(db, books, opts.NumEpisodes)
	if err != nil {
		return err
	}
	if err := createCommentsAndLikes(db, users, episodes); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d books, %d episodes", len(users), len(books), len(episodes))
	return nil
}

func clearData(db *gorm.DB) error {
	tables := []string{
		"comment_likes", "likes", "user_favorite_episodes", "user_favorite_books",
		"episode_books", "comments", "episodes", "books", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("DevSeedPass12!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user := models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:          gofakeit.Email(),
			Password:       string(hashed),
			Bio:            gofakeit.Sentence(10),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func createBooks(db *gorm.DB, count int) ([]models.Book, error) {
	books := make([]models.Book, 0, count)
	for i := 0; i < count; i++ {
		book := models.Book{
			Title:          gofakeit.BookTitle(),
			Author:         gofakeit.BookAuthor(),
			CoverImagePath: fmt.Sprintf("https://picsum.photos/seed/book-%s/300/450", gofakeit.UUID()),
		}
		if err := db.Create(&book).Error; err != nil {
			return nil, fmt.Errorf("creating book: %w", err)
		}
		books = append(books, book)
	}
	return books, nil
}

func createEpisodes(db *gorm.DB, books []models.Book, count int) ([]models.Episode, error) {
	tagPool := []string{
		"interview", "deep-dive", "history", "science", "culture",
		"technology", "books", "writing", "music", "film",
	}

	episodes := make([]models.Episode, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf("%s Ep. %d", gofakeit.Sentence(4), i+1)
		tags := []string{
			tagPool[gofakeit.Number(0, len(tagPool)-1)],
			tagPool[gofakeit.Number(0, len(tagPool)-1)],
		}

		episode := models.Episode{
			Title:         title,
			Slug:          slug.Make(title),
			Description:   gofakeit.Paragraph(1, 3, 8, "\n"),
			Duration:      float64(gofakeit.Number(20, 120)),
			PublishDate:   gofakeit.DateRange(time.Now().AddDate(-2, 0, 0), time.Now()),
			Tags:          tags,
			EpisodeNumber: i + 1,
			ImagePath:     fmt.Sprintf("https://picsum.photos/seed/ep-%s/800/800", gofakeit.UUID()),
		}
		if len(books) > 0 && gofakeit.Bool() {
			episode.MentionedBooks = []models.Book{books[gofakeit.Number(0, len(books)-1)]}
		}
		if err := db.Create(&episode).Error; err != nil {
			return nil, fmt.Errorf("creating episode: %w", err)
		}
		episodes = append(episodes, episode)
	}
	return episodes, nil
}

func createCommentsAndLikes(db *gorm.DB, users []models.User, episodes []models.Episode) error {
	if len(users) == 0 || len(episodes) == 0 {
		return nil
	}

	for _, episode := range episodes {
		for i := 0; i < gofakeit.Number(0, 6); i++ {
			user := users[gofakeit.Number(0, len(users)-1)]
			comment := models.Comment{
				Content:   gofakeit.Sentence(gofakeit.Number(5, 20)),
				UserID:    user.ID,
				EpisodeID: episode.ID,
			}
			if err := db.Create(&comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}

		for i := 0; i < gofakeit.Number(0, len(users)); i++ {
			if err := db.Exec(
				`INSERT INTO likes (user_id, episode_id, created_at)
				 VALUES (?, ?, CURRENT_TIMESTAMP)
				 ON CONFLICT (user_id, episode_id) DO NOTHING`,
				users[i].ID, episode.ID,
			).Error; err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
	}
	return nil
}
