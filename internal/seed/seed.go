// Package seed populates the database with demo data for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"miniblog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

// Seed populates the database with users, posts, comments, likes, mentions
// and a handful of re-posts. Every account gets the password "password123".
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users, %d posts, %d comments...", opts.NumUsers, opts.NumPosts, opts.NumComments)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	users, err := seedUsers(db, opts.NumUsers)
	if err != nil {
		return err
	}
	posts, err := seedPosts(db, users, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := seedComments(db, users, posts, opts.NumComments); err != nil {
		return err
	}
	if err := seedLikes(db, users, posts); err != nil {
		return err
	}
	if err := seedRePosts(db, users, posts); err != nil {
		return err
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Join tables first, then their owners.
	for _, model := range []any{
		&models.CommentMention{}, &models.CommentLike{}, &models.Comment{},
		&models.PostMention{}, &models.PostLike{}, &models.Post{},
		&models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// fakeUsername derives a username that satisfies the signup rules.
func fakeUsername() string {
	name := strings.ToLower(gofakeit.Username())
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, name)
	if len(name) < 3 {
		name = "user"
	}
	if len(name) > 24 {
		name = name[:24]
	}
	return fmt.Sprintf("%s%d", name, gofakeit.Number(100, 999))
}

func seedUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One shared hash keeps large seeds fast.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, models.User{
			Username: fakeUsername(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	return users, nil
}

func seedPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		title := gofakeit.Sentence(4)
		if len(title) > 100 {
			title = title[:100]
		}
		content := gofakeit.Paragraph(1, 2, 8, " ")

		post := models.Post{
			Title:   title,
			Content: content,
			UserID:  author.ID,
		}
		// Roughly a third of posts mention another user.
		if rand.Intn(3) == 0 {
			mentioned := users[rand.Intn(len(users))]
			post.Content = fmt.Sprintf("@%s %s", mentioned.Username, content)
		}
		if len(post.Content) > 1000 {
			post.Content = post.Content[:1000]
		}
		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, fmt.Errorf("seed posts: %w", err)
	}

	// Freeze mention rows for the posts that carry one.
	byUsername := make(map[string]uint, len(users))
	for _, u := range users {
		byUsername[u.Username] = u.ID
	}
	for _, p := range posts {
		if !strings.HasPrefix(p.Content, "@") {
			continue
		}
		name := strings.SplitN(p.Content[1:], " ", 2)[0]
		userID, ok := byUsername[name]
		if !ok {
			continue
		}
		mention := models.PostMention{PostID: p.ID, UserID: userID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&mention).Error; err != nil {
			return nil, fmt.Errorf("seed mentions: %w", err)
		}
	}
	return posts, nil
}

func seedComments(db *gorm.DB, users []models.User, posts []models.Post, count int) error {
	if len(posts) == 0 || count == 0 {
		return nil
	}

	roots := make([]models.Comment, 0, count)
	for i := 0; i < count; i++ {
		content := gofakeit.Sentence(8)
		if len(content) > 500 {
			content = content[:500]
		}
		roots = append(roots, models.Comment{
			Content: content,
			UserID:  users[rand.Intn(len(users))].ID,
			PostID:  posts[rand.Intn(len(posts))].ID,
		})
	}
	if err := db.Create(&roots).Error; err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}

	// Nest a reply under every fourth root comment.
	for i := 0; i < len(roots); i += 4 {
		parent := roots[i]
		reply := models.Comment{
			Content:         gofakeit.Sentence(6),
			UserID:          users[rand.Intn(len(users))].ID,
			PostID:          parent.PostID,
			ParentCommentID: &parent.ID,
		}
		if err := db.Create(&reply).Error; err != nil {
			return fmt.Errorf("seed replies: %w", err)
		}
	}
	return nil
}

func seedLikes(db *gorm.DB, users []models.User, posts []models.Post) error {
	for _, p := range posts {
		for i := 0; i < rand.Intn(4); i++ {
			like := models.PostLike{
				UserID: users[rand.Intn(len(users))].ID,
				PostID: p.ID,
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("seed likes: %w", err)
			}
		}
	}
	return nil
}

func seedRePosts(db *gorm.DB, users []models.User, posts []models.Post) error {
	if len(posts) < 5 {
		return nil
	}
	// Re-post roughly every tenth post under a random account.
	for i := 0; i < len(posts); i += 10 {
		original := posts[i]
		reposter := users[rand.Intn(len(users))]
		repost := models.Post{
			Title:          "Re-post: " + original.Title,
			Content:        original.Content,
			UserID:         reposter.ID,
			OriginalPostID: &original.ID,
		}
		if err := db.Create(&repost).Error; err != nil {
			return fmt.Errorf("seed reposts: %w", err)
		}
	}
	return nil
}
