package seed

import (
	"fmt"
	"log"

	"trendstack/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo data creation. Counters on posts and comments are
// written to match the generated like and comment rows exactly.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	return s.db.Exec("TRUNCATE TABLE comment_likes, likes, comments, posts, profiles, users RESTART IDENTITY CASCADE").Error
}

// SeedUsers creates n users with profiles.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts spread across the given users.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute posts to")
	}
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}

// SeedEngagement sprinkles likes, comments and comment likes over the given
// posts, then writes the matching denormalized counters.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	r := s.factory.rand
	totalLikes, totalComments := 0, 0

	for _, post := range posts {
		// likes from a random subset of users, one per user at most
		likers := r.Perm(len(users))[:r.Intn(len(users)/2+1)]
		for _, idx := range likers {
			like := &models.Like{UserID: users[idx].ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return fmt.Errorf("create like: %w", err)
			}
		}
		totalLikes += len(likers)

		numComments := r.Intn(6)
		comments := make([]*models.Comment, 0, numComments)
		for i := 0; i < numComments; i++ {
			commenter := users[r.Intn(len(users))]
			comment := s.factory.BuildComment(commenter, post)
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			comments = append(comments, comment)
		}
		totalComments += numComments

		// per-comment likes, unique per (user, comment)
		for _, comment := range comments {
			k := r.Intn(4)
			if k > len(users) {
				k = len(users)
			}
			commentLikers := r.Perm(len(users))[:k]
			for _, idx := range commentLikers {
				cl := &models.CommentLike{UserID: users[idx].ID, CommentID: comment.ID}
				if err := s.db.Create(cl).Error; err != nil {
					return fmt.Errorf("create comment like: %w", err)
				}
			}
			if err := s.db.Model(&models.Comment{}).
				Where("id = ?", comment.ID).
				UpdateColumn("like_count", len(commentLikers)).Error; err != nil {
				return fmt.Errorf("set comment like_count: %w", err)
			}
		}

		// pin one comment on roughly every fifth post
		if len(comments) > 0 && r.Intn(5) == 0 {
			if err := s.db.Model(&models.Comment{}).
				Where("id = ?", comments[0].ID).
				UpdateColumn("pinned", true).Error; err != nil {
				return fmt.Errorf("pin comment: %w", err)
			}
		}

		if err := s.db.Model(&models.Post{}).
			Where("id = ?", post.ID).
			UpdateColumns(map[string]interface{}{
				"like_count":    len(likers),
				"comment_count": numComments,
			}).Error; err != nil {
			return fmt.Errorf("set post counters: %w", err)
		}
	}

	log.Printf("Seeded %d likes and %d comments", totalLikes, totalComments)
	return nil
}
