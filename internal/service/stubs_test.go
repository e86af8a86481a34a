package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"trendstack/internal/models"

	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, models.CodeValidation, appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, models.CodeUnauthorized, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, models.CodeNotFound, appErr.Code)
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint, uint) (*models.Post, error)
	listFn       func(context.Context, uint) ([]*models.Post, error)
	searchFn     func(context.Context, string, uint, int) ([]*models.Post, error)
	deleteFn     func(context.Context, uint) error
	toggleLikeFn func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, currentUserID)
}
func (s *postRepoStub) Search(ctx context.Context, query string, currentUserID uint, limit int) ([]*models.Post, error) {
	return s.searchFn(ctx, query, currentUserID, limit)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		listFn:       func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		searchFn:     func(_ context.Context, _ string, _ uint, _ int) ([]*models.Post, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, uint) ([]*models.Comment, error)
	setPinnedFn  func(context.Context, uint, bool) error
	deleteFn     func(context.Context, uint) error
	toggleLikeFn func(context.Context, uint, uint) (bool, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID, currentUserID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, currentUserID)
}
func (s *commentRepoStub) SetPinned(ctx context.Context, id uint, pinned bool) error {
	return s.setPinnedFn(ctx, id, pinned)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) ToggleLike(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _, _ uint) ([]*models.Comment, error) { return nil, nil },
		setPinnedFn:  func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	searchFn        func(context.Context, string, int) ([]*models.User, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit int) ([]*models.User, error) {
	return s.searchFn(ctx, query, limit)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		searchFn:        func(_ context.Context, _ string, _ int) ([]*models.User, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
	}
}

// memStore is an in-memory implementation of the post and comment
// repositories with real toggle and counter semantics, used to exercise
// whole interaction sequences without a database.
type memStore struct {
	posts        map[uint]*models.Post
	comments     map[uint]*models.Comment
	likes        map[[2]uint]bool // [userID, postID]
	commentLikes map[[2]uint]bool // [userID, commentID]
	nextID       uint
}

func newMemStore() *memStore {
	return &memStore{
		posts:        make(map[uint]*models.Post),
		comments:     make(map[uint]*models.Comment),
		likes:        make(map[[2]uint]bool),
		commentLikes: make(map[[2]uint]bool),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) Create(_ context.Context, post *models.Post) error {
	post.ID = m.id()
	m.posts[post.ID] = post
	return nil
}

func (m *memStore) GetByID(_ context.Context, id, currentUserID uint) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	cp := *post
	cp.Liked = currentUserID != 0 && m.likes[[2]uint{currentUserID, id}]
	return &cp, nil
}

func (m *memStore) List(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	ids := make([]uint, 0, len(m.posts))
	for id := range m.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		p, _ := m.GetByID(ctx, id, currentUserID)
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) Search(_ context.Context, _ string, _ uint, _ int) ([]*models.Post, error) {
	return nil, nil
}

func (m *memStore) Delete(_ context.Context, id uint) error {
	delete(m.posts, id)
	for key := range m.likes {
		if key[1] == id {
			delete(m.likes, key)
		}
	}
	for cid, c := range m.comments {
		if c.PostID == id {
			for key := range m.commentLikes {
				if key[1] == cid {
					delete(m.commentLikes, key)
				}
			}
			delete(m.comments, cid)
		}
	}
	return nil
}

func (m *memStore) ToggleLike(_ context.Context, userID, postID uint) (bool, error) {
	post, ok := m.posts[postID]
	if !ok {
		return false, models.NewNotFoundError("Post", postID)
	}
	key := [2]uint{userID, postID}
	if m.likes[key] {
		delete(m.likes, key)
		if post.LikeCount > 0 {
			post.LikeCount--
		}
		return false, nil
	}
	m.likes[key] = true
	post.LikeCount++
	return true, nil
}

// comment side

type memCommentStore struct {
	*memStore
}

func (m memCommentStore) Create(_ context.Context, comment *models.Comment) error {
	post, ok := m.posts[comment.PostID]
	if !ok {
		return models.NewNotFoundError("Post", comment.PostID)
	}
	comment.ID = m.id()
	m.comments[comment.ID] = comment
	post.CommentCount++
	return nil
}

func (m memCommentStore) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, models.NewNotFoundError("Comment", id)
	}
	cp := *comment
	return &cp, nil
}

func (m memCommentStore) ListByPost(_ context.Context, postID, currentUserID uint) ([]*models.Comment, error) {
	ids := make([]uint, 0)
	for id, c := range m.comments {
		if c.PostID == postID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		cp := *m.comments[id]
		cp.Liked = currentUserID != 0 && m.commentLikes[[2]uint{currentUserID, id}]
		out = append(out, &cp)
	}
	return out, nil
}

func (m memCommentStore) SetPinned(_ context.Context, id uint, pinned bool) error {
	comment, ok := m.comments[id]
	if !ok {
		return models.NewNotFoundError("Comment", id)
	}
	comment.Pinned = pinned
	return nil
}

func (m memCommentStore) Delete(_ context.Context, id uint) error {
	comment, ok := m.comments[id]
	if !ok {
		return models.NewNotFoundError("Comment", id)
	}
	if post, ok := m.posts[comment.PostID]; ok && post.CommentCount > 0 {
		post.CommentCount--
	}
	for key := range m.commentLikes {
		if key[1] == id {
			delete(m.commentLikes, key)
		}
	}
	delete(m.comments, id)
	return nil
}

func (m memCommentStore) ToggleLike(_ context.Context, userID, commentID uint) (bool, error) {
	comment, ok := m.comments[commentID]
	if !ok {
		return false, models.NewNotFoundError("Comment", commentID)
	}
	key := [2]uint{userID, commentID}
	if m.commentLikes[key] {
		delete(m.commentLikes, key)
		if comment.LikeCount > 0 {
			comment.LikeCount--
		}
		return false, nil
	}
	m.commentLikes[key] = true
	comment.LikeCount++
	return true, nil
}
