// Package services contains the read-side application services of the
// client: blogs with their local liked flags, categories, sliders, the
// signed-in user's grievance history and the home feed.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ContentService is what the content screens call. Every error it returns
// is a *failure.Error.
type ContentService interface {
	Home(ctx context.Context) (*models.Home, error)
	Blogs(ctx context.Context) ([]models.BlogView, error)
	Blog(ctx context.Context, slug string) (*models.BlogView, error)
	BlogPhoto(ctx context.Context, id string) (*models.Photo, error)
	BlogPhotoURL(id string) string
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryPhoto(ctx context.Context, id string) (string, error)
	Sliders(ctx context.Context) ([]models.Slider, error)
	Grievances(ctx context.Context) ([]models.Grievance, error)
	ToggleLike(ctx context.Context, blogID string) (bool, error)
	ShareText(b models.Blog) string
}

// Likes is the local liked set.
type Likes interface {
	IsMarked(ctx context.Context, id string) (bool, error)
	Toggle(ctx context.Context, id string) (bool, error)
}

type Sessions interface {
	RequireSession(ctx context.Context) (*models.Session, error)
}

type contentService struct {
	api      client.API
	likes    Likes
	sessions Sessions
	baseURL  string
	log      logging.Logger
}

// NewContentService builds the service. baseURL is used in shared links.
func NewContentService(api client.API, likes Likes, sessions Sessions, baseURL string, log logging.Logger) ContentService {
	return &contentService{
		api:      api,
		likes:    likes,
		sessions: sessions,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

func (s *contentService) fail(ctx context.Context, op string, err error) error {
	fe := failure.Classify(err, failure.Content)
	s.log.Warn(ctx, op+" failed", "kind", failure.KindName(fe), "error", err)
	return fe
}

func (s *contentService) decorate(ctx context.Context, blogs []models.Blog) ([]models.BlogView, error) {
	out := make([]models.BlogView, 0, len(blogs))
	for _, b := range blogs {
		liked, err := s.likes.IsMarked(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("liked flag: %w", err)
		}
		out = append(out, models.BlogView{Blog: b, Liked: liked})
	}
	return out, nil
}

func (s *contentService) Blogs(ctx context.Context) ([]models.BlogView, error) {
	blogs, err := s.api.Blogs(ctx)
	if err != nil {
		return nil, s.fail(ctx, "blogs", err)
	}
	views, err := s.decorate(ctx, blogs)
	if err != nil {
		return nil, s.fail(ctx, "blogs", err)
	}
	return views, nil
}

func (s *contentService) Blog(ctx context.Context, slug string) (*models.BlogView, error) {
	b, err := s.api.Blog(ctx, slug)
	if err != nil {
		return nil, s.fail(ctx, "blog", err)
	}
	liked, err := s.likes.IsMarked(ctx, b.ID)
	if err != nil {
		return nil, s.fail(ctx, "blog", err)
	}
	return &models.BlogView{Blog: *b, Liked: liked}, nil
}

func (s *contentService) BlogPhoto(ctx context.Context, id string) (*models.Photo, error) {
	p, err := s.api.BlogPhoto(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "blog photo", err)
	}
	return p, nil
}

func (s *contentService) BlogPhotoURL(id string) string {
	return s.api.BlogPhotoURL(id)
}

func (s *contentService) Categories(ctx context.Context) ([]models.Category, error) {
	c, err := s.api.Categories(ctx)
	if err != nil {
		return nil, s.fail(ctx, "categories", err)
	}
	return c, nil
}

func (s *contentService) CategoryPhoto(ctx context.Context, id string) (string, error) {
	u, err := s.api.CategoryPhoto(ctx, id)
	if err != nil {
		return "", s.fail(ctx, "category photo", err)
	}
	return u, nil
}

func (s *contentService) Sliders(ctx context.Context) ([]models.Slider, error) {
	sl, err := s.api.Sliders(ctx)
	if err != nil {
		return nil, s.fail(ctx, "sliders", err)
	}
	return sl, nil
}

func (s *contentService) Grievances(ctx context.Context) ([]models.Grievance, error) {
	sess, err := s.sessions.RequireSession(ctx)
	if err != nil {
		return nil, s.fail(ctx, "grievances", err)
	}
	g, err := s.api.Grievances(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, s.fail(ctx, "grievances", err)
	}
	return g, nil
}

// Home loads categories, sliders and blogs concurrently. The first failure
// cancels the others.
func (s *contentService) Home(ctx context.Context) (*models.Home, error) {
	var (
		home  models.Home
		blogs []models.Blog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.api.Categories(gctx)
		home.Categories = c
		return err
	})
	g.Go(func() error {
		sl, err := s.api.Sliders(gctx)
		home.Sliders = sl
		return err
	})
	g.Go(func() error {
		b, err := s.api.Blogs(gctx)
		blogs = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, "home", err)
	}

	views, err := s.decorate(ctx, blogs)
	if err != nil {
		return nil, s.fail(ctx, "home", err)
	}
	home.Blogs = views
	return &home, nil
}

func (s *contentService) ToggleLike(ctx context.Context, blogID string) (bool, error) {
	liked, err := s.likes.Toggle(ctx, blogID)
	if err != nil {
		return liked, s.fail(ctx, "like", err)
	}
	return liked, nil
}

func (s *contentService) ShareText(b models.Blog) string {
	return fmt.Sprintf("Check out this blog: %s\nRead more at: %s/blog/%s", b.Heading, s.baseURL, b.Slug)
}
