package service

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

// ExcerptLength is the number of runes kept from a post body on list cards.
const ExcerptLength = 200

// BlogService serves the public blog pages and admin deletion.
type BlogService struct {
	api    ports.BlogAPI
	logger zerolog.Logger
}

func NewBlogService(api ports.BlogAPI, logger zerolog.Logger) *BlogService {
	return &BlogService{api: api, logger: logger}
}

// List returns every post as a card with a plain-text excerpt.
func (s *BlogService) List(ctx context.Context) ([]domain.BlogCard, error) {
	blogs, err := s.api.Blogs(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]domain.BlogCard, 0, len(blogs))
	for _, b := range blogs {
		tags := b.Tags
		if tags == nil {
			tags = []string{}
		}
		cards = append(cards, domain.BlogCard{
			ID:        b.ID,
			Title:     b.Title,
			Picture:   b.Picture,
			Tags:      tags,
			Excerpt:   Excerpt(b.Content, ExcerptLength),
			CreatedAt: b.CreatedAt,
		})
	}
	return cards, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.api.Blog(ctx, id)
}

func (s *BlogService) Delete(ctx context.Context, sess domain.Session, id string) error {
	if err := s.api.DeleteBlog(ctx, sess.Token, id); err != nil {
		return err
	}
	s.logger.Info().Str("blog_id", id).Msg("blog deleted")
	return nil
}

// Excerpt strips the markup from an HTML body, collapses whitespace and
// cuts the text to n runes.
func Excerpt(html string, n int) string {
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
