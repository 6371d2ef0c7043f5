package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/grievdesk/internal/client/models"
)

func likeMark(liked bool) string {
	if liked {
		return "[♥]"
	}
	return "[ ]"
}

func (a *App) printBlogList(blogs []models.BlogView) {
	if len(blogs) == 0 {
		a.println("No blogs yet.")
		return
	}
	for _, b := range blogs {
		a.printf("%s %s  slug=%s id=%s\n", likeMark(b.Liked), b.Heading, b.Slug, b.ID)
	}
}

// Home shows the landing screen: categories, sliders and the blog feed.
func (a *App) Home(ctx context.Context) error {
	home, err := a.content.Home(ctx)
	if err != nil {
		return err
	}

	a.println("Categories:")
	for _, c := range home.Categories {
		a.printf("  %s (%s)\n", c.Name, c.Slug)
	}
	a.println("Highlights:")
	for _, s := range home.Sliders {
		a.printf("  %s\n", s.Title)
	}
	a.println("Blogs:")
	a.printBlogList(home.Blogs)
	return nil
}

func (a *App) Blogs(ctx context.Context) error {
	blogs, err := a.content.Blogs(ctx)
	if err != nil {
		return err
	}
	a.printBlogList(blogs)
	return nil
}

// Blog prints a single blog with its sections, photo links and share text.
func (a *App) Blog(ctx context.Context, slug string) error {
	b, err := a.content.Blog(ctx, slug)
	if err != nil {
		return err
	}

	a.printf("%s %s\n\n%s\n", likeMark(b.Liked), b.Heading, b.MainContent)
	for _, sc := range b.SubContents {
		a.printf("\n## %s\n%s\n", sc.Heading, sc.Content)
		if sc.Photo != nil && sc.Photo.ID != "" {
			a.printf("Photo: %s\n", a.content.BlogPhotoURL(sc.Photo.ID))
		}
	}
	a.println()
	a.println(a.content.ShareText(b.Blog))
	return nil
}

// Like toggles the local liked flag of a blog.
func (a *App) Like(ctx context.Context, id string) error {
	liked, err := a.content.ToggleLike(ctx, id)
	if err != nil {
		return err
	}
	if liked {
		a.println("Liked.")
	} else {
		a.println("Like removed.")
	}
	return nil
}

// Grievances lists the grievances the signed-in user has filed.
func (a *App) Grievances(ctx context.Context) error {
	list, err := a.content.Grievances(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No grievances filed.")
		return nil
	}
	for i, g := range list {
		a.println(fmt.Sprintf("%d. %s", i+1, g.Subject))
		if g.Text != "" {
			a.printf("   %s\n", g.Text)
		}
	}
	return nil
}
