package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/grievdesk/internal/client/models"
)

// Backend paths, relative to the configured base URL.
const (
	PathLogin           = "/api/v1/user/login"
	PathRegister        = "/api/v1/user/register"
	PathBlogs           = "/api/v1/blogs/get_all"
	PathBlog            = "/api/v1/blogs/single_blog/"
	PathBlogPhoto       = "/api/v1/blogs/singlePhoto/"
	PathCategories      = "/api/v1/categry/get-category"
	PathCategoryPhoto   = "/api/v1/categry/singlePhoto-category/"
	PathSliders         = "/api/v1/slider/get-slider"
	PathUserGrievances  = "/api/v1/grievance/get_user_grievances/"
	PathCreateGrievance = "/api/v1/grievance/create_grievance"
)

const ContentTypeJSON = "application/json"

type API interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)

	Blogs(ctx context.Context) ([]models.Blog, error)
	Blog(ctx context.Context, slug string) (*models.Blog, error)
	BlogPhoto(ctx context.Context, id string) (*models.Photo, error)
	BlogPhotoURL(id string) string
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryPhoto(ctx context.Context, id string) (string, error)
	Sliders(ctx context.Context) ([]models.Slider, error)
	Grievances(ctx context.Context, token, userID string) ([]models.Grievance, error)

	// Do sends a pre-encoded request and returns the raw 2xx response.
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request is an encoded call. Path is relative to the base URL.
type Request struct {
	Method      string
	Path        string
	Token       string
	ContentType string
	Body        []byte
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// LoginResult is the body of a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
