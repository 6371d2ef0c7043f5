package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/common"
	"github.com/dmitrijs2005/grievdesk/internal/logging"
	"github.com/google/uuid"
)

const maxBodySize = 32 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient validates baseURL and builds a client whose calls time out
// after timeout (zero means no client-side limit).
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (c *HTTPClient) url(path string) string {
	return c.baseURL + path
}

func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, c.url(req.Path), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	hreq.Header.Set(common.RequestIDHeaderName, reqID)
	hreq.Header.Set("Accept", ContentTypeJSON)
	if req.ContentType != "" {
		hreq.Header.Set("Content-Type", req.ContentType)
	}
	if req.Token != "" {
		hreq.Header.Set(common.AuthorizationHeaderName, "Bearer "+req.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		c.log.Debug(ctx, "http request failed", "method", req.Method, "path", req.Path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "http request",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, data)
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func statusError(status int, body []byte) *StatusError {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &StatusError{Status: status, Message: payload.Message}
}

func (c *HTTPClient) getJSON(ctx context.Context, path, token string, out any) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Token: token})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return malformed(path, err)
	}
	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: path, ContentType: ContentTypeJSON, Body: body})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return malformed(path, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	in := struct {
		PhoneOrEmail string `json:"phoneOrEmail"`
		Password     string `json:"password"`
	}{identifier, password}

	var out LoginResult
	if err := c.postJSON(ctx, PathLogin, in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, malformed("login: missing token", nil)
	}
	if out.User.Identifier() == "" {
		return nil, malformed("login: missing user id", nil)
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	body, err := json.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: PathRegister, ContentType: ContentTypeJSON, Body: body})
	if err != nil {
		return nil, err
	}
	return DecodeRegistered(resp.Body)
}

// DecodeRegistered extracts the user from a register response body.
func DecodeRegistered(body []byte) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, malformed("register", err)
	}
	if out.User == nil || out.User.Identifier() == "" {
		return nil, malformed("register: missing user", nil)
	}
	return out.User, nil
}

func (c *HTTPClient) Blogs(ctx context.Context) ([]models.Blog, error) {
	var out []models.Blog
	if err := c.getJSON(ctx, PathBlogs, "", &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, malformed("blogs: expected array", nil)
	}
	return out, nil
}

func (c *HTTPClient) Blog(ctx context.Context, slug string) (*models.Blog, error) {
	var out *models.Blog
	if err := c.getJSON(ctx, PathBlog+url.PathEscape(slug), "", &out); err != nil {
		return nil, err
	}
	if out == nil || out.ID == "" {
		return nil, malformed("blog: missing _id", nil)
	}
	return out, nil
}

func (c *HTTPClient) BlogPhotoURL(id string) string {
	return c.url(PathBlogPhoto + url.PathEscape(id))
}

func (c *HTTPClient) BlogPhoto(ctx context.Context, id string) (*models.Photo, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: PathBlogPhoto + url.PathEscape(id)})
	if err != nil {
		return nil, err
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(resp.Body)
	}
	return &models.Photo{ContentType: ct, Data: resp.Body}, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Category *[]models.Category `json:"category"`
	}
	if err := c.getJSON(ctx, PathCategories, "", &out); err != nil {
		return nil, err
	}
	if out.Category == nil {
		return nil, malformed("categories: missing category", nil)
	}
	return *out.Category, nil
}

func (c *HTTPClient) CategoryPhoto(ctx context.Context, id string) (string, error) {
	var out struct {
		Photo string `json:"photo"`
	}
	if err := c.getJSON(ctx, PathCategoryPhoto+url.PathEscape(id), "", &out); err != nil {
		return "", err
	}
	if out.Photo == "" {
		return "", malformed("category photo: missing photo", nil)
	}
	return out.Photo, nil
}

func (c *HTTPClient) Sliders(ctx context.Context) ([]models.Slider, error) {
	var out struct {
		SliderData *[]models.Slider `json:"sliderData"`
	}
	if err := c.getJSON(ctx, PathSliders, "", &out); err != nil {
		return nil, err
	}
	if out.SliderData == nil {
		return nil, malformed("sliders: missing sliderData", nil)
	}
	return *out.SliderData, nil
}

func (c *HTTPClient) Grievances(ctx context.Context, token, userID string) ([]models.Grievance, error) {
	var out []models.Grievance
	if err := c.getJSON(ctx, PathUserGrievances+url.PathEscape(userID), token, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, malformed("grievances: expected array", nil)
	}
	return out, nil
}
