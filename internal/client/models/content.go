package models

// Blog is an item of GET /api/v1/blogs/get_all and the single_blog detail.
type Blog struct {
	ID          string       `json:"_id"`
	Heading     string       `json:"heading"`
	MainContent string       `json:"mainContent"`
	Slug        string       `json:"slug"`
	SubContents []SubContent `json:"subContents"`
}

type SubContent struct {
	Heading string    `json:"heading"`
	Content string    `json:"content"`
	Photo   *PhotoRef `json:"photo,omitempty"`
}

type PhotoRef struct {
	ID string `json:"_id"`
}

// BlogView is a blog decorated with the local liked flag.
type BlogView struct {
	Blog
	Liked bool
}

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Slider struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Photo string `json:"photo,omitempty"`
}

// Grievance is an item of the user grievance history.
type Grievance struct {
	ID      string `json:"_id,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Photo is a binary image payload.
type Photo struct {
	ContentType string
	Data        []byte
}

// Home is everything the landing screen shows.
type Home struct {
	Categories []Category
	Sliders    []Slider
	Blogs      []BlogView
}
