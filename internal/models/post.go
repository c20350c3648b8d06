package models

import "time"

type Post struct {
	ID        int64     `json:"id,string"`
	Title     string    `json:"title"`
	Image     *string   `json:"image,omitempty"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id,string"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostWithAuthor struct {
	Post
	AuthorUsername string `json:"author_username"`
	AuthorName     string `json:"author_name"`
}
