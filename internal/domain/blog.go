package domain

import "time"

type Blog struct {
	BlogID      string    `json:"id" dynamodbav:"blog_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	WebsiteURL  string    `json:"websiteUrl" dynamodbav:"website_url"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type CreateBlogRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
}

type UpdateBlogRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
}

// BlogFilter narrows a blog listing to names containing the term,
// case-insensitive. Zero value matches all.
type BlogFilter struct {
	SearchNameTerm string
}
