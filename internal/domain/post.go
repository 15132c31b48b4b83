package domain

import "time"

type Post struct {
	PostID           string    `json:"id" dynamodbav:"post_id"`
	Title            string    `json:"title" dynamodbav:"title"`
	ShortDescription string    `json:"shortDescription" dynamodbav:"short_description"`
	Content          string    `json:"content" dynamodbav:"content"`
	BlogID           string    `json:"blogId" dynamodbav:"blog_id"`
	BlogName         string    `json:"blogName" dynamodbav:"blog_name"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type CreatePostRequest struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	BlogID           string `json:"blogId"`
}

// PostFilter narrows a post listing to one blog. Zero value matches all.
type PostFilter struct {
	BlogID string
}

// PostView is a post decorated with its engagement aggregate.
type PostView struct {
	Post
	ExtendedLikesInfo ExtendedLikesInfo `json:"extendedLikesInfo"`
}
