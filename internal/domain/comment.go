package domain

import "time"

type CommentatorInfo struct {
	UserID    string `json:"userId" dynamodbav:"user_id"`
	UserLogin string `json:"userLogin" dynamodbav:"user_login"`
}

type Comment struct {
	CommentID       string          `json:"id" dynamodbav:"comment_id"`
	PostID          string          `json:"-" dynamodbav:"post_id"`
	Content         string          `json:"content" dynamodbav:"content"`
	CommentatorInfo CommentatorInfo `json:"commentatorInfo" dynamodbav:"commentator_info"`
	CreatedAt       time.Time       `json:"createdAt" dynamodbav:"created_at"`
}

// CommentFilter narrows a comment listing to one post. Zero value matches all.
type CommentFilter struct {
	PostID string
}

// CommentView is a comment decorated with its engagement aggregate.
type CommentView struct {
	Comment
	LikesInfo LikesInfo `json:"likesInfo"`
}
