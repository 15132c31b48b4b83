package domain

import "time"

// LikeStatus is the closed set of vote states a user can hold on a subject.
type LikeStatus string

const (
	LikeStatusNone    LikeStatus = "None"
	LikeStatusLike    LikeStatus = "Like"
	LikeStatusDislike LikeStatus = "Dislike"
)

// Valid reports whether s is one of the three known statuses.
func (s LikeStatus) Valid() bool {
	switch s {
	case LikeStatusNone, LikeStatusLike, LikeStatusDislike:
		return true
	}
	return false
}

// Like is one user's vote on one subject (a post or a comment).
// The (subject_id, user_id) pair is the table key, so at most one
// record per pair can exist.
type Like struct {
	SubjectID string     `json:"subjectId" dynamodbav:"subject_id"`
	UserID    string     `json:"userId" dynamodbav:"user_id"`
	UserLogin string     `json:"userLogin" dynamodbav:"user_login"`
	Status    LikeStatus `json:"status" dynamodbav:"status"`
	CreatedAt time.Time  `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" dynamodbav:"updated_at"`
}

// LikeDetails is one entry of the newest-likes list.
type LikeDetails struct {
	UserID    string    `json:"userId"`
	UserLogin string    `json:"login"`
	AddedAt   time.Time `json:"addedAt"`
}

// LikesInfo is the aggregate exposed on comments.
type LikesInfo struct {
	LikesCount    int        `json:"likesCount"`
	DislikesCount int        `json:"dislikesCount"`
	MyStatus      LikeStatus `json:"myStatus"`
}

// ExtendedLikesInfo adds the newest-likes preview exposed on posts.
type ExtendedLikesInfo struct {
	LikesInfo
	NewestLikes []LikeDetails `json:"newestLikes"`
}
