// Package domain defines the persistence models for topics, users, articles,
// and comments. These types are mapped with GORM and form the core data layer
// of the news API.
package domain

import "time"

// Topic is a subject articles are filed under. Read-only.
//
// Fields:
//   - Slug: natural primary key, referenced by Article.Topic.
//   - Description: short human-readable blurb.
type Topic struct {
	Slug        string `json:"slug"        gorm:"type:varchar(64);primaryKey"`
	Description string `json:"description" gorm:"type:text;not null;default:''"`
}

// TableName returns the database table name for Topic.
func (Topic) TableName() string { return "topics" }

// User is an article or comment author. Read-only.
type User struct {
	Username  string `json:"username"   gorm:"type:varchar(64);primaryKey"`
	Name      string `json:"name"       gorm:"type:varchar(255);not null"`
	AvatarURL string `json:"avatar_url" gorm:"type:text;not null;default:''"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Article is a news article. Votes is the only field the API mutates.
//
// The number of comments is never stored here; see ArticleView. Comments
// only carries the foreign key declaration and is never loaded.
type Article struct {
	ArticleID int64     `json:"article_id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title"      gorm:"type:varchar(255);not null"`
	Topic     string    `json:"topic"      gorm:"type:varchar(64);not null;index"`
	Author    string    `json:"author"     gorm:"type:varchar(64);not null;index"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
	Votes     int64     `json:"votes"      gorm:"not null;default:0"`

	TopicRef  Topic     `json:"-" gorm:"foreignKey:Topic;references:Slug;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	AuthorRef User      `json:"-" gorm:"foreignKey:Author;references:Username;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Comments  []Comment `json:"-" gorm:"foreignKey:ArticleID;references:ArticleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Article.
func (Article) TableName() string { return "articles" }

// Comment is a reader comment attached to an article. Read-only.
type Comment struct {
	CommentID int64     `json:"comment_id" gorm:"primaryKey;autoIncrement"`
	ArticleID int64     `json:"article_id" gorm:"not null;index:idx_article_comments,priority:1"`
	Author    string    `json:"author"     gorm:"type:varchar(64);not null"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	Votes     int64     `json:"votes"      gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index:idx_article_comments,priority:2"`

	// The comments -> articles key is declared by Article.Comments.
	AuthorRef User `json:"-" gorm:"foreignKey:Author;references:Username;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// ArticleView is an article row joined with its live comment count.
// CommentCount is aggregated at query time and has no backing column.
// Body is empty for listing queries.
type ArticleView struct {
	ArticleID    int64
	Title        string
	Topic        string
	Author       string
	Body         string
	CreatedAt    time.Time
	Votes        int64
	CommentCount int64
}

// Sortable columns for article listings.
const (
	SortArticleID    = "article_id"
	SortTitle        = "title"
	SortTopic        = "topic"
	SortAuthor       = "author"
	SortCreatedAt    = "created_at"
	SortVotes        = "votes"
	SortCommentCount = "comment_count"
)

// ArticleFilter narrows and orders an article listing. The zero value lists
// every article, newest first.
type ArticleFilter struct {
	Topic  string
	SortBy string // one of the Sort* constants; empty means created_at
	Desc   bool
}
