// Package handlers – response shapes and helpers.
//
// Success bodies wrap data under a single resource key. Timestamps are
// rendered as ISO-8601 UTC strings with millisecond precision, e.g.
// "2020-07-09T20:11:00.000Z".
package handlers

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-api/internal/domain"
	"github.com/tbourn/go-news-api/internal/http/middleware"
)

// TimeLayout is the wire format of created_at fields.
const TimeLayout = "2006-01-02T15:04:05.000Z"

func isoTime(t time.Time) string { return t.UTC().Format(TimeLayout) }

// ErrorResponse documents the error envelope written by the error
// middleware.
type ErrorResponse = middleware.ErrorBody

// TopicDTO is the wire form of a topic.
type TopicDTO struct {
	Slug        string `json:"slug" example:"mitch"`
	Description string `json:"description" example:"The man, the Mitch, the legend"`
}

// UserDTO is the wire form of a user.
type UserDTO struct {
	Username  string `json:"username" example:"butter_bridge"`
	Name      string `json:"name" example:"jonny"`
	AvatarURL string `json:"avatar_url" example:"https://example.com/avatar.jpg"`
}

// ArticleSummaryDTO is an article in a listing; the body is omitted.
type ArticleSummaryDTO struct {
	ArticleID    int64  `json:"article_id" example:"1"`
	Title        string `json:"title" example:"Living in the shadow of a great man"`
	Topic        string `json:"topic" example:"mitch"`
	Author       string `json:"author" example:"butter_bridge"`
	CreatedAt    string `json:"created_at" example:"2020-07-09T20:11:00.000Z"`
	Votes        int64  `json:"votes" example:"100"`
	CommentCount int64  `json:"comment_count" example:"11"`
}

// ArticleDTO is a single article including its body.
type ArticleDTO struct {
	ArticleID    int64  `json:"article_id" example:"1"`
	Title        string `json:"title" example:"Living in the shadow of a great man"`
	Topic        string `json:"topic" example:"mitch"`
	Author       string `json:"author" example:"butter_bridge"`
	Body         string `json:"body" example:"I find this existence challenging"`
	CreatedAt    string `json:"created_at" example:"2020-07-09T20:11:00.000Z"`
	Votes        int64  `json:"votes" example:"100"`
	CommentCount int64  `json:"comment_count" example:"11"`
}

// CommentDTO is the wire form of a comment.
type CommentDTO struct {
	CommentID int64  `json:"comment_id" example:"5"`
	ArticleID int64  `json:"article_id" example:"1"`
	Author    string `json:"author" example:"icellusedkars"`
	Body      string `json:"body" example:"I hate streaming noses"`
	Votes     int64  `json:"votes" example:"0"`
	CreatedAt string `json:"created_at" example:"2020-11-03T21:00:00.000Z"`
}

// TopicsResponse is the body of GET /topics.
type TopicsResponse struct {
	Topics []TopicDTO `json:"topics"`
}

// UsersResponse is the body of GET /users.
type UsersResponse struct {
	Users []UserDTO `json:"users"`
}

// UserResponse is the body of GET /users/{username}.
type UserResponse struct {
	User UserDTO `json:"user"`
}

// ArticlesResponse is the body of GET /articles.
type ArticlesResponse struct {
	Articles []ArticleSummaryDTO `json:"articles"`
}

// ArticleResponse is the body of GET and PATCH /articles/{article_id}.
type ArticleResponse struct {
	Article ArticleDTO `json:"article"`
}

// CommentsResponse is the body of GET /articles/{article_id}/comments.
type CommentsResponse struct {
	Comments []CommentDTO `json:"comments"`
}

// PatchArticleRequest documents the PATCH body. Decoding happens in
// validate.VotePayload so that each failure gets its own message.
type PatchArticleRequest struct {
	IncVotes int64 `json:"inc_votes" example:"-5"`
}

func toTopicDTOs(in []domain.Topic) []TopicDTO {
	out := make([]TopicDTO, 0, len(in))
	for _, t := range in {
		out = append(out, TopicDTO{Slug: t.Slug, Description: t.Description})
	}
	return out
}

func toUserDTO(u domain.User) UserDTO {
	return UserDTO{Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL}
}

func toUserDTOs(in []domain.User) []UserDTO {
	out := make([]UserDTO, 0, len(in))
	for _, u := range in {
		out = append(out, toUserDTO(u))
	}
	return out
}

func toArticleDTO(a *domain.ArticleView) ArticleDTO {
	return ArticleDTO{
		ArticleID:    a.ArticleID,
		Title:        a.Title,
		Topic:        a.Topic,
		Author:       a.Author,
		Body:         a.Body,
		CreatedAt:    isoTime(a.CreatedAt),
		Votes:        a.Votes,
		CommentCount: a.CommentCount,
	}
}

func toSummaryDTOs(in []domain.ArticleView) []ArticleSummaryDTO {
	out := make([]ArticleSummaryDTO, 0, len(in))
	for _, a := range in {
		out = append(out, ArticleSummaryDTO{
			ArticleID:    a.ArticleID,
			Title:        a.Title,
			Topic:        a.Topic,
			Author:       a.Author,
			CreatedAt:    isoTime(a.CreatedAt),
			Votes:        a.Votes,
			CommentCount: a.CommentCount,
		})
	}
	return out
}

func toCommentDTOs(in []domain.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(in))
	for _, cm := range in {
		out = append(out, CommentDTO{
			CommentID: cm.CommentID,
			ArticleID: cm.ArticleID,
			Author:    cm.Author,
			Body:      cm.Body,
			Votes:     cm.Votes,
			CreatedAt: isoTime(cm.CreatedAt),
		})
	}
	return out
}

// fail records err for middleware.ErrorHandler and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// okCached writes body with a weak ETag derived from its bytes, or 304 when
// If-None-Match already names that tag.
func okCached(c *gin.Context, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		fail(c, fmt.Errorf("encode response: %w", err))
		return
	}
	etag := weakETag(raw)
	c.Header("ETag", etag)
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func weakETag(raw []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(raw)
	return fmt.Sprintf(`W/"%x"`, h.Sum64())
}

// etagMatches implements the weak comparison of If-None-Match.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, part := range strings.Split(header, ",") {
		p := strings.TrimSpace(part)
		if p == "*" || strings.TrimPrefix(p, "W/") == want {
			return true
		}
	}
	return false
}
