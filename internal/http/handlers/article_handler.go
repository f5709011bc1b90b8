// Article HTTP handlers.
//
//   - GET   /articles                (filtered, sorted summaries; ETag aware)
//   - GET   /articles/{article_id}   (single article with body)
//   - PATCH /articles/{article_id}   (apply a signed vote delta)
//
// A PATCH may carry an Idempotency-Key. Repeating it with the same inc_votes
// returns the current article without applying the delta again and sets
// Idempotency-Replayed: true.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/http/middleware"
	"github.com/tbourn/go-news-api/internal/validate"
)

// MsgBodyTooLarge is returned when the request body exceeds the server cap.
const MsgBodyTooLarge = "request body too large"

// ListArticles godoc
// @ID          listArticles
// @Summary     List articles
// @Description Article summaries (no body) with comment_count. Defaults to created_at descending.
// @Description Responses carry a weak ETag; a matching If-None-Match yields 304.
// @Tags        Articles
// @Produce     json
// @Param       topic          query   string  false  "Filter by topic slug"  example(mitch)
// @Param       sort_by        query   string  false  "Sort column"  Enums(article_id,title,topic,author,created_at,votes,comment_count)  default(created_at)
// @Param       order          query   string  false  "Sort direction"  Enums(asc,desc)  default(desc)
// @Param       If-None-Match  header  string  false  "ETag from a previous response"
// @Success     200  {object}  handlers.ArticlesResponse
// @Success     304  "Not modified"
// @Failure     400  {object}  handlers.ErrorResponse  "sort_by not valid / order not valid"
// @Failure     404  {object}  handlers.ErrorResponse  "topic doesn't exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles [get]
func (h *Handlers) ListArticles(c *gin.Context) {
	f, err := validate.ArticleQuery(c.Query("topic"), c.Query("sort_by"), c.Query("order"))
	if err != nil {
		fail(c, err)
		return
	}
	articles, err := h.articles.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	okCached(c, ArticlesResponse{Articles: toSummaryDTOs(articles)})
}

// GetArticle godoc
// @ID          getArticle
// @Summary     Get an article
// @Tags        Articles
// @Produce     json
// @Param       article_id  path  int  true  "Article ID"  minimum(0)
// @Success     200  {object}  handlers.ArticleResponse
// @Failure     404  {object}  handlers.ErrorResponse  "article_id not valid / article doesn't exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{article_id} [get]
func (h *Handlers) GetArticle(c *gin.Context) {
	id, err := validate.IDParam("article_id", c.Param("article_id"))
	if err != nil {
		fail(c, err)
		return
	}
	a, err := h.articles.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: toArticleDTO(a)})
}

// PatchArticleVotes godoc
// @ID          patchArticleVotes
// @Summary     Change an article's votes
// @Description Atomically adds inc_votes (may be negative) to the article's votes and returns the updated article.
// @Tags        Articles
// @Accept      json
// @Produce     json
// @Param       article_id       path    int                           true   "Article ID"  minimum(0)
// @Param       Idempotency-Key  header  string                        false  "Key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.PatchArticleRequest  true   "Vote delta"
// @Success     201  {object}  handlers.ArticleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "missing inc_votes / inc_votes must be a number / inc_votes out of range"
// @Failure     404  {object}  handlers.ErrorResponse  "article_id not valid / article doesn't exist"
// @Failure     409  {object}  handlers.ErrorResponse  "Idempotency-Key reused with a different inc_votes"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{article_id} [patch]
func (h *Handlers) PatchArticleVotes(c *gin.Context) {
	id, err := validate.IDParam("article_id", c.Param("article_id"))
	if err != nil {
		fail(c, err)
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, apperr.InvalidPayload(MsgBodyTooLarge))
			return
		}
		fail(c, err)
		return
	}
	delta, err := validate.VotePayload(raw)
	if err != nil {
		fail(c, err)
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	a, replayed, err := h.articles.ApplyVoteDelta(c.Request.Context(), id, delta, key)
	if err != nil {
		fail(c, err)
		return
	}
	if replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusCreated, ArticleResponse{Article: toArticleDTO(a)})
}
