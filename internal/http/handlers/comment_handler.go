package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-api/internal/validate"
)

// ListArticleComments godoc
// @ID          listArticleComments
// @Summary     List the comments of an article
// @Description Newest first. An existing article without comments yields an empty list.
// @Tags        Comments
// @Produce     json
// @Param       article_id  path  int  true  "Article ID"  minimum(0)
// @Success     200  {object}  handlers.CommentsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "article_id not valid / article doesn't exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{article_id}/comments [get]
func (h *Handlers) ListArticleComments(c *gin.Context) {
	id, err := validate.IDParam("article_id", c.Param("article_id"))
	if err != nil {
		fail(c, err)
		return
	}
	comments, err := h.comments.ListByArticle(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, CommentsResponse{Comments: toCommentDTOs(comments)})
}
