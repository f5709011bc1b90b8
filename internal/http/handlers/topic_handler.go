package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTopics godoc
// @ID          listTopics
// @Summary     List topics
// @Description Returns every topic in insertion order.
// @Tags        Topics
// @Produce     json
// @Success     200  {object}  handlers.TopicsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /topics [get]
func (h *Handlers) ListTopics(c *gin.Context) {
	topics, err := h.topics.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, TopicsResponse{Topics: toTopicDTOs(topics)})
}
