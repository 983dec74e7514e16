package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/rest/request"
	"github.com/Guyuepp/go-clean-discussion/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type CommentHandler struct {
	Service       domain.CommentUsecase
	Notifications domain.NotificationUsecase
}

func NewCommentHandler(svc domain.CommentUsecase, notifications domain.NotificationUsecase) *CommentHandler {
	return &CommentHandler{
		Service:       svc,
		Notifications: notifications,
	}
}

// Register mounts the comment routes.
func (h *CommentHandler) Register(r gin.IRouter) {
	r.POST("/discussions/:id/comments", h.CreateComment)
	r.GET("/comments/:id", h.GetComment)
	r.DELETE("/comments/:id", h.DeleteComment)
	r.GET("/comments/:id/recipients", h.FetchRecipients)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	did, ok := paramID(c)
	if !ok {
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comment, err := h.Service.Create(c.Request.Context(), req.ToDomain(did))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	comment, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewCommentFromDomain(&comment))
}

// DeleteComment soft-deletes by default; ?mode=hard erases the comment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var err error
	switch c.DefaultQuery("mode", "soft") {
	case "soft":
		err = h.Service.SoftDelete(c.Request.Context(), id)
	case "hard":
		err = h.Service.HardDelete(c.Request.Context(), id)
	default:
		c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid delete mode"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FetchRecipients previews who was (or would be) notified about a comment.
func (h *CommentHandler) FetchRecipients(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	recipients, err := h.Notifications.Recipients(ctx, comment)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]response.Recipient, len(recipients))
	for i := range recipients {
		res[i] = response.NewRecipientFromDomain(recipients[i])
	}
	c.JSON(http.StatusOK, gin.H{"recipients": res})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

// respondError writes err with its status code. Unclassified failures are
// reported without their detail.
func respondError(c *gin.Context, err error) {
	status := getStatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = domain.ErrInternalServerError.Error()
	}
	c.JSON(status, ResponseError{Message: msg})
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLockTimeout), errors.Is(err, domain.ErrStorage):
		logrus.Error(err)
		return http.StatusServiceUnavailable
	default:
		logrus.Error(err)
		return http.StatusInternalServerError
	}
}
