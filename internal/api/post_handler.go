package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avelichko/scribe/internal/auth"
	"github.com/avelichko/scribe/internal/models"
	"github.com/avelichko/scribe/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

type createPostRequest struct {
	Title   string  `json:"title"`
	Image   *string `json:"image"`
	Content string  `json:"content"`
}

type postResponse struct {
	Message string       `json:"message"`
	Post    *models.Post `json:"post"`
}

// Create handles POST /posts. The authenticated caller becomes the author.
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	post, err := h.service.Create(c.Request().Context(), auth.GetUserID(c), req.Title, req.Image, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, postResponse{Message: "Posted", Post: post})
}

// List handles GET /posts. Public: no session required.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]models.PostWithAuthor{"posts": posts})
}

// Update handles PUT /posts/:id. Only the fields in service.PostUpdate merge;
// any author field in the payload is ignored by construction.
func (h *PostHandler) Update(c echo.Context) error {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "INVALID_ID", "invalid post id")
	}

	var req service.PostUpdate
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	post, err := h.service.Update(c.Request().Context(), postID, auth.GetUserID(c), req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, postResponse{Message: "Post updated successfully", Post: post})
}

// Delete handles DELETE /posts/:id.
func (h *PostHandler) Delete(c echo.Context) error {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "INVALID_ID", "invalid post id")
	}

	if err := h.service.Delete(c.Request().Context(), postID, auth.GetUserID(c)); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
