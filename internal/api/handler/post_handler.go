package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayel/intranet/internal/api/metrics"
	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry post creation safely.
const HeaderIdempotencyKey = "Idempotency-Key"

type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// input resolves the publish mode into the service's schedule field.
func (r postRequest) input() (ports.PostInput, error) {
	in := ports.PostInput{
		Title:         r.Title,
		Content:       r.Content,
		ImageURL:      r.ImageURL,
		RoleTarget:    r.RoleTarget,
		CompanyTarget: r.CompanyTarget,
		IsImportant:   r.IsImportant,
	}
	switch r.PublishMode {
	case publishNow:
	case publishSchedule:
		if r.ScheduledFor == nil {
			return in, fmt.Errorf("%w: scheduled_for is required", domain.ErrInvalidSchedule)
		}
		in.Schedule = r.ScheduledFor
	default:
		in.Schedule = r.ScheduledFor
	}
	return in, nil
}

func (h *PostHandler) views(c echo.Context, viewerID string, list []ports.PostView) error {
	out := make([]postResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toPostResponse(v, viewerID))
	}
	return c.JSON(http.StatusOK, out)
}

// Feed lists the mural posts visible to the caller.
//
// @Summary      Mural feed
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        role     query     string  false  "Role selector (admins only)"
// @Param        company  query     string  false  "Company selector (admins only)"
// @Param        mode     query     string  false  "all or important"
// @Success      200      {array}   postResponse
// @Failure      401      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) Feed(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}

	mode := domain.FeedMode(c.QueryParam("mode"))
	switch mode {
	case "":
		mode = domain.FeedModeAll
	case domain.FeedModeAll, domain.FeedModeImportant:
	default:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "mode must be one of: all important")
	}

	list, err := h.postService.Feed(c.Request().Context(), v, ports.FeedQuery{
		RoleFilter:    c.QueryParam("role"),
		CompanyFilter: c.QueryParam("company"),
		Mode:          mode,
	})
	if err != nil {
		return err
	}
	metrics.FeedRequestsTotal.WithLabelValues(string(mode)).Inc()
	return h.views(c, v.ID, list)
}

// Important lists the important posts visible to the caller.
//
// @Summary      Important posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   postResponse
// @Failure      401  {object}  errorResponse
// @Router       /posts/important [get]
func (h *PostHandler) Important(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	list, err := h.postService.Important(c.Request().Context(), v)
	if err != nil {
		return err
	}
	return h.views(c, v.ID, list)
}

// Get returns one post.
//
// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	pv, err := h.postService.Get(c.Request().Context(), v, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*pv, v.ID))
}

// Create publishes or schedules a post. A repeated Idempotency-Key returns
// the original post with 200.
//
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Client retry key"
// @Param        body             body      postRequest  true   "Post"
// @Success      201              {object}  createPostResponse
// @Success      200              {object}  createPostResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	res, err := h.postService.Create(c.Request().Context(), v, ports.CreatePostInput{
		PostInput:      in,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	resp := createPostResponse{postResponse: toPostResponse(res.Post, v.ID), Replayed: res.AlreadyExisted}
	if res.AlreadyExisted {
		metrics.PostsIdempotentReplaysTotal.Inc()
		return c.JSON(http.StatusOK, resp)
	}
	metrics.PostsCreatedTotal.WithLabelValues(string(res.Post.Post.Status)).Inc()
	return c.JSON(http.StatusCreated, resp)
}

// Update replaces the editable fields of a post.
//
// @Summary      Update post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Post ID"
// @Param        body  body      postRequest  true  "Post"
// @Success      200   {object}  postResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	pv, err := h.postService.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*pv, v.ID))
}

// Delete removes a post and its comments.
//
// @Summary      Delete post
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  string  true  "Post ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.postService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike likes or unlikes a post for the caller.
//
// @Summary      Toggle like
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  likeResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	res, err := h.postService.ToggleLike(c.Request().Context(), v, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{Liked: res.Liked, Count: res.Count})
}

// ListComments returns the comments of a post, oldest first.
//
// @Summary      List comments
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {array}   domain.Comment
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/comments [get]
func (h *PostHandler) ListComments(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	list, err := h.postService.ListComments(c.Request().Context(), v, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// AddComment comments on a post.
//
// @Summary      Add comment
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	comment, err := h.postService.AddComment(c.Request().Context(), v, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}
