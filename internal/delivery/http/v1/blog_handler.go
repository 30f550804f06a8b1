package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogUC domain.BlogUsecase
}

func NewBlogHandler(public *gin.RouterGroup, protected *gin.RouterGroup, blogUC domain.BlogUsecase) {
	handler := &BlogHandler{blogUC: blogUC}

	posts := public.Group("/blog/posts")
	{
		posts.GET("", handler.PublicList)
		posts.GET("/:slug", handler.GetBySlug)
	}

	admin := protected.Group("/admin/blog/posts", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("", handler.AdminList)
		admin.POST("", handler.Create)
		admin.PUT("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}
}

// PublicList godoc
// @Summary      List published posts
// @Tags         blog
// @Produce      json
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response{data=[]domain.BlogPost}
// @Router       /blog/posts [get]
func (h *BlogHandler) PublicList(c *gin.Context) {
	h.list(c, true)
}

// AdminList godoc
// @Summary      List all posts including drafts
// @Tags         blog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.BlogPost}
// @Router       /admin/blog/posts [get]
// @Security     BearerAuth
func (h *BlogHandler) AdminList(c *gin.Context) {
	h.list(c, false)
}

func (h *BlogHandler) list(c *gin.Context, publishedOnly bool) {
	page, pageSize := pageParams(c)
	posts, total, err := h.blogUC.ListPosts(c.Request.Context(), publishedOnly, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Blog posts", posts, page, pageSize, total)
}

// GetBySlug godoc
// @Summary      Read a published post
// @Description  Records one view per viewer per hour.
// @Tags         blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  response.Response{data=domain.BlogPost}
// @Failure      404   {object}  response.Response
// @Router       /blog/posts/{slug} [get]
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.blogUC.GetPublishedPost(c.Request.Context(), c.Param("slug"), middleware.ViewerFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Blog post", post)
}

// Create godoc
// @Summary      Create a post
// @Description  The slug is derived from the title when omitted.
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        post  body      domain.BlogPostRequest  true  "Post"
// @Success      201   {object}  response.Response{data=domain.BlogPost}
// @Failure      409   {object}  response.Response
// @Router       /admin/blog/posts [post]
// @Security     BearerAuth
func (h *BlogHandler) Create(c *gin.Context) {
	var req domain.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	post, err := h.blogUC.CreatePost(c.Request.Context(), c.GetString(string(domain.KeyUserID)), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Post created", post)
}

// Update godoc
// @Summary      Update a post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Post ID"
// @Param        post  body      domain.BlogPostRequest  true  "Post"
// @Success      200   {object}  response.Response{data=domain.BlogPost}
// @Router       /admin/blog/posts/{id} [put]
// @Security     BearerAuth
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	post, err := h.blogUC.UpdatePost(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post updated", post)
}

// Delete godoc
// @Summary      Delete a post
// @Tags         blog
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  response.Response
// @Router       /admin/blog/posts/{id} [delete]
// @Security     BearerAuth
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.blogUC.DeletePost(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post deleted", nil)
}
