package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"contact-service/internal/content"
)

// ContentHandler serves read-only site content fetched from the headless CMS
type ContentHandler struct {
	client *content.Client
	log    *logrus.Entry
}

// NewContentHandler creates a new content handler
func NewContentHandler(client *content.Client) *ContentHandler {
	return &ContentHandler{
		client: client,
		log:    logrus.WithField("component", "content_handler"),
	}
}

// ListPortfolio handles GET /api/portfolio
func (h *ContentHandler) ListPortfolio(c *gin.Context) {
	items, err := h.client.PortfolioItems(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetPortfolioItem handles GET /api/portfolio/:slug
func (h *ContentHandler) GetPortfolioItem(c *gin.Context) {
	item, err := h.client.PortfolioItem(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListBlogPosts handles GET /api/blog
func (h *ContentHandler) ListBlogPosts(c *gin.Context) {
	posts, err := h.client.BlogPosts(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetBlogPost handles GET /api/blog/:slug
func (h *ContentHandler) GetBlogPost(c *gin.Context) {
	post, err := h.client.BlogPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListServices handles GET /api/services
func (h *ContentHandler) ListServices(c *gin.Context) {
	svcs, err := h.client.Services(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": svcs})
}

func (h *ContentHandler) upstreamError(c *gin.Context, err error) {
	h.log.WithError(err).Error("content store query failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": "Content is temporarily unavailable"})
}
