package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nkust-web/campus/metrics"
	"github.com/nkust-web/campus/models"
	"github.com/nkust-web/campus/repository"
	"github.com/sirupsen/logrus"
)

const (
	// APINewsLimit is how many items GET /api/news returns.
	APINewsLimit = 10
	// HomeNewsLimit is how many items the landing page shows.
	HomeNewsLimit = 3
	// ListNewsLimit caps the /news archive page.
	ListNewsLimit = 30

	latestNewsErrorMessage = "無法取得最新消息"
)

type NewsController struct {
	repo repository.NewsRepository
	log  *logrus.Logger
}

func NewNewsController(repo repository.NewsRepository, log *logrus.Logger) *NewsController {
	return &NewsController{repo: repo, log: log}
}

func (nc *NewsController) requestLog(c *gin.Context) *logrus.Entry {
	return nc.log.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.Request.URL.Path,
	})
}

// GetLatestNews serves the ten most recent items. Store failures become a
// generic 500; the cause is only logged.
func (nc *NewsController) GetLatestNews(c *gin.Context) {
	news, err := nc.repo.FetchLatest(c.Request.Context(), APINewsLimit)
	if err != nil {
		metrics.NewsFetchFailures.WithLabelValues("api").Inc()
		nc.requestLog(c).WithError(err).Error("failed to fetch latest news")
		c.JSON(http.StatusInternalServerError, gin.H{"error": latestNewsErrorMessage})
		return
	}
	c.JSON(http.StatusOK, news)
}

func (nc *NewsController) GetNewsByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
		return
	}

	news, err := nc.repo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			nc.requestLog(c).WithError(err).Error("failed to fetch news")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "無法取得消息"})
		}
		return
	}
	c.JSON(http.StatusOK, news)
}

// CreateNews is the CMS ingest endpoint.
func (nc *NewsController) CreateNews(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		Content     string `json:"content" binding:"required"`
		PublishedAt string `json:"publishedAt"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	news := models.News{Title: input.Title, Content: input.Content}
	if input.PublishedAt != "" {
		publishedAt, err := parseTimeString(input.PublishedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "publishedAt is not a valid timestamp"})
			return
		}
		news.PublishedAt = publishedAt
	}

	if err := nc.repo.Create(c.Request.Context(), &news); err != nil {
		if errors.Is(err, repository.ErrInvalidNews) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		nc.requestLog(c).WithError(err).Error("failed to create news")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法新增消息"})
		return
	}

	nc.requestLog(c).WithFields(logrus.Fields{
		"id":     news.ID,
		"author": c.GetString("username"),
	}).Info("news created")
	c.JSON(http.StatusCreated, news)
}
