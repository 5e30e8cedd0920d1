package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nkust-web/campus/metrics"
	"github.com/nkust-web/campus/models"
	"github.com/nkust-web/campus/repository"
	"github.com/sirupsen/logrus"
)

type stat struct {
	Value string
	Label string
}

var campusStats = []stat{
	{Value: "15,000+", Label: "在校學生"},
	{Value: "8", Label: "學院系所"},
	{Value: "500+", Label: "專業師資"},
	{Value: "95%", Label: "就業率"},
}

type PageController struct {
	repo     repository.NewsRepository
	log      *logrus.Logger
	siteName string
}

func NewPageController(repo repository.NewsRepository, log *logrus.Logger, siteName string) *PageController {
	return &PageController{repo: repo, log: log, siteName: siteName}
}

// latestNews never fails: a store error is logged and replaced by an empty list.
func (pc *PageController) latestNews(c *gin.Context, limit int) []models.News {
	news, err := pc.repo.FetchLatest(c.Request.Context(), limit)
	if err != nil {
		metrics.NewsFetchFailures.WithLabelValues("page").Inc()
		pc.log.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		}).Error("failed to fetch latest news for page")
		return []models.News{}
	}
	return news
}

// Home renders the landing page with the three most recent news items.
func (pc *PageController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Title": pc.siteName,
		"Year":  time.Now().Year(),
		"Stats": campusStats,
		"News":  pc.latestNews(c, HomeNewsLimit),
	})
}

// NewsList renders the archive page linked from the landing page.
func (pc *PageController) NewsList(c *gin.Context) {
	c.HTML(http.StatusOK, "news_list.tmpl", gin.H{
		"Title": "所有消息 | " + pc.siteName,
		"Year":  time.Now().Year(),
		"News":  pc.latestNews(c, ListNewsLimit),
	})
}

func (pc *PageController) NewsDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		pc.errorPage(c, http.StatusNotFound, "找不到這則消息", "消息編號不正確。")
		return
	}

	item, err := pc.repo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			pc.errorPage(c, http.StatusNotFound, "找不到這則消息", "這則消息可能已被移除。")
			return
		}
		pc.log.WithError(err).WithField("id", id).Error("failed to fetch news for detail page")
		pc.errorPage(c, http.StatusInternalServerError, "暫時無法顯示消息", "請稍後再試。")
		return
	}

	c.HTML(http.StatusOK, "news.tmpl", gin.H{
		"Title": item.Title + " | " + pc.siteName,
		"Year":  time.Now().Year(),
		"Item":  item,
	})
}

func (pc *PageController) NotFound(c *gin.Context) {
	pc.errorPage(c, http.StatusNotFound, "找不到頁面", "您要找的頁面不存在。")
}

func (pc *PageController) errorPage(c *gin.Context, status int, heading, message string) {
	c.HTML(status, "error.tmpl", gin.H{
		"Title":   heading + " | " + pc.siteName,
		"Year":    time.Now().Year(),
		"Heading": heading,
		"Message": message,
	})
}
