package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nkust-web/campus/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewsRepository is the data-access contract shared by the page and API handlers.
type NewsRepository interface {
	// FetchLatest returns at most limit items, newest PublishedAt first.
	// A non-positive limit yields an empty slice without touching the store.
	FetchLatest(ctx context.Context, limit int) ([]models.News, error)
	FindByID(ctx context.Context, id uint) (*models.News, error)
	Create(ctx context.Context, news *models.News) error
	Ping(ctx context.Context) error
}

type GormNewsRepository struct {
	db           *gorm.DB
	log          *logrus.Logger
	queryTimeout time.Duration
}

func NewGormNewsRepository(db *gorm.DB, log *logrus.Logger, queryTimeout time.Duration) *GormNewsRepository {
	return &GormNewsRepository{
		db:           db,
		log:          log,
		queryTimeout: queryTimeout,
	}
}

func (r *GormNewsRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *GormNewsRepository) FetchLatest(ctx context.Context, limit int) ([]models.News, error) {
	const op = "repository.FetchLatest"
	news := []models.News{}
	if limit <= 0 {
		return news, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).
		Order("published_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&news).Error
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"op":    op,
			"limit": limit,
		}).Error("news query failed")
		return nil, &DataAccessError{Op: op, Err: err}
	}

	r.log.WithFields(logrus.Fields{
		"op":    op,
		"limit": limit,
		"count": len(news),
	}).Debug("fetched latest news")
	return news, nil
}

func (r *GormNewsRepository) FindByID(ctx context.Context, id uint) (*models.News, error) {
	const op = "repository.FindByID"
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var news models.News
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&news).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		r.log.WithError(err).WithFields(logrus.Fields{"op": op, "id": id}).Error("news lookup failed")
		return nil, &DataAccessError{Op: op, Err: err}
	}
	return &news, nil
}

func (r *GormNewsRepository) Create(ctx context.Context, news *models.News) error {
	const op = "repository.Create"
	news.Title = strings.TrimSpace(news.Title)
	news.Content = strings.TrimSpace(news.Content)
	if news.Title == "" || news.Content == "" {
		return ErrInvalidNews
	}
	if news.PublishedAt.IsZero() {
		news.PublishedAt = time.Now()
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(news).Error; err != nil {
		r.log.WithError(err).WithField("op", op).Error("news insert failed")
		return &DataAccessError{Op: op, Err: err}
	}
	return nil
}

func (r *GormNewsRepository) Ping(ctx context.Context) error {
	const op = "repository.Ping"
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sqlDB, err := r.db.DB()
	if err != nil {
		return &DataAccessError{Op: op, Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &DataAccessError{Op: op, Err: err}
	}
	return nil
}
