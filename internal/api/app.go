package api

import (
	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/review"
	"github.com/tteslee/fundamental/internal/storage"
)

type App interface {
	Logger() internal.Logger
	RecordRepo() storage.RecordRepository
	UserRepo() storage.UserRepository
	ReviewGenerator() review.Generator
}
