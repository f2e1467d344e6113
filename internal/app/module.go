package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/motorvault/internal/app/api/server"
	"github.com/fatflowers/motorvault/internal/app/service/assistant"
	"github.com/fatflowers/motorvault/internal/app/service/auditlog"
	"github.com/fatflowers/motorvault/internal/app/service/subscription"
	"github.com/fatflowers/motorvault/internal/platform/db"
	"github.com/fatflowers/motorvault/internal/platform/storage"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/config"
	"github.com/fatflowers/motorvault/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	storage.Module,
	auditlog.Module,
	store.Module,
	subscription.Module,
	assistant.Module,
	server.Module,
)
