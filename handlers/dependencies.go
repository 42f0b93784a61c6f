package handlers

import (
	"time"

	"github.com/shanny/iptv-directory/directory"
	"github.com/shanny/iptv-directory/logger"
)

// Dependencies holds everything the HTTP handlers need.
type Dependencies struct {
	Service   *directory.Service
	Store     *directory.Store
	Logger    logger.Logger
	StartTime time.Time
}
