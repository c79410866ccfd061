package repository

import (
	"golang-stock-dashboard/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewNop()
}
