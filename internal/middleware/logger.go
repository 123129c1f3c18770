package middleware

import (
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/sirupsen/logrus"
)

// Logger logs every request with method, path and latency.
func Logger() drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logrus.WithFields(logrus.Fields{
			"method":  method,
			"path":    path,
			"latency": time.Since(start),
		}).Info("request")
	}
}
