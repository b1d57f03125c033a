package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/store"
)

// Delay holds each response for the store's configured artificial delay,
// read after the handler so the sleep happens outside the store lock.
// Useful when exercising clients against realistic latency.
func Delay(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		s.Lock()
		d := s.DelayGet()
		s.Unlock()

		if d > 0 {
			time.Sleep(d)
		}
	}
}
