package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/jmurrell/mgc-calendar/internal/ics"
	"github.com/jmurrell/mgc-calendar/internal/store"
	"github.com/jmurrell/mgc-calendar/internal/transfer"
)

// CalendarMiddleware injects the shared store, codec and porter into the
// request context so handlers never touch process-level state.
func CalendarMiddleware(s *store.Store, codec *ics.Generator, porter *transfer.Porter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("store", s)
		c.Set("codec", codec)
		c.Set("porter", porter)
		c.Next()
	}
}

func GetStore(c *gin.Context) *store.Store {
	s, exists := c.Get("store")
	if !exists {
		return nil
	}
	return s.(*store.Store)
}

func GetCodec(c *gin.Context) *ics.Generator {
	codec, exists := c.Get("codec")
	if !exists {
		return nil
	}
	return codec.(*ics.Generator)
}

func GetPorter(c *gin.Context) *transfer.Porter {
	p, exists := c.Get("porter")
	if !exists {
		return nil
	}
	return p.(*transfer.Porter)
}
