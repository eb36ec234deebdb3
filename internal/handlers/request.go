package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery returns nil for an absent parameter.
func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return nil, false
	}
	return &id, true
}

func dateValue(c *gin.Context, raw string) (models.Date, bool) {
	d, err := models.ParseDate(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return models.Date{}, false
	}
	return d, true
}

func timeQuery(c *gin.Context, name string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, c.Query(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return time.Time{}, false
	}
	return t, true
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return 0, false
	}
	return n, true
}

func pagination(c *gin.Context) (limit, offset int, ok bool) {
	if limit, ok = intQuery(c, "limit", 0); !ok {
		return 0, 0, false
	}
	if offset, ok = intQuery(c, "offset", 0); !ok {
		return 0, 0, false
	}
	return limit, offset, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return false
	}
	return true
}
