package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmurrell/mgc-calendar/internal/helpers"
	"github.com/jmurrell/mgc-calendar/internal/middleware"
	"github.com/jmurrell/mgc-calendar/internal/transfer"
)

func ImportEvents(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to read request body.")
		return
	}

	result, err := middleware.GetPorter(c).ImportBytes(raw)
	if err != nil {
		if errors.Is(err, transfer.ErrUnsupportedFormat) {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to import events: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

func ExportEvents(c *gin.Context) {
	porter := middleware.GetPorter(c)
	format := c.DefaultQuery("format", "json")

	switch format {
	case "json":
		data, err := porter.ExportJSON()
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to export events.")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="mgc-calendar-events.json"`)
		c.Data(http.StatusOK, "application/json", data)
	case "ics":
		data, err := porter.ExportICS()
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to export events.")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="mgc-calendar-events.ics"`)
		c.Data(http.StatusOK, "text/calendar", data)
	default:
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown export format: "+format)
	}
}
