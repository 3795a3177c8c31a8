package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jmurrell/mgc-calendar/internal/helpers"
	"github.com/jmurrell/mgc-calendar/internal/ics"
	"github.com/jmurrell/mgc-calendar/internal/middleware"
	"github.com/jmurrell/mgc-calendar/internal/models"
	"github.com/jmurrell/mgc-calendar/internal/store"
)

func CreateEvent(c *gin.Context) {
	var input models.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input.")
		return
	}

	eventStore := middleware.GetStore(c)
	if eventStore == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Event store not found.")
		return
	}

	event, err := eventStore.Create(input)
	if err != nil {
		var validationErr *store.ValidationError
		if errors.As(err, &validationErr) {
			helpers.RespondWithError(c, http.StatusBadRequest, validationErr.Error())
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	// The store mutation is committed; a failed document write is reported
	// but never undoes it.
	if _, err := middleware.GetCodec(c).Generate(event, ics.StatusConfirmed); err != nil {
		log.Printf("ics generation failed for event %d: %v", event.ID, err)
	}

	c.JSON(http.StatusCreated, event)
}

func GetEvent(c *gin.Context) {
	id, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := middleware.GetStore(c).Get(id)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}
	if event == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	events, err := middleware.GetStore(c).List()
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, events)
}

func UpdateEvent(c *gin.Context) {
	id, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var input models.UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input.")
		return
	}

	event, err := middleware.GetStore(c).Update(id, input)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}
	if event == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	if _, err := middleware.GetCodec(c).Generate(event, ics.StatusConfirmed); err != nil {
		log.Printf("ics generation failed for event %d: %v", event.ID, err)
	}

	c.JSON(http.StatusOK, event)
}

func DeleteEvent(c *gin.Context) {
	id, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := middleware.GetStore(c).Delete(id)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}
	if event == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	// The row is gone; the document stays behind as a cancellation record so
	// downstream calendars can drop the event by uid.
	if _, err := middleware.GetCodec(c).Generate(event, ics.StatusCancelled); err != nil {
		log.Printf("cancellation ics failed for event %d: %v", event.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func PublishEvent(c *gin.Context) {
	id, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := middleware.GetStore(c).MarkPublished(id)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to publish event.")
		return
	}
	if event == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	if _, err := middleware.GetCodec(c).Generate(event, ics.StatusConfirmed); err != nil {
		log.Printf("ics generation failed for event %d: %v", event.ID, err)
	}

	c.JSON(http.StatusOK, event)
}

func DownloadEventICS(c *gin.Context) {
	id, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := middleware.GetStore(c).Get(id)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}
	if event == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	data, err := os.ReadFile(middleware.GetCodec(c).PathFor(event.UID))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "ICS file not found.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="event-%d.ics"`, id))
	c.Data(http.StatusOK, "text/calendar", data)
}

func DownloadAllICS(c *gin.Context) {
	events, err := middleware.GetStore(c).List()
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}
	if len(events) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No events found.")
		return
	}

	combined, err := middleware.GetCodec(c).Combined(events)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error combining ICS files.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="mgc-calendar-all-events.ics"`)
	c.Data(http.StatusOK, "text/calendar", []byte(combined))
}
