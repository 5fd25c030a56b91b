package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/record"
	"github.com/tteslee/fundamental/internal/service"
)

const dateParamLayout = "2006-01-02"

func currentUser(c *gin.Context) *internal.User {
	return c.MustGet("user").(*internal.User)
}

// dateParam reads the optional ?date=YYYY-MM-DD query, defaulting to today.
func dateParam(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(dateParamLayout, raw, time.Local)
}

func PostRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.RecordRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateRecordRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := service.CreateRecord(c.Request.Context(), app.RecordRepo(), user, &body)
		if err != nil {
			var verr *record.ValidationError
			if errors.As(err, &verr) {
				HandleError(c, app.Logger(), err, 400, "Validation failed")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to save record")
			return
		}

		HandleSuccess(c, app.Logger(), rec, nil)
	}
}

func GetRecords(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		records, err := app.RecordRepo().ListRecords(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records")
			return
		}

		HandleSuccess(c, app.Logger(), records, nil)
	}
}

func GetDailyView(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date parameter")
			return
		}

		records, err := app.RecordRepo().ListRecordsByRange(c.Request.Context(), user.ID, record.DayStart(date), record.DayEnd(date))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records")
			return
		}

		view := record.BuildDailyView(records, date, app.Logger())
		HandleSuccess(c, app.Logger(), view, nil)
	}
}

func GetWeeklyView(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date parameter")
			return
		}

		records, err := app.RecordRepo().ListRecordsByRange(c.Request.Context(), user.ID, record.WeekStart(date), record.DayEnd(record.WeekEnd(date)))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records")
			return
		}

		view := record.BuildWeeklyView(records, date, app.Logger())
		HandleSuccess(c, app.Logger(), view, nil)
	}
}

func PutRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		id := c.Param("id")

		var body service.RecordRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateRecordRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, matched, err := service.UpdateRecord(c.Request.Context(), app.RecordRepo(), user, id, &body)
		if err != nil {
			var verr *record.ValidationError
			if errors.As(err, &verr) {
				HandleError(c, app.Logger(), err, 400, "Validation failed")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to update record")
			return
		}
		if !matched {
			HandleError(c, app.Logger(), errors.New("no matching record"), 404, "Record not found")
			return
		}

		HandleSuccess(c, app.Logger(), rec, nil)
	}
}

func DeleteRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		id := c.Param("id")

		matched, err := service.DeleteRecord(c.Request.Context(), app.RecordRepo(), user, id)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete record")
			return
		}
		if !matched {
			HandleError(c, app.Logger(), errors.New("no matching record"), 404, "Record not found")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"deleted": id}, nil)
	}
}
