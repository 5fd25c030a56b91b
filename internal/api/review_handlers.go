package api

import (
	"github.com/gin-gonic/gin"
	"github.com/tteslee/fundamental/internal/service"
)

func PostReview(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.ReviewRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateReviewRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		// Generation failures are masked by the deterministic fallback, so
		// this path never returns an upstream error to the caller.
		result := service.GenerateReview(c.Request.Context(), app.ReviewGenerator(), app.Logger(), &body)
		HandleSuccess(c, app.Logger(), result, nil)
	}
}

func PostExport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.ExportRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateExportRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		result, err := service.Export(&body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Export failed")
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
		c.Data(200, result.ContentType, result.Body)
	}
}
