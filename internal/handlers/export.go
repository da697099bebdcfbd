package handlers

import (
	"io"
	"net/http"

	"github.com/gitaura/gitaura/internal/services"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export returns a full JSON snapshot of the profile and history
func (h *ExportHandler) Export(c *gin.Context) {
	data, err := h.exportService.ExportData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to export data: " + err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="gitaura-export.json"`)
	c.Data(http.StatusOK, "application/json", []byte(data))
}

// ExportExcel returns the analysis history as a spreadsheet
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	data, err := h.exportService.ExportExcel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to export spreadsheet: " + err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="gitaura-analyses.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Import overwrites the profile and/or history from a snapshot document
func (h *ExportHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Failed to read request body: " + err.Error(),
		})
		return
	}

	ok, err := h.exportService.ImportData(body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Import failed: " + err.Error(),
		})
		return
	}

	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid import payload",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data imported",
	})
}
