package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/coursework-service/internal/services"
	"github.com/SAP-F-2025/coursework-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ItemAnalysisHandler struct {
	BaseHandler
	service services.ItemAnalysisService
}

func NewItemAnalysisHandler(service services.ItemAnalysisService, logger utils.Logger) *ItemAnalysisHandler {
	return &ItemAnalysisHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetItemAnalysis returns the item analysis report of an assessment
// @Summary Get item analysis
// @Tags analytics
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} services.ItemAnalysisResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id}/item-analysis [get]
func (h *ItemAnalysisHandler) GetItemAnalysis(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Getting item analysis", "assessment_id", id)

	resp, err := h.service.GetReport(c.Request.Context(), id, h.getUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshItemAnalysis recomputes and stores the report
// @Summary Refresh item analysis
// @Tags analytics
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} services.ItemAnalysisResponse
// @Router /assessments/{id}/item-analysis/refresh [post]
func (h *ItemAnalysisHandler) RefreshItemAnalysis(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Refreshing item analysis", "assessment_id", id)

	resp, err := h.service.Refresh(c.Request.Context(), id, h.getUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportItemAnalysis downloads the report as an xlsx workbook
// @Summary Export item analysis
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Assessment ID"
// @Router /assessments/{id}/item-analysis/export [get]
func (h *ItemAnalysisHandler) ExportItemAnalysis(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	data, err := h.service.ExportXLSX(c.Request.Context(), id, h.getUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="item-analysis-%d.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}
