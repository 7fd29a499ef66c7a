package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmreg/internal/service/reporting"
)

// ReportHandler serves certificate and roster export downloads.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Certificate streams the registered-farmer certificate PDF.
func (h *ReportHandler) Certificate(c *gin.Context) {
	id := c.Param("id")
	pdf, err := h.svc.Certificate(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "certificate generation", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=farmer_%s_certificate.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// QRCode streams the farmer-code QR image.
func (h *ReportHandler) QRCode(c *gin.Context) {
	png, err := h.svc.QRCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "qr code generation", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ExportXLSX streams the roster workbook.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	workbook, err := h.svc.ExportXLSX(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "roster export", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=farmers.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// ExportSheets pushes the roster to the configured shared spreadsheet.
func (h *ReportHandler) ExportSheets(c *gin.Context) {
	if err := h.svc.ExportToSheets(c.Request.Context()); err != nil {
		respondError(c, h.logger, "sheets export", err)
		return
	}
	c.Status(http.StatusAccepted)
}
