package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmreg/internal/domain/models"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
	"github.com/mamadbah2/farmreg/internal/service/registry"
)

const defaultPageSize = 10

// FarmerHandler handles farmer CRUD, search, live views, and the dashboard.
type FarmerHandler struct {
	svc    *registry.Service
	cache  *registry.Cache
	logger *zap.Logger
}

// NewFarmerHandler constructs the HTTP handler adapter. cache is the shared
// live view backing the dashboard.
func NewFarmerHandler(svc *registry.Service, cache *registry.Cache, logger *zap.Logger) *FarmerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmerHandler{svc: svc, cache: cache, logger: logger}
}

// Register creates a new farmer record.
func (h *FarmerHandler) Register(c *gin.Context) {
	var farmer models.Farmer
	if err := c.ShouldBindJSON(&farmer); err != nil {
		h.logger.Warn("invalid farmer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Register(c.Request.Context(), farmer)
	if err != nil {
		respondError(c, h.logger, "farmer registration", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List returns one page of the (optionally searched and filtered) roster.
func (h *FarmerHandler) List(c *gin.Context) {
	criteria := registry.Criteria{
		Search: c.Query("search"),
		Filters: map[registry.FilterKey]string{
			registry.FilterState:         c.Query("state"),
			registry.FilterGender:        c.Query("gender"),
			registry.FilterPrimaryCrop:   c.Query("primaryCrop"),
			registry.FilterSecondaryCrop: c.Query("secondaryCrop"),
			registry.FilterFarmingSeason: c.Query("farmingSeason"),
			registry.FilterFarmOwnership: c.Query("farmOwnership"),
		},
		AgeMin: c.Query("ageMin"),
		AgeMax: c.Query("ageMax"),
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", defaultPageSize)

	result, err := h.svc.Search(c.Request.Context(), criteria, pageSize, page)
	if err != nil {
		respondError(c, h.logger, "farmer search", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one farmer record.
func (h *FarmerHandler) Get(c *gin.Context) {
	farmer, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "farmer lookup", err)
		return
	}
	c.JSON(http.StatusOK, farmer)
}

// Edit merges the submitted fields into the record.
func (h *FarmerHandler) Edit(c *gin.Context) {
	var edit models.FarmerEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		h.logger.Warn("invalid edit payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.Edit(c.Request.Context(), c.Param("id"), edit); err != nil {
		respondError(c, h.logger, "farmer update", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes the record. A record already gone is reported as success.
func (h *FarmerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "farmer delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSoil replaces the soil sub-profile.
func (h *FarmerHandler) UpdateSoil(c *gin.Context) {
	var profile models.SoilProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.UpdateSoil(c.Request.Context(), c.Param("id"), profile); err != nil {
		respondError(c, h.logger, "soil update", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSoilChemistry replaces the soil chemistry sub-profile.
func (h *FarmerHandler) UpdateSoilChemistry(c *gin.Context) {
	var chemistry models.SoilChemistry
	if err := c.ShouldBindJSON(&chemistry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.UpdateSoilChemistry(c.Request.Context(), c.Param("id"), chemistry); err != nil {
		respondError(c, h.logger, "soil chemistry update", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateWaterDetails replaces the water sub-profile.
func (h *FarmerHandler) UpdateWaterDetails(c *gin.Context) {
	var water models.WaterProfile
	if err := c.ShouldBindJSON(&water); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.UpdateWaterDetails(c.Request.Context(), c.Param("id"), water); err != nil {
		respondError(c, h.logger, "water details update", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateFarmDetails replaces the farm details sub-profile.
func (h *FarmerHandler) UpdateFarmDetails(c *gin.Context) {
	var details models.FarmDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.UpdateFarmDetails(c.Request.Context(), c.Param("id"), details); err != nil {
		respondError(c, h.logger, "farm details update", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard serves the live aggregate counts from the shared view cache.
func (h *FarmerHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, registry.Stats(h.cache.Snapshot()))
}

// Stream serves live roster snapshots over server-sent events. The
// subscription is released when the client disconnects.
func (h *FarmerHandler) Stream(c *gin.Context) {
	filter := mongodb.Filter{}
	if state := c.Query("state"); state != "" {
		filter = mongodb.Filter{Key: "state", Value: state}
	}

	sub, err := h.svc.Watch(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "live stream", err)
		return
	}
	defer sub.Close()

	c.Stream(func(w io.Writer) bool {
		snapshot, ok := <-sub.Snapshots()
		if !ok {
			if err := sub.Err(); err != nil {
				h.logger.Warn("live stream ended with error", zap.Error(err))
			}
			return false
		}
		c.SSEvent("snapshot", snapshot)
		return true
	})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
