package zones

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jezhtech/fc-fleet-sub002/pkg/common"
	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
	"github.com/jezhtech/fc-fleet-sub002/pkg/validation"
)

// Handler handles HTTP requests for zones.
type Handler struct {
	service *Service
}

// NewHandler creates a new zone handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the zone endpoints on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/zones", h.ListZones)
	rg.GET("/zones/resolve", h.ResolveZone)
	rg.GET("/zones/:id", h.GetZone)
}

// ListZones returns all zones.
func (h *Handler) ListZones(c *gin.Context) {
	list, err := h.service.ListZones(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list zones")
		return
	}

	responses := make([]*ZoneResponse, 0, len(list))
	for _, z := range list {
		responses = append(responses, ToZoneResponse(z))
	}
	common.ListResponse(c, responses, len(responses))
}

// GetZone returns a single zone by id.
func (h *Handler) GetZone(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "zone ID")
	if !ok {
		return
	}

	zone, err := h.service.GetZone(c.Request.Context(), id)
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, "zone not found")
		return
	}
	common.SuccessResponse(c, ToZoneResponse(zone))
}

// ResolveZone classifies a lat/lng query point into its enclosing zone.
// An unmatched point is a successful response with matched=false, not an
// error.
func (h *Handler) ResolveZone(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}
	if err := validation.ValidateCoordinates(lat, lng); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	zone, err := h.service.ResolveZone(c.Request.Context(), geo.Point{Lng: lng, Lat: lat})
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve zone")
		return
	}

	common.SuccessResponse(c, &ResolveResponse{
		Matched: zone != nil,
		Zone:    ToZoneResponse(zone),
	})
}
