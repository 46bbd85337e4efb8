package handler

import (
	"net/http"

	"mastery-service/internal/domain"
	"mastery-service/internal/service"

	"github.com/gin-gonic/gin"
)

// Register mounts the REST routes on the engine.
func Register(r *gin.Engine, svc service.MasteryAggregator) {
	r.GET("/live", Liveness)
	NewMasteryHandler(svc).Register(r)
}

func Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type MasteryHandler struct {
	svc service.MasteryAggregator
}

func NewMasteryHandler(svc service.MasteryAggregator) *MasteryHandler {
	return &MasteryHandler{svc: svc}
}

func (h *MasteryHandler) Register(r gin.IRouter) {
	r.GET("/region/:region/summoner/:name/champion-masteries", h.listMasteries)

	compare := r.Group("/compare")
	{
		compare.POST("/champion", h.compareChampion)
		compare.POST("/champion-class", h.compareChampionClass)
	}
}

func (h *MasteryHandler) listMasteries(c *gin.Context) {
	region, err := domain.ParseRegion(c.Param("region"))
	if err != nil {
		WriteError(c, err)
		return
	}

	masteries, err := h.svc.ListMasteries(c.Request.Context(), region, c.Param("name"))
	if err != nil {
		WriteError(c, err)
		return
	}
	WriteData(c, http.StatusOK, masteries)
}

func (h *MasteryHandler) compareChampion(c *gin.Context) {
	var req service.ChampionCompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMalformedBody(c, err)
		return
	}

	resp, err := h.svc.CompareChampion(c.Request.Context(), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	WriteData(c, http.StatusOK, resp)
}

func (h *MasteryHandler) compareChampionClass(c *gin.Context) {
	var req service.ChampionClassCompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMalformedBody(c, err)
		return
	}

	resp, err := h.svc.CompareChampionClass(c.Request.Context(), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	WriteData(c, http.StatusOK, resp)
}

func writeMalformedBody(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorPayload{
		Error:   "invalid_input",
		Message: "malformed request body: " + err.Error(),
	})
}
