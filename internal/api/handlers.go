package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/exynos7904/powerd/internal/cpuinfo"
	"github.com/exynos7904/powerd/internal/power"
	"github.com/exynos7904/powerd/internal/protocol"
	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 4 << 10

// forward passes the JSON body to the dispatcher as a request of typ.
func (s *Server) forward(typ string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, protocol.ErrorPayload{Error: err.Error()})
			return
		}
		s.reply(c, protocol.Request{Type: typ, Payload: body})
	}
}

func (s *Server) getFeature(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 0, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, protocol.ErrorPayload{Error: "feature id must be an integer"})
		return
	}
	feature := power.VendorFeature(id)
	payload, _ := json.Marshal(protocol.GetFeaturePayload{Feature: &feature})
	s.reply(c, protocol.Request{Type: protocol.TypeGetFeature, Payload: payload})
}

func (s *Server) getStats(c *gin.Context) {
	s.reply(c, protocol.Request{Type: protocol.TypeLowPowerStats})
}

type statusResponse struct {
	Policy     power.State       `json:"policy"`
	CPUMaxFreq string            `json:"cpu_max_freq,omitempty"`
	CPU        *cpuinfo.Snapshot `json:"cpu,omitempty"`
}

func (s *Server) getStatus(c *gin.Context) {
	policy := s.d.Policy()
	resp := statusResponse{Policy: policy.State()}

	if v, err := s.nodes.Read(policy.Platform().CPUMaxFreqNode); err == nil {
		resp.CPUMaxFreq = v
	}
	if snap, err := cpuinfo.Collect(); err == nil {
		resp.CPU = snap
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) reply(c *gin.Context, req protocol.Request) {
	resp := s.d.Handle(req)
	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp.Payload)
		return
	}
	c.JSON(http.StatusOK, resp.Payload)
}
