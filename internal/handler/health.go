package handler

import (
	"tipjar/internal/handler/response"
	"tipjar/internal/service/session"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary Check system health
// @Description Report liveness together with the bound contract and network
// @Tags system
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func Health(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := store.Service()
		network := svc.Network()
		response.Success(c, gin.H{
			"status":   "UP",
			"service":  "tipjar-server",
			"contract": svc.ContractAddress().Hex(),
			"network":  network.String(),
			"chain_id": network.ChainID.String(),
			"sessions": store.Count(),
		})
	}
}
