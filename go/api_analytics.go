package pharmatrackserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	analyticshttpmapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/analytics/adapters/http/mapper"
	analyticsports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/analytics/ports"
)

type AnalyticsAPI struct {
	service analyticsports.Service
}

func NewAnalyticsAPI(service analyticsports.Service) AnalyticsAPI {
	return AnalyticsAPI{service: service}
}

// Get /v1/admin/analytics
func (api *AnalyticsAPI) Report(c *gin.Context) {
	report, err := api.service.Report(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyticshttpmapper.FromReport(report))
}

// HealthAPI answers liveness probes.
type HealthAPI struct{}

// Get /healthz
func (api *HealthAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
