package gateway

import (
	"context"
	"net/url"
	"time"

	"github.com/parkease/parking-console/internal/core/domain"
)

const adminBase = "/api/admin"

// AdminAPI implements ports.AdminAPI over the gateway.
type AdminAPI struct {
	gw *Gateway
}

func NewAdminAPI(gw *Gateway) *AdminAPI {
	return &AdminAPI{gw: gw}
}

// UsageReport fetches the dashboard aggregate for the given date range.
func (a *AdminAPI) UsageReport(ctx context.Context, from, to time.Time) (*domain.UsageReport, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))

	var report domain.UsageReport
	if err := a.gw.get(ctx, adminBase+"/reports/usage?"+q.Encode(), &report); err != nil {
		return nil, err
	}
	return &report, nil
}
