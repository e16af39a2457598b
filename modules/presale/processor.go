package presale

import (
	"context"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/datagateway"
	"github.com/asi-network/presale-engine/modules/presale/engine"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/asi-network/presale-engine/pkg/logger"
	"github.com/asi-network/presale-engine/pkg/logger/slogx"
	"github.com/asi-network/presale-engine/pkg/reportingclient"
	"github.com/cockroachdb/errors"
)

// eventProcessor persists committed sale events and reports sale progress
// upstream. Reporting failures are logged, never fatal.
type eventProcessor struct {
	engine          *engine.Engine
	presaleDg       datagateway.PresaleDataGateway
	reportingClient *reportingclient.ReportingClient
	network         common.Network
	cleanupFuncs    []func(context.Context) error
}

func (p *eventProcessor) Name() string {
	return "presale"
}

func (p *eventProcessor) Process(ctx context.Context, events []*entity.SaleEvent) error {
	if err := p.presaleDg.CreateEvents(ctx, events); err != nil {
		return errors.Wrap(err, "failed to persist sale events")
	}

	if p.reportingClient != nil {
		payload := reportingclient.SubmitSaleReportPayload{
			Type:            "presale",
			ClientVersion:   Version,
			Network:         p.network,
			TotalTokensSold: p.engine.TotalTokensSold(),
			TotalRevenue:    p.engine.GetTotalRevenueAtCurrentSold().Dec(),
			EventCount:      len(events),
		}
		if err := p.reportingClient.SubmitSaleReport(ctx, payload); err != nil {
			logger.WarnContext(ctx, "Failed to submit sale report", slogx.Error(err))
		}
	}
	return nil
}

func (p *eventProcessor) Shutdown(ctx context.Context) error {
	for _, cleanup := range p.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			return errors.Wrap(err, "cleanup failed")
		}
	}
	return nil
}
