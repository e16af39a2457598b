package presale

import (
	"context"
	"strings"
	"time"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/asi-network/presale-engine/core/worker"
	"github.com/asi-network/presale-engine/internal/config"
	"github.com/asi-network/presale-engine/internal/postgres"
	presalehttphandler "github.com/asi-network/presale-engine/modules/presale/api/httphandler"
	presaleconfig "github.com/asi-network/presale-engine/modules/presale/config"
	presaledatagateway "github.com/asi-network/presale-engine/modules/presale/datagateway"
	"github.com/asi-network/presale-engine/modules/presale/engine"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/asi-network/presale-engine/modules/presale/ledger"
	"github.com/asi-network/presale-engine/modules/presale/oracle"
	presalememory "github.com/asi-network/presale-engine/modules/presale/repository/memory"
	presalepostgres "github.com/asi-network/presale-engine/modules/presale/repository/postgres"
	"github.com/asi-network/presale-engine/modules/presale/usecase"
	"github.com/asi-network/presale-engine/pkg/logger"
	"github.com/asi-network/presale-engine/pkg/reportingclient"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

const defaultNativeDecimals = 18

func New(injector do.Injector) (worker.Worker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	reportingClient := do.MustInvoke[*reportingclient.ReportingClient](injector)
	moduleConf := conf.Modules.Presale

	var presaleDg presaledatagateway.PresaleDataGateway
	var cleanupFuncs []func(context.Context) error
	switch strings.ToLower(moduleConf.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, moduleConf.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for presale module")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		presaleDg = presalepostgres.NewRepository(pg)
	case "memory", "":
		presaleDg = presalememory.NewRepository()
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for presale module is not supported", moduleConf.Database)
	}

	owner := common.NewAddress(moduleConf.Owner)
	account := common.NewAddress(moduleConf.Account)

	saleToken, err := ledger.NewCapped(
		moduleConf.SaleToken.Name,
		moduleConf.SaleToken.Symbol,
		moduleConf.SaleToken.Decimals,
		moduleConf.SaleToken.InitialSupply,
		moduleConf.SaleToken.Cap,
		account,
	)
	if err != nil {
		return nil, errors.Wrap(err, "can't create sale token ledger")
	}
	paymentToken, err := ledger.NewCapped(
		moduleConf.PaymentToken.Name,
		moduleConf.PaymentToken.Symbol,
		moduleConf.PaymentToken.Decimals,
		moduleConf.PaymentToken.InitialSupply,
		moduleConf.PaymentToken.Cap,
		owner,
	)
	if err != nil {
		return nil, errors.Wrap(err, "can't create payment token ledger")
	}
	nativeDecimals := moduleConf.NativeDecimals
	if nativeDecimals == 0 {
		nativeDecimals = defaultNativeDecimals
	}
	nativeToken, err := ledger.NewCapped("Native", "NATIVE", nativeDecimals, 0, 0, owner)
	if err != nil {
		return nil, errors.Wrap(err, "can't create native currency ledger")
	}

	priceFeed, err := newPriceFeed(moduleConf.Oracle)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	stages, err := parseStages(moduleConf.Stages)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	stream := newEventStream()
	saleEngine, err := engine.New(engine.Config{
		Owner:        owner,
		Account:      account,
		SaleToken:    saleToken,
		PaymentToken: paymentToken,
		NativeToken:  nativeToken,
		PriceFeed:    priceFeed,
		SaleStart:    time.Unix(moduleConf.SaleStart, 0),
		SaleEnd:      time.Unix(moduleConf.SaleEnd, 0),
		Stages:       stages,
		Events:       stream,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't create sale engine")
	}

	presaleUsecase := usecase.New(saleEngine, presaleDg)

	// Mount API
	apiHandlers := lo.Uniq(moduleConf.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			presaleHTTPHandler := presalehttphandler.New(presaleUsecase, paymentToken.Decimals(), nativeToken.Decimals())
			if err := presaleHTTPHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount presale API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	if reportingClient != nil {
		if err := reportingClient.SubmitNodeReport(ctx, "presale", conf.Network); err != nil {
			return nil, errors.Wrap(err, "can't submit node report")
		}
	}

	processor := &eventProcessor{
		engine:          saleEngine,
		presaleDg:       presaleDg,
		reportingClient: reportingClient,
		network:         conf.Network,
		cleanupFuncs:    cleanupFuncs,
	}
	return worker.New[*entity.SaleEvent](processor, stream), nil
}

func newPriceFeed(conf presaleconfig.Oracle) (oracle.PriceFeed, error) {
	switch strings.ToLower(conf.Source) {
	case "http":
		feed, err := oracle.NewHTTPFeed(conf.HTTP)
		if err != nil {
			return nil, errors.Wrap(err, "can't create http price feed")
		}
		return feed, nil
	case "static", "":
		if conf.StaticAnswer == 0 {
			return nil, errors.Wrap(errs.InvalidArgument, "oracle static_answer is required for static price feed")
		}
		decimals := conf.Decimals
		if decimals == 0 {
			decimals = 8
		}
		return oracle.NewStaticFeed(uint256.NewInt(conf.StaticAnswer), decimals), nil
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q oracle source is not supported", conf.Source)
	}
}

func parseStages(confStages []presaleconfig.Stage) ([]engine.Stage, error) {
	if len(confStages) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "at least one pricing stage is required")
	}
	stages := make([]engine.Stage, 0, len(confStages))
	for i, stage := range confStages {
		price, err := uint256.FromDecimal(stage.Price)
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "stage %d price %q is not a decimal integer", i, stage.Price)
		}
		stages = append(stages, engine.Stage{
			Threshold: stage.Threshold,
			Price:     price,
		})
	}
	return stages, nil
}
