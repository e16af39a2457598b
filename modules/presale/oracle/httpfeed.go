package oracle

import (
	"context"
	"sync"
	"time"

	"github.com/asi-network/presale-engine/common/errs"
	"github.com/asi-network/presale-engine/pkg/decimals"
	"github.com/asi-network/presale-engine/pkg/httpclient"
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const defaultCacheTTL = 15 * time.Second

// HTTPFeed reads the latest round from an external price API. Responses are
// cached for a short TTL so repeated quotes inside one sale operation do not
// hammer the upstream.
type HTTPFeed struct {
	client    *httpclient.Client
	path      string
	precision uint8
	cacheTTL  time.Duration

	mu        sync.Mutex
	lastRound RoundData
	fetchedAt time.Time
}

var _ PriceFeed = (*HTTPFeed)(nil)

type HTTPFeedConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Path     string        `mapstructure:"path"`
	Decimals uint8         `mapstructure:"decimals"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func NewHTTPFeed(config HTTPFeedConfig) (*HTTPFeed, error) {
	if config.BaseURL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "oracle base_url is required")
	}
	client, err := httpclient.New(config.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	precision := config.Decimals
	if precision == 0 {
		precision = 8
	}
	return &HTTPFeed{
		client:    client,
		path:      config.Path,
		precision: precision,
		cacheTTL:  cacheTTL,
	}, nil
}

func (f *HTTPFeed) Decimals() uint8 {
	return f.precision
}

type latestRoundResponse struct {
	RoundId   uint64          `json:"roundId"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt int64           `json:"updatedAt"`
}

func (f *HTTPFeed) LatestRoundData(ctx context.Context) (RoundData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.fetchedAt.IsZero() && time.Since(f.fetchedAt) < f.cacheTTL {
		return f.cloneLastRound(), nil
	}

	resp, err := f.client.Get(ctx, f.path, httpclient.RequestOptions{})
	if err != nil {
		return RoundData{}, errors.Wrap(err, "can't fetch latest round")
	}
	if resp.StatusCode() >= 400 {
		return RoundData{}, errors.Errorf("price api returned status %d", resp.StatusCode())
	}
	var body latestRoundResponse
	if err := resp.UnmarshalBody(&body); err != nil {
		return RoundData{}, errors.Wrap(err, "can't unmarshal latest round")
	}
	if !body.Price.IsPositive() {
		return RoundData{}, errors.Wrapf(errs.InvalidArgument, "price api returned non-positive price %s", body.Price)
	}

	answer := decimals.ToUint256(body.Price, uint16(f.precision))
	f.lastRound = RoundData{
		RoundId:   body.RoundId,
		Answer:    answer,
		UpdatedAt: time.Unix(body.UpdatedAt, 0),
	}
	f.fetchedAt = time.Now()
	return f.cloneLastRound(), nil
}

func (f *HTTPFeed) cloneLastRound() RoundData {
	round := f.lastRound
	round.Answer = new(uint256.Int).Set(f.lastRound.Answer)
	return round
}
