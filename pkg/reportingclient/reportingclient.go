package reportingclient

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/asi-network/presale-engine/pkg/bufferpool"
	"github.com/asi-network/presale-engine/pkg/httpclient"
	"github.com/asi-network/presale-engine/pkg/logger"
	"github.com/cockroachdb/errors"
)

type Config struct {
	Disabled   bool   `mapstructure:"disabled"`
	BaseURL    string `mapstructure:"base_url"`
	Name       string `mapstructure:"name"`
	WebsiteURL string `mapstructure:"website_url"`
	SaleAPIURL string `mapstructure:"sale_api_url"`
}

type ReportingClient struct {
	httpClient *httpclient.Client
	config     Config
}

const defaultBaseURL = "https://reporting.api.asi.network"

func New(config Config) (*ReportingClient, error) {
	baseURL := utils.Default(config.BaseURL, defaultBaseURL)
	httpClient, err := httpclient.New(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	if config.Name == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "reporting.name config is required if reporting is enabled")
	}
	return &ReportingClient{
		httpClient: httpClient,
		config:     config,
	}, nil
}

type SubmitSaleReportPayload struct {
	Type            string         `json:"type"`
	ClientVersion   string         `json:"clientVersion"`
	Network         common.Network `json:"network"`
	TotalTokensSold uint64         `json:"totalTokensSold"`
	// TotalRevenue is denominated in the payment token's smallest units.
	TotalRevenue string `json:"totalRevenue"`
	EventCount   int    `json:"eventCount"`
}

func (r *ReportingClient) SubmitSaleReport(ctx context.Context, payload SubmitSaleReportPayload) error {
	buf := bufferpool.Get()
	defer buf.Release()
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	buf.TrimNewline()
	resp, err := r.httpClient.Post(ctx, "/v1/report/sale", httpclient.RequestOptions{
		Body: buf.Bytes(),
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= 400 {
		logger.WarnContext(ctx, "failed to submit sale report", slog.Any("payload", payload), slog.Any("responseBody", resp.Body()))
	}
	logger.DebugContext(ctx, "sale report submitted", slog.Any("payload", payload))
	return nil
}

type SubmitNodeReportPayload struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Network    common.Network `json:"network"`
	WebsiteURL string         `json:"websiteURL,omitempty"`
	SaleAPIURL string         `json:"saleAPIURL,omitempty"`
}

func (r *ReportingClient) SubmitNodeReport(ctx context.Context, module string, network common.Network) error {
	payload := SubmitNodeReportPayload{
		Name:       r.config.Name,
		Type:       module,
		Network:    network,
		WebsiteURL: r.config.WebsiteURL,
		SaleAPIURL: r.config.SaleAPIURL,
	}
	buf := bufferpool.Get()
	defer buf.Release()
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	buf.TrimNewline()
	resp, err := r.httpClient.Post(ctx, "/v1/report/node", httpclient.RequestOptions{
		Body: buf.Bytes(),
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= 400 {
		logger.WarnContext(ctx, "failed to submit node report", slog.Any("payload", payload), slog.Any("responseBody", resp.Body()))
	}
	logger.InfoContext(ctx, "node report submitted", slog.Any("payload", payload))
	return nil
}
