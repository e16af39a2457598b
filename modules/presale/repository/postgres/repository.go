package postgres

import (
	"context"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/internal/postgres"
	"github.com/asi-network/presale-engine/modules/presale/datagateway"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
)

// Repository persists the presale audit trail on Postgres. Amount columns
// are stored as decimal strings to carry full uint256 precision.
type Repository struct {
	db postgres.DB
}

var _ datagateway.PresaleDataGateway = (*Repository)(nil)

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreatePurchase(ctx context.Context, purchase *entity.Purchase) error {
	model := mapPurchaseTypeToModel(purchase)
	_, err := r.db.Exec(ctx, `
		INSERT INTO presale_purchases (buyer, payment_kind, token_amount, payment_token_price, amount_charged, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		model.Buyer, model.PaymentKind, model.TokenAmount, model.PaymentTokenPrice, model.AmountCharged, model.PurchasedAt,
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateClaim(ctx context.Context, claim *entity.ClaimRecord) error {
	model := mapClaimTypeToModel(claim)
	_, err := r.db.Exec(ctx, `
		INSERT INTO presale_claims (claimer, token_amount, claimed_at)
		VALUES ($1, $2, $3)`,
		model.Claimer, model.TokenAmount, model.ClaimedAt,
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateEvents(ctx context.Context, events []*entity.SaleEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, event := range events {
		model := mapSaleEventTypeToModel(event)
		batch.Queue(`
			INSERT INTO presale_events (type, timestamp, buyer, payment_kind, token_amount, payment_token_price, amount_charged, sale_start, sale_end, claim_start, reserved_tokens)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			model.Type, model.Timestamp, model.Buyer, model.PaymentKind, model.TokenAmount, model.PaymentTokenPrice, model.AmountCharged,
			model.SaleStart, model.SaleEnd, model.ClaimStart, model.ReservedTokens,
		)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range events {
		if _, err := results.Exec(); err != nil {
			return errors.Wrap(err, "error during exec")
		}
	}
	return nil
}

func (r *Repository) GetPurchases(ctx context.Context, limit, offset int32) ([]*entity.Purchase, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, buyer, payment_kind, token_amount, payment_token_price, amount_charged, purchased_at
		FROM presale_purchases
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`,
		nullableLimit(limit), offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	models, err := pgx.CollectRows(rows, pgx.RowToStructByPos[purchaseModel])
	if err != nil {
		return nil, errors.Wrap(err, "error during collect rows")
	}
	return mapPurchaseModels(models)
}

func (r *Repository) GetPurchasesByBuyer(ctx context.Context, buyer common.Address, limit, offset int32) ([]*entity.Purchase, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, buyer, payment_kind, token_amount, payment_token_price, amount_charged, purchased_at
		FROM presale_purchases
		WHERE buyer = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`,
		buyer.String(), nullableLimit(limit), offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	models, err := pgx.CollectRows(rows, pgx.RowToStructByPos[purchaseModel])
	if err != nil {
		return nil, errors.Wrap(err, "error during collect rows")
	}
	return mapPurchaseModels(models)
}

func (r *Repository) GetClaimsByClaimer(ctx context.Context, claimer common.Address, limit, offset int32) ([]*entity.ClaimRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, claimer, token_amount, claimed_at
		FROM presale_claims
		WHERE claimer = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`,
		claimer.String(), nullableLimit(limit), offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	models, err := pgx.CollectRows(rows, pgx.RowToStructByPos[claimModel])
	if err != nil {
		return nil, errors.Wrap(err, "error during collect rows")
	}
	return lo.Map(models, func(model claimModel, _ int) *entity.ClaimRecord {
		return mapClaimModelToType(model)
	}), nil
}

func (r *Repository) GetEvents(ctx context.Context, limit, offset int32) ([]*entity.SaleEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, type, timestamp, buyer, payment_kind, token_amount, payment_token_price, amount_charged, sale_start, sale_end, claim_start, reserved_tokens
		FROM presale_events
		ORDER BY id
		LIMIT $1 OFFSET $2`,
		nullableLimit(limit), offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	models, err := pgx.CollectRows(rows, pgx.RowToStructByPos[saleEventModel])
	if err != nil {
		return nil, errors.Wrap(err, "error during collect rows")
	}
	return mapSaleEventModels(models)
}

// nullableLimit maps the datagateway's limit = -1 convention to SQL NULL
// (no limit).
func nullableLimit(limit int32) any {
	if limit < 0 {
		return nil
	}
	return limit
}
