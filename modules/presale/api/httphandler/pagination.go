package httphandler

import (
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/cockroachdb/errors"
)

const (
	paginationDefaultLimit = 100
	paginationMaxLimit     = 1000
)

type paginationRequest struct {
	Limit  int32 `query:"limit"`
	Offset int32 `query:"offset"`
}

func (req paginationRequest) Validate() error {
	var errList []error
	if req.Limit < 0 {
		errList = append(errList, errors.New("'limit' must be non-negative"))
	}
	if req.Limit > paginationMaxLimit {
		errList = append(errList, errors.Errorf("'limit' cannot exceed %d", paginationMaxLimit))
	}
	if req.Offset < 0 {
		errList = append(errList, errors.New("'offset' must be non-negative"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (req *paginationRequest) ParseDefault() error {
	if req.Limit == 0 {
		req.Limit = paginationDefaultLimit
	}
	return nil
}
