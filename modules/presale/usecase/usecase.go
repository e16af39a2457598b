package usecase

import (
	"github.com/asi-network/presale-engine/modules/presale/datagateway"
	"github.com/asi-network/presale-engine/modules/presale/engine"
)

type Usecase struct {
	engine    *engine.Engine
	presaleDg datagateway.PresaleDataGateway
}

func New(engine *engine.Engine, presaleDg datagateway.PresaleDataGateway) *Usecase {
	return &Usecase{
		engine:    engine,
		presaleDg: presaleDg,
	}
}
