package application

import (
	"context"

	"stegano/domain/stego"
)

// IndexStream yields carrier unit addresses in [0, Limit()).
type IndexStream interface {
	Next() (int, error)
	Limit() int
}

type IndexStreamFactory interface {
	Create(ctx context.Context, strategy stego.Strategy, limit int, seed uint64) (IndexStream, error)
}
