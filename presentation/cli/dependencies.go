package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"stegano/application"
	"stegano/application/logging"
	"stegano/application/stego_codec"
	"stegano/infrastructure/carrier"
	"stegano/infrastructure/cryptography"
	"stegano/infrastructure/index_stream"
	infraLogging "stegano/infrastructure/logging"
	"stegano/infrastructure/primes"
	"stegano/settings"
)

// Dependencies owns the codec and, for the cache prime source, the running
// prime service. Close must be called to flush the prime mirror.
type Dependencies struct {
	codec   *stego_codec.Codec
	service *primes.Service
}

// NewDependencies wires the codec. A non-nil progress sink receives the
// codec's status lines instead of logger.
func NewDependencies(
	ctx context.Context,
	conf settings.Configuration,
	logger logging.Logger,
	progress func(string),
) (*Dependencies, error) {
	deps := &Dependencies{}

	source, sourceErr := deps.primeSource(ctx, conf, logger)
	if sourceErr != nil {
		return nil, sourceErr
	}

	codecLogger := logger
	if progress != nil {
		codecLogger = infraLogging.NewProgressLogger(progress, nil)
	}

	deps.codec = stego_codec.NewCodec(
		index_stream.NewFactory(source),
		carrier.NewParser(),
		cryptography.NewPayloadCipherFactory(),
		codecLogger,
	)
	return deps, nil
}

func (d *Dependencies) primeSource(
	ctx context.Context,
	conf settings.Configuration,
	logger logging.Logger,
) (application.PrimeSource, error) {
	switch conf.PrimeSource {
	case settings.Cache:
		path, pathErr := conf.ResolvedPrimeCachePath()
		if pathErr != nil {
			return nil, pathErr
		}
		if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
			return nil, fmt.Errorf("could not create prime cache directory: %w", mkdirErr)
		}

		service := primes.NewService(primes.NewFileStore(path), primes.ServiceSettings{
			FlushBatch: conf.PrimeFlushBatch,
			Ceiling:    conf.PrimeCeiling,
		}, logger)
		if startErr := service.Start(ctx); startErr != nil {
			return nil, fmt.Errorf("could not start prime cache: %w", startErr)
		}
		d.service = service
		return service, nil
	default:
		return primes.NewSieve(conf.SieveWorkers), nil
	}
}

func (d *Dependencies) Codec() *stego_codec.Codec {
	return d.codec
}

func (d *Dependencies) Close() {
	if d.service != nil {
		d.service.Shutdown()
	}
}
