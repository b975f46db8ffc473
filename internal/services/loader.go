package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"vehicle-proximity-service/internal/adapters/positions"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/platform/obs"

	"github.com/dustin/go-humanize"
)

const DefaultBatchSize = 1000

type LoadOptions struct {
	// Records decoded before each insert into the index.
	BatchSize int
	// Expected record count, used to presize the index. Zero is fine.
	SizeHint int
}

// LoadVehicles decodes the binary position stream into a sealed VehicleIndex.
//
// Records are decoded one at a time, in file order, and inserted in batches
// of opts.BatchSize; the final partial batch is flushed at end of stream.
// Batching only changes when insertion happens, never what is decoded.
// ctx is checked between batches.
func LoadVehicles(ctx context.Context, r io.Reader, opts LoadOptions) (_ *domain.VehicleIndex, err error) {
	defer obs.Time(ctx, "vehicles.Load")(&err)

	if r == nil {
		return nil, errors.New("load vehicles: reader must be non-nil")
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	idx := domain.NewVehicleIndex(opts.SizeHint)
	dec := positions.NewDecoder(r)
	batch := make([]domain.VehicleRecord, 0, batchSize)

	flush := func() error {
		if err := idx.InsertBatch(batch); err != nil {
			return fmt.Errorf("load vehicles: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for {
		rec, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load vehicles: %w", err)
		}

		batch = append(batch, rec)
		if len(batch) < batchSize {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load vehicles: after %d records: %w", dec.Count(), err)
		}
		if err := flush(); err != nil {
			return nil, err
		}
	}

	if len(batch) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	idx.Seal()

	log.Printf(
		"req_id=%s op=vehicles.Load records=%s bytes=%s",
		obs.RequestID(ctx), humanize.Comma(int64(idx.Len())), humanize.Bytes(uint64(dec.Offset())),
	)
	return idx, nil
}
