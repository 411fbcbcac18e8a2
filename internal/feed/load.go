package feed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/fairscore/internal/db"
	"github.com/gyeh/fairscore/internal/model"
	"github.com/gyeh/fairscore/internal/store"
)

const readBatchSize = 1024

// LoadResult holds metrics from one feed load.
type LoadResult struct {
	RowsRead   int64
	Facilities int64
	Procedures int64
	Duration   time.Duration
}

// Load ingests a facility feed in one transaction. Pass one upserts every
// facility seen in the feed and clears its old procedure records; pass two
// streams the price lines into fair.procedure_records via a channel-backed
// COPY. A failure anywhere rolls the whole load back.
func Load(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, path string) (*LoadResult, error) {
	start := time.Now()
	st := store.New(pool)
	result := &LoadResult{}

	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		ids, err := upsertFacilities(ctx, st, tx, path, result)
		if err != nil {
			return err
		}
		return copyProcedures(ctx, tx, path, ids, result)
	})
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	log.Info().
		Int64("rows_read", result.RowsRead).
		Int64("facilities", result.Facilities).
		Int64("procedures", result.Procedures).
		Str("duration", result.Duration.String()).
		Msg("feed load complete")
	return result, nil
}

// upsertFacilities is pass one: validate the schema, upsert each distinct
// facility, clear its procedures, and return the name -> ID map.
func upsertFacilities(ctx context.Context, st *store.Store, tx pgx.Tx, path string, result *LoadResult) (map[string]int64, error) {
	reader, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if err := ValidateSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("validate feed schema: %w", err)
	}

	ids := make(map[string]int64)
	buf := make([]model.FacilityFeedRow, readBatchSize)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			result.RowsRead++
			f := facilityFromRow(&buf[i])
			if f.Name == "" {
				return nil, fmt.Errorf("row %d: blank facility name", result.RowsRead)
			}
			if _, seen := ids[f.Name]; seen {
				continue
			}
			id, err := st.UpsertFacility(ctx, tx, f)
			if err != nil {
				return nil, err
			}
			if err := st.DeleteProcedures(ctx, tx, id); err != nil {
				return nil, err
			}
			ids[f.Name] = id
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
	}
	result.Facilities = int64(len(ids))
	return ids, nil
}

// copyProcedures is pass two: re-stream the feed and COPY price lines.
// The producer goroutine only touches the file; the transaction's single
// connection stays dedicated to the COPY.
func copyProcedures(ctx context.Context, tx pgx.Tx, path string, ids map[string]int64, result *LoadResult) error {
	reader, err := Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	ch := make(chan *model.ProcedureCopyRow, readBatchSize)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		buf := make([]model.FacilityFeedRow, readBatchSize)
		for {
			n, readErr := reader.Read(buf)
			for i := 0; i < n; i++ {
				row := &buf[i]
				id, ok := ids[facilityFromRow(row).Name]
				if !ok {
					continue
				}
				proc, ok := procedureFromRow(row, id)
				if !ok {
					continue
				}
				select {
				case ch <- &proc:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- readErr
				return
			}
		}
		errCh <- nil
	}()

	source := db.NewChannelSource(ch)
	copied, copyErr := tx.CopyFrom(ctx,
		pgx.Identifier{"fair", "procedure_records"},
		model.ProcedureColumns(),
		source,
	)

	if prodErr := <-errCh; prodErr != nil {
		return fmt.Errorf("feed producer: %w", prodErr)
	}
	if copyErr != nil {
		return fmt.Errorf("copy procedures: %w", copyErr)
	}
	result.Procedures = copied
	return nil
}
