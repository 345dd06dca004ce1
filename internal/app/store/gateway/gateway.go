// Package gateway executes descriptors against MongoDB. It owns the
// per-call deadlines and turns driver errors into ugcerrors kinds.
// Nothing is retried here: a failure is returned to the caller as is.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/ugchub/internal/app/store/descriptor"
	"github.com/dalemusser/ugchub/internal/app/system/timeouts"
	"github.com/dalemusser/ugchub/internal/app/system/ugcerrors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Gateway runs one store round trip per call. It is safe for concurrent
// use; the mongo client does its own pooling.
type Gateway struct {
	db  *mongo.Database
	log *zap.Logger
}

// New wraps a database handle. The client behind db must have been
// created with uuidcodec.Registry so ids round-trip as UUIDs.
func New(db *mongo.Database, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{db: db, log: logger}
}

// Execute dispatches on d.Kind. out receives the resulting document (or,
// for aggregate, must point to a slice); a nil out skips decoding.
func (g *Gateway) Execute(ctx context.Context, d descriptor.Descriptor, out interface{}) error {
	switch d.Kind {
	case descriptor.KindInsert:
		return g.Insert(ctx, d, out)
	case descriptor.KindFind:
		return g.Find(ctx, d, out)
	case descriptor.KindUpdate:
		return g.Update(ctx, d, out)
	case descriptor.KindDelete:
		return g.Delete(ctx, d, out)
	case descriptor.KindAggregate:
		return g.Aggregate(ctx, d, out)
	}
	return fmt.Errorf("gateway: unsupported descriptor kind %v", d.Kind)
}

// Insert creates the replacement document under the descriptor's fresh
// id and decodes the stored document into out.
func (g *Gateway) Insert(ctx context.Context, d descriptor.Descriptor, out interface{}) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), g.log, "insert "+d.Collection)
	defer cancel()

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)
	res := g.db.Collection(d.Collection).FindOneAndReplace(ctx, d.Filter, d.Replacement, opts)
	return g.finish(d, decodeSingle(res, out))
}

// Find loads the document matching d.Filter.
func (g *Gateway) Find(ctx context.Context, d descriptor.Descriptor, out interface{}) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), g.log, "find "+d.Collection)
	defer cancel()

	res := g.db.Collection(d.Collection).FindOne(ctx, d.Filter)
	return g.finish(d, decodeSingle(res, out))
}

// Update applies d.Mutation and decodes the document as it is after the
// update. Without upsert an absent target is ErrNotFound.
func (g *Gateway) Update(ctx context.Context, d descriptor.Descriptor, out interface{}) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), g.log, "update "+d.Collection)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(d.Upsert).
		SetReturnDocument(options.After)
	res := g.db.Collection(d.Collection).FindOneAndUpdate(ctx, d.Filter, d.Mutation, opts)
	return g.finish(d, decodeSingle(res, out))
}

// Delete removes the document matching d.Filter and decodes what was
// removed. Matching nothing is ErrNotFound.
func (g *Gateway) Delete(ctx context.Context, d descriptor.Descriptor, out interface{}) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), g.log, "delete "+d.Collection)
	defer cancel()

	res := g.db.Collection(d.Collection).FindOneAndDelete(ctx, d.Filter)
	return g.finish(d, decodeSingle(res, out))
}

// Aggregate runs d.Pipeline and decodes every result into out, which must
// point to a slice.
func (g *Gateway) Aggregate(ctx context.Context, d descriptor.Descriptor, out interface{}) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), g.log, "aggregate "+d.Collection)
	defer cancel()

	start := time.Now()
	cur, err := g.db.Collection(d.Collection).Aggregate(ctx, d.Pipeline)
	if err != nil {
		return g.finish(d, err)
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, out); err != nil {
		return g.finish(d, err)
	}
	g.log.Debug("aggregate finished",
		zap.String("collection", d.Collection),
		zap.Int("stages", len(d.Pipeline)),
		zap.Duration("took", time.Since(start)))
	return nil
}

// Ping checks that the store answers. Used by the health endpoint.
func (g *Gateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := g.db.Client().Ping(ctx, nil); err != nil {
		return ugcerrors.Classify(err, "ping", g.db.Name())
	}
	return nil
}

func decodeSingle(res *mongo.SingleResult, out interface{}) error {
	if out == nil {
		return res.Err()
	}
	return res.Decode(out)
}

// finish classifies err and logs transport failures. Not-found and
// constraint violations are expected outcomes and are not logged here.
func (g *Gateway) finish(d descriptor.Descriptor, err error) error {
	if err == nil {
		return nil
	}
	err = ugcerrors.Classify(err, d.Kind.String(), d.Collection)
	if errors.Is(err, ugcerrors.ErrTransport) {
		g.log.Error("store round trip failed",
			zap.String("op", d.Kind.String()),
			zap.String("collection", d.Collection),
			zap.Bool("timeout", ugcerrors.IsTimeout(err)),
			zap.Error(err))
	}
	return err
}
