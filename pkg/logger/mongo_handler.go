// MongoHandler is an slog.Handler that ships log records to a MongoDB
// collection without touching the request path:
//
//   - Records are converted to LogDocument and enqueued on a buffered channel.
//   - One goroutine drains the channel with InsertMany in batches.
//   - A full channel drops the record; logging never blocks a request.
//   - Close flushes what is queued and disconnects.

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to MongoDB.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Service   string    `bson:"service"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// mongoSink is shared by every handler derived through WithAttrs/WithGroup.
type mongoSink struct {
	col       *mongo.Collection
	client    *mongo.Client
	queue     chan LogDocument
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// MongoHandler is a slog.Handler that writes to MongoDB asynchronously.
type MongoHandler struct {
	sink    *mongoSink
	service string
	level   slog.Level
	attrs   []slog.Attr
	groups  []string
}

// NewMongoHandler connects to uri and returns a handler writing records at
// or above level into db.collection. The caller must eventually call Close.
func NewMongoHandler(ctx context.Context, uri, db, collection, service string, level slog.Level) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)

	// Newest-first index for log browsing and request_id lookups.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
	})

	sink := &mongoSink{
		col:     col,
		client:  client,
		queue:   make(chan LogDocument, mongoQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go sink.drainLoop()

	return &MongoHandler{sink: sink, service: service, level: level}, nil
}

// ─── slog.Handler interface ───────────────────────────────────────────────────

func (h *MongoHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := h.document(r)

	select {
	case h.sink.queue <- doc:
	default:
		// queue full: drop
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &clone
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// Close flushes pending records and disconnects. Safe to call twice.
func (h *MongoHandler) Close() {
	h.sink.closeOnce.Do(func() {
		close(h.sink.done)
		<-h.sink.stopped

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.sink.client.Disconnect(ctx)
	})
}

// ─── Internals ────────────────────────────────────────────────────────────────

// document converts a record plus the handler's bound attributes.
func (h *MongoHandler) document(r slog.Record) LogDocument {
	doc := LogDocument{
		Time:    r.Time,
		Level:   r.Level.String(),
		Service: h.service,
		Msg:     r.Message,
		Attrs:   bson.M{},
	}

	add := func(a slog.Attr) {
		if a.Key == "request_id" {
			doc.RequestID = a.Value.String()
			return
		}
		doc.Attrs[a.Key] = attrValue(a.Value)
	}

	for _, a := range h.attrs {
		add(a)
	}
	var recordAttrs []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		recordAttrs = append(recordAttrs, a)
		return true
	})
	for _, a := range h.qualify(recordAttrs) {
		add(a)
	}

	if len(doc.Attrs) == 0 {
		doc.Attrs = nil
	}
	return doc
}

// qualify prefixes attribute keys with the open groups ("http.status").
func (h *MongoHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}
	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}
	return out
}

func attrValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		m := bson.M{}
		for _, a := range v.Group() {
			m[a.Key] = attrValue(a.Value)
		}
		return m
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.Any()
	}
}

func (s *mongoSink) drainLoop() {
	defer close(s.stopped)

	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = s.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for len(s.queue) > 0 {
				batch = append(batch, <-s.queue)
				if len(batch) >= mongoBatchSize {
					flush()
				}
			}
			flush()
			return
		}
	}
}
