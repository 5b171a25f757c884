package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeInserter struct {
	mu   sync.Mutex
	docs []LogDocument
}

func (f *fakeInserter) InsertMany(_ context.Context, documents []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range documents {
		f.docs = append(f.docs, d.(LogDocument))
	}
	return &mongo.InsertManyResult{}, nil
}

func TestSetup_ProductionWritesJSON(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev; slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := setup(&buf, "production")
	log.Debug("hidden")
	log.Info("user created", "user_id", "abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "user created", line["msg"])
	assert.Equal(t, "abc", line["user_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestWithCtx(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev; slog.SetDefault(prev) })

	var buf bytes.Buffer
	base := setup(&buf, "local")
	assert.Same(t, base, WithCtx(context.Background()))

	tagged := base.With("request_id", "r-1")
	ctx := InjectLogger(context.Background(), tagged)
	WithCtx(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=r-1")
}

func TestMongoHandler_FlushesOnClose(t *testing.T) {
	sink := &fakeInserter{}
	h := newMongoHandler(sink, slog.LevelInfo)

	log := slog.New(h).With("request_id", "req-42")
	log.Debug("below level")
	log.Info("login failed", "email", "a@b.c", "error", errors.New("boom"))
	log.WithGroup("db").Warn("slow query", "collection", "user")

	h.Close()
	h.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.docs, 2)

	first := sink.docs[0]
	assert.Equal(t, "login failed", first.Msg)
	assert.Equal(t, "INFO", first.Level)
	assert.Equal(t, "req-42", first.RequestID)
	assert.Equal(t, "a@b.c", first.Attrs["email"])
	assert.Equal(t, "boom", first.Attrs["error"])

	second := sink.docs[1]
	assert.Equal(t, "WARN", second.Level)
	assert.Equal(t, "user", second.Attrs["db.collection"])
}

func TestMongoHandler_AttrsKeepTheirGroup(t *testing.T) {
	sink := &fakeInserter{}
	h := newMongoHandler(sink, slog.LevelInfo)

	log := slog.New(h).With("request_id", "req-7", "svc", "catalog").
		WithGroup("http").With("method", "GET").
		WithGroup("db")
	log.Info("query", "collection", "item")
	h.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.docs, 1)

	doc := sink.docs[0]
	assert.Equal(t, "req-7", doc.RequestID)
	assert.Equal(t, bson.M{
		"svc":                "catalog",
		"http.method":        "GET",
		"http.db.collection": "item",
	}, doc.Attrs)
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(m)

	log.Info("only first")
	log.Error("both")

	assert.Contains(t, a.String(), "only first")
	assert.Contains(t, a.String(), "both")
	assert.NotContains(t, b.String(), "only first")
	assert.Contains(t, b.String(), "both")
}
