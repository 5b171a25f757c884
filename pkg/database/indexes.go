package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index describes a single-field index to create at startup.
type Index struct {
	Collection string
	Field      string
	Unique     bool
}

// EnsureIndexes creates each index if it does not already exist. Creating an
// existing index with the same keys and options is a no-op on the server.
func (g *Gateway) EnsureIndexes(ctx context.Context, indexes ...Index) error {
	for _, idx := range indexes {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: idx.Field, Value: 1}},
			Options: options.Index().SetUnique(idx.Unique),
		}
		if _, err := g.Collection(idx.Collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("database: create index %s.%s: %w", idx.Collection, idx.Field, err)
		}
	}
	return nil
}

var indexNameRE = regexp.MustCompile(`index:\s+([A-Za-z0-9_.$]+?)_-?1\b`)

// DuplicateKeyField reports whether err is a unique-index violation and, if
// the server says so, which field caused it. The field comes from the
// structured keyPattern/keyValue of the write error; servers that omit them
// fall back to the index name (field_1) the error names.
func DuplicateKeyField(err error) (string, bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return "", false
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if !isDuplicateCode(e.Code) {
				continue
			}
			if f := fieldFromRaw(e.Raw); f != "" {
				return f, true
			}
			if f := fieldFromIndexName(e.Message); f != "" {
				return f, true
			}
		}
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if f := fieldFromRaw(ce.Raw); f != "" {
			return f, true
		}
		if f := fieldFromIndexName(ce.Message); f != "" {
			return f, true
		}
	}

	return "", true
}

func isDuplicateCode(code int) bool {
	return code == 11000 || code == 11001 || code == 12582
}

func fieldFromRaw(raw bson.Raw) string {
	if len(raw) == 0 {
		return ""
	}
	for _, key := range []string{"keyPattern", "keyValue"} {
		val, err := raw.LookupErr(key)
		if err != nil {
			continue
		}
		doc, ok := val.DocumentOK()
		if !ok {
			continue
		}
		elems, err := doc.Elements()
		if err != nil || len(elems) == 0 {
			continue
		}
		return elems[0].Key()
	}
	return ""
}

func fieldFromIndexName(msg string) string {
	m := indexNameRE.FindStringSubmatch(msg)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
