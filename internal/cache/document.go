// Package cache keeps rendered workbooks in Redis.  Chart generation is a
// pure function of (upload, input format, seats per row, locale), so a cached document is
// byte-identical to a freshly rendered one.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Document is a cached generation result.
type Document struct {
	Meta Meta
	Body []byte // xlsx bytes
}

// Meta is the part of a generation result needed to answer a request
// without re-running the pipeline.
type Meta struct {
	Attendees   int    `json:"attendees"`
	Rows        int    `json:"rows"`
	Explanation string `json:"explanation"`
}

// Store is a Redis backed document cache.  A nil *Store, or one without a
// client, is a valid cache that never hits.
type Store struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewStore(rdb *redis.Client, prefix string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Key derives the cache key of an upload read as format and rendered with
// the given settings.
func (s *Store) Key(upload []byte, format string, seatsPerRow int, locale string) string {
	h := sha256.New()
	h.Write(upload)
	h.Write([]byte{0})
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(seatsPerRow)))
	h.Write([]byte{0})
	h.Write([]byte(locale))
	prefix := "seatmap"
	if s != nil && s.prefix != "" {
		prefix = s.prefix
	}
	return prefix + ":doc:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached document for key.  Misses, Redis errors and
// undecodable payloads all report ok == false.
func (s *Store) Get(ctx context.Context, key string) (*Document, bool) {
	if s == nil || s.rdb == nil {
		return nil, false
	}
	bs, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	doc, err := Decode(bs)
	if err != nil {
		return nil, false
	}
	return doc, true
}

// Put stores doc under key with the store TTL.
func (s *Store) Put(ctx context.Context, key string, doc *Document) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	payload, err := Encode(doc)
	if err != nil {
		return err
	}
	return s.rdb.SetEx(ctx, key, payload, s.ttl).Err()
}

// Encode packs a document as [4 bytes metaLen][meta JSON][body].
func Encode(doc *Document) ([]byte, error) {
	meta, err := json.Marshal(doc.Meta)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 4+len(meta)+len(doc.Body))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(meta)))
	copy(out[4:4+len(meta)], meta)
	copy(out[4+len(meta):], doc.Body)
	return out, nil
}

// ErrCorrupt is returned by Decode for payloads it did not produce.
var ErrCorrupt = errors.New("corrupt cache payload")

// Decode reverses Encode.
func Decode(bs []byte) (*Document, error) {
	if len(bs) < 4 {
		return nil, ErrCorrupt
	}
	n := int(binary.BigEndian.Uint32(bs[0:4]))
	if n < 0 || 4+n > len(bs) {
		return nil, ErrCorrupt
	}
	var doc Document
	if err := json.Unmarshal(bs[4:4+n], &doc.Meta); err != nil {
		return nil, ErrCorrupt
	}
	doc.Body = append([]byte(nil), bs[4+n:]...)
	return &doc, nil
}
