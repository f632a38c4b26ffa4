// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainstore persists headers and blocks keyed by their commitment
// hash. The consensus core never depends on it; it is a leaf collaborator
// for callers that want chain data to outlive the process.
package chainstore

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/log"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/hashing"
)

var (
	headerPrefix = []byte("header")
	blockPrefix  = []byte("block")
	metaPrefix   = []byte("meta")

	tipKey = []byte("tip")
)

// DecodeDigest parses a digest from its Bytes encoding. The chain.Digest
// constraint only requires encoding, so the store takes the decoder at
// construction.
type DecodeDigest[D chain.Digest] func([]byte) (D, error)

// Store reads and writes headers and blocks for one digest type over a
// key-value database.
type Store[D chain.Digest] struct {
	headers database.Database
	blocks  database.Database
	meta    database.Database
	decode  DecodeDigest[D]
	log     log.Logger
}

// New namespaces the given database for headers, blocks, and metadata.
func New[D chain.Digest](db database.Database, decode DecodeDigest[D], logger log.Logger) *Store[D] {
	return &Store[D]{
		headers: prefixdb.New(headerPrefix, db),
		blocks:  prefixdb.New(blockPrefix, db),
		meta:    prefixdb.New(metaPrefix, db),
		decode:  decode,
		log:     logger,
	}
}

// PutHeader stores the header under its commitment hash and returns the
// hash.
func (s *Store[D]) PutHeader(h chain.Header[D]) (hashing.Hash, error) {
	hash := chain.HashHeader(h)
	if err := s.headers.Put(hashKey(hash), h.Bytes()); err != nil {
		return 0, fmt.Errorf("failed to store header: %w", err)
	}
	s.log.Debug("stored header",
		log.Uint64("hash", hash),
		log.Uint64("height", h.Height),
	)
	return hash, nil
}

// GetHeader fetches the header with the given commitment hash. Returns
// database.ErrNotFound when no such header is stored.
func (s *Store[D]) GetHeader(hash hashing.Hash) (chain.Header[D], error) {
	b, err := s.headers.Get(hashKey(hash))
	if err != nil {
		return chain.Header[D]{}, err
	}
	return s.decodeHeader(b)
}

// PutBlock stores the block under its header's commitment hash and returns
// the hash.
func (s *Store[D]) PutBlock(b chain.Block[D]) (hashing.Hash, error) {
	hash := chain.HashHeader(b.Header)
	if err := s.blocks.Put(hashKey(hash), encodeBlock(b)); err != nil {
		return 0, fmt.Errorf("failed to store block: %w", err)
	}
	s.log.Debug("stored block",
		log.Uint64("hash", hash),
		log.Uint64("height", b.Header.Height),
		log.Int("extrinsics", len(b.Body)),
	)
	return hash, nil
}

// GetBlock fetches the block whose header has the given commitment hash.
// Returns database.ErrNotFound when no such block is stored.
func (s *Store[D]) GetBlock(hash hashing.Hash) (chain.Block[D], error) {
	raw, err := s.blocks.Get(hashKey(hash))
	if err != nil {
		return chain.Block[D]{}, err
	}
	return s.decodeBlock(raw)
}

// SetTip records the hash of the preferred chain head.
func (s *Store[D]) SetTip(hash hashing.Hash) error {
	return s.meta.Put(tipKey, hashKey(hash))
}

// Tip returns the recorded chain head hash. Returns database.ErrNotFound
// when no tip has been set.
func (s *Store[D]) Tip() (hashing.Hash, error) {
	b, err := s.meta.Get(tipKey)
	if err != nil {
		return 0, err
	}
	if len(b) != hashing.HashLen {
		return 0, fmt.Errorf("corrupt tip entry of %d bytes", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

func (s *Store[D]) decodeHeader(b []byte) (chain.Header[D], error) {
	const fixed = 4 * hashing.HashLen
	if len(b) < fixed {
		return chain.Header[D]{}, fmt.Errorf("corrupt header entry of %d bytes", len(b))
	}
	digest, err := s.decode(b[fixed:])
	if err != nil {
		return chain.Header[D]{}, fmt.Errorf("corrupt header digest: %w", err)
	}
	return chain.Header[D]{
		Parent:          binary.BigEndian.Uint64(b[0:8]),
		Height:          binary.BigEndian.Uint64(b[8:16]),
		StateRoot:       binary.BigEndian.Uint64(b[16:24]),
		ExtrinsicsRoot:  binary.BigEndian.Uint64(b[24:32]),
		ConsensusDigest: digest,
	}, nil
}

// Block encoding: header length, header bytes, then the body extrinsics.
// Everything is length-prefixed because digest encodings vary in width.
func encodeBlock[D chain.Digest](b chain.Block[D]) []byte {
	header := b.Header.Bytes()
	out := make([]byte, 0, 4+len(header)+4+8*len(b.Body))
	out = binary.BigEndian.AppendUint32(out, uint32(len(header)))
	out = append(out, header...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(b.Body)))
	for _, e := range b.Body {
		out = binary.BigEndian.AppendUint64(out, e)
	}
	return out
}

func (s *Store[D]) decodeBlock(raw []byte) (chain.Block[D], error) {
	if len(raw) < 4 {
		return chain.Block[D]{}, fmt.Errorf("corrupt block entry of %d bytes", len(raw))
	}
	headerLen := binary.BigEndian.Uint32(raw)
	raw = raw[4:]
	if uint64(len(raw)) < uint64(headerLen)+4 {
		return chain.Block[D]{}, fmt.Errorf("block entry truncated at header")
	}
	header, err := s.decodeHeader(raw[:headerLen])
	if err != nil {
		return chain.Block[D]{}, err
	}
	raw = raw[headerLen:]
	count := binary.BigEndian.Uint32(raw)
	raw = raw[4:]
	if uint64(len(raw)) != 8*uint64(count) {
		return chain.Block[D]{}, fmt.Errorf("block entry truncated at body")
	}
	var body []uint64
	for i := uint32(0); i < count; i++ {
		body = append(body, binary.BigEndian.Uint64(raw[8*i:]))
	}
	return chain.Block[D]{Header: header, Body: body}, nil
}

func hashKey(h hashing.Hash) []byte {
	return binary.BigEndian.AppendUint64(nil, h)
}
