// Package arena provides the chunked allocator backing value regions.
//
// One engine backend runs single-threaded, so the arena takes no locks.
// Calls may nest (a managed routine can trigger another bound call), which
// is safe because nesting only ever allocates; Reset and Free happen at
// well-defined points owned by the outermost caller.
//
// Memory is reserved in chunks obtained from anonymous mappings so bulk
// value payloads stay off the Go heap. An optional MemoryAcquirer bounds
// total reservation.
package arena

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/Sednai/pljava/internal/conv"
	"github.com/Sednai/pljava/internal/mmap"
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, amount int64) error
	ReleaseMemory(amount int64)
}

var (
	// ErrClosed is returned when allocating from a freed arena.
	ErrClosed = errors.New("arena: closed")
	// ErrAllocTooLarge is returned when a single allocation exceeds the chunk size.
	ErrAllocTooLarge = errors.New("arena: allocation exceeds chunk size")
)

const (
	// DefaultChunkSize is the default size of a chunk (256 KiB).
	DefaultChunkSize = 256 * 1024
	// DefaultAlignment is the default allocation alignment.
	DefaultAlignment = 8
)

// Stats tracks arena usage.
type Stats struct {
	BytesReserved uint64 // memory currently reserved from the OS
	BytesUsed     uint64 // bytes handed out since the last Reset
	ActiveChunks  uint64
	TotalAllocs   uint64
}

type chunk struct {
	data    []byte
	mapping *mmap.Mapping
	offset  int
}

// Arena is a bump allocator over mmap-backed chunks.
type Arena struct {
	chunkSize int
	alignment int
	chunks    []*chunk
	acquirer  MemoryAcquirer
	stats     Stats
	closed    bool
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithMemoryAcquirer sets the memory acquirer for the arena.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Arena) {
		a.acquirer = acquirer
	}
}

// New creates a new Arena with the given chunk size, rounded up to a
// power of two. A chunkSize <= 0 selects DefaultChunkSize.
func New(chunkSize int, opts ...Option) (*Arena, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	chunkSize = 1 << bits.Len(uint(chunkSize-1))

	a := &Arena{
		chunkSize: chunkSize,
		alignment: DefaultAlignment,
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.grow(context.Background()); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena) grow(ctx context.Context) error {
	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(ctx, int64(a.chunkSize)); err != nil {
			return err
		}
	}

	mapping, err := mmap.MapAnon(a.chunkSize)
	if err != nil {
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(int64(a.chunkSize))
		}
		return fmt.Errorf("arena: failed to map chunk: %w", err)
	}

	a.chunks = append(a.chunks, &chunk{
		data:    mapping.Bytes(),
		mapping: mapping,
	})

	reserved, _ := conv.IntToUint64(a.chunkSize)
	a.stats.BytesReserved += reserved
	a.stats.ActiveChunks++
	return nil
}

// AllocBytes allocates a zeroed byte slice of the given size.
func (a *Arena) AllocBytes(size int) ([]byte, error) {
	return a.AllocBytesContext(context.Background(), size)
}

// AllocBytesContext allocates a zeroed byte slice, honoring the context
// while waiting on the memory acquirer.
func (a *Arena) AllocBytesContext(ctx context.Context, size int) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if size <= 0 {
		return nil, nil
	}
	if size > a.chunkSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrAllocTooLarge, size, a.chunkSize)
	}

	mask := a.alignment - 1
	alignedSize := (size + mask) & ^mask

	curr := a.chunks[len(a.chunks)-1]
	if curr.offset+alignedSize > len(curr.data) {
		if err := a.grow(ctx); err != nil {
			return nil, err
		}
		curr = a.chunks[len(a.chunks)-1]
	}

	start := curr.offset
	curr.offset += alignedSize

	used, _ := conv.IntToUint64(size)
	a.stats.BytesUsed += used
	a.stats.TotalAllocs++

	return curr.data[start : start+size : start+alignedSize], nil
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Reset discards all allocations, keeping the first chunk for reuse.
// Previously returned slices become invalid.
func (a *Arena) Reset() {
	if a.closed || len(a.chunks) == 0 {
		return
	}

	for _, c := range a.chunks[1:] {
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(int64(a.chunkSize))
		}
		_ = c.mapping.Close()
		a.stats.BytesReserved -= uint64(a.chunkSize)
		a.stats.ActiveChunks--
	}
	a.chunks = a.chunks[:1]

	first := a.chunks[0]
	clear(first.data[:first.offset])
	first.offset = 0
	a.stats.BytesUsed = 0
}

// Free releases all arena memory. The arena cannot be reused afterwards.
func (a *Arena) Free() {
	if a.closed {
		return
	}
	for _, c := range a.chunks {
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(int64(a.chunkSize))
		}
		_ = c.mapping.Close()
	}
	a.chunks = nil
	a.closed = true
	a.stats.BytesReserved = 0
	a.stats.ActiveChunks = 0
	a.stats.BytesUsed = 0
}
