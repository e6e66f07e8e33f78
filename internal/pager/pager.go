// Package pager owns the backing file for a table: it caches fixed-size
// pages by index, loads them from disk on first reference, and flushes
// every cached page back to its byte offset on shutdown. It is the sole
// arbiter of file bytes and cache identity in this engine; every other
// layer mutates a page only through the []byte it hands out.
package pager

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"minidb/internal/layout"
)

// Kind classifies a Pager error so callers can switch on it without string
// matching, while still formatting as the debug-enum-style token the REPL
// transcript expects.
type Kind int

const (
	// KindFile wraps an underlying I/O failure (open/seek/read/write).
	KindFile Kind = iota
	// KindPagesFull means a page index exceeded layout.MaxPages.
	KindPagesFull
	// KindCorruptFile means the file length (or a short read on an
	// already-on-disk page) is inconsistent with layout.PageSize.
	KindCorruptFile
)

// Error is the error type returned by every Pager operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.String() + ": " + e.Err.Error()
	}
	return e.String()
}

// String renders the Rust-debug-enum-style token the REPL's "db message:
// <Debug>" contract expects, e.g. "File(pager: open: open testdb:
// permission denied)" or "PagesFull" or "CorruptFile".
func (e *Error) String() string {
	switch e.Kind {
	case KindPagesFull:
		return "PagesFull"
	case KindCorruptFile:
		return "CorruptFile"
	default:
		if e.Err != nil {
			return "File(" + e.Err.Error() + ")"
		}
		return "File(" + e.Op + ")"
	}
}

// Unwrap lets errors.Is/errors.As reach the underlying I/O error that
// pkg/errors wrapped with a stack trace. errors.Cause does not look through
// Error itself; apply it to Err.
func (e *Error) Unwrap() error { return e.Err }

func fileErr(op string, err error) *Error {
	return &Error{Kind: KindFile, Op: op, Err: errors.Wrapf(err, "pager: %s", op)}
}

// Page is one PageSize-byte buffer: the unit of file I/O and cache
// residency. It may hold a leaf node, an internal node, or be all zeros
// (a freshly allocated, not-yet-written page).
type Page struct {
	Buffer [layout.PageSize]byte
}

// Pager owns a file handle, its observed length, and a cache of pages
// keyed by page number.
type Pager struct {
	file       *os.File
	fileLength int64
	numPages   uint32
	pages      map[uint32]*Page
	log        *logrus.Entry
}

// Open opens filename for read/write, creating it if absent, and verifies
// the file's length is a whole multiple of layout.PageSize. A non-multiple
// length means the file was corrupted or truncated by something other than
// this pager.
func Open(filename string, log *logrus.Logger) (*Pager, error) {
	if log == nil {
		log = logrus.New()
	}
	entry := log.WithField("component", "pager").WithField("file", filename)

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fileErr("open", err)
	}

	length, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		return nil, fileErr("seek", err)
	}

	if length%layout.PageSize != 0 {
		file.Close()
		return nil, &Error{Kind: KindCorruptFile, Op: "open",
			Err: errors.Errorf("db file length %d is not a whole number of %d-byte pages", length, layout.PageSize)}
	}

	numPages := uint32(length / layout.PageSize)
	entry.WithField("num_pages", numPages).Debug("pager opened")

	return &Pager{
		file:       file,
		fileLength: length,
		numPages:   numPages,
		pages:      make(map[uint32]*Page),
		log:        entry,
	}, nil
}

// NumPages reports how many pages are known to exist, including ones
// allocated in the cache but not yet flushed.
func (p *Pager) NumPages() uint32 { return p.numPages }

// GetPage returns the cached buffer for pageNum, loading it from disk on a
// cache miss. A short read on a page index that already existed when the
// pager was opened is treated as CorruptFile; a short read on a page beyond
// that original extent is tolerated silently, since nothing has written a
// full page there yet.
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if pageNum > layout.MaxPages {
		return nil, &Error{Kind: KindPagesFull, Op: "get_page",
			Err: errors.Errorf("page number %d exceeds max pages %d", pageNum, layout.MaxPages)}
	}

	if page, ok := p.pages[pageNum]; ok {
		return page, nil
	}

	page := &Page{}
	numPagesOnDiskAtOpen := uint32(p.fileLength / layout.PageSize)

	if pageNum < numPagesOnDiskAtOpen {
		if _, err := p.file.Seek(int64(pageNum)*layout.PageSize, io.SeekStart); err != nil {
			return nil, fileErr("seek", err)
		}

		n, err := io.ReadFull(p.file, page.Buffer[:])
		switch {
		case err == nil:
			// full page, as expected for an index known at open time.
		case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
			return nil, &Error{Kind: KindCorruptFile, Op: "get_page",
				Err: errors.Errorf("page %d: short read of %d bytes, file was truncated since open", pageNum, n)}
		default:
			return nil, fileErr("read", err)
		}
	}
	// pageNum >= numPagesOnDiskAtOpen: a logically new page, left zeroed
	// until the caller writes into it and it is flushed.

	p.pages[pageNum] = page
	if pageNum >= p.numPages {
		p.numPages = pageNum + 1
	}

	return page, nil
}

// Flush writes every cached page back to its byte offset in the file. Any
// seek or write failure is fatal to the caller (table.Close treats it as
// such); there is no partial retry.
func (p *Pager) Flush() error {
	for pageNum, page := range p.pages {
		if _, err := p.file.Seek(int64(pageNum)*layout.PageSize, io.SeekStart); err != nil {
			return fileErr("seek", err)
		}
		if _, err := p.file.Write(page.Buffer[:]); err != nil {
			return fileErr("write", err)
		}
	}
	p.log.WithField("pages_flushed", len(p.pages)).Debug("pager flushed")
	return nil
}

// Close closes the underlying file descriptor. Callers must Flush first if
// they want cached pages durable.
func (p *Pager) Close() error {
	if err := p.file.Close(); err != nil {
		return fileErr("close", err)
	}
	return nil
}
