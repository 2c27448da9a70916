package store

import (
	"time"

	"github.com/hupe1980/sparsepack/catalog"
	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/resource"
)

type options struct {
	codec              codec.Codec
	catalog            catalog.Catalog
	resourceController *resource.Controller
	now                func() time.Time
}

// Option configures a Store.
type Option func(*options)

// WithCodec encodes archives with c instead of the FlatBuffers binary layout.
// Reads accept both encodings.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCatalog records an entry for every stored archive.
func WithCatalog(c catalog.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithResourceController bounds batch concurrency by the controller's
// transfer slots. Byte throttling belongs to the blob backend, see
// blobstore.WithIOLimit and s3.WithIOLimit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resourceController = rc
	}
}

// WithClock overrides the time source for catalog entries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		now: time.Now,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
