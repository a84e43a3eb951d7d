package recordstore

import (
	"github.com/holmberd/go-recordstore/datastore"
	"github.com/holmberd/go-recordstore/encoder"
	"github.com/sirupsen/logrus"
)

// options defines all configuration options for a store.
type options struct {
	baseDir     string            // Parent of the root directory; empty means os.TempDir().
	rootPattern string            // os.MkdirTemp pattern of the root directory.
	logger      logrus.FieldLogger
	datastore   datastore.Factory // Opens the client rooted at the store root.
	codec       encoder.Codec
}

// Option is a function that configures the store options.
type Option func(*options)

// WithBaseDir sets the directory the root directory is created in.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// WithRootPattern sets the name pattern of the root directory.
// A "*" in the pattern is replaced by a random string.
func WithRootPattern(pattern string) Option {
	return func(o *options) {
		o.rootPattern = pattern
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDatastore sets the factory of the datastore client.
func WithDatastore(factory datastore.Factory) Option {
	return func(o *options) {
		o.datastore = factory
	}
}

// WithCodec sets the record codec.
func WithCodec(codec encoder.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	return options{
		baseDir:     "",
		rootPattern: "recordstore-*",
		logger:      logger,
		datastore:   datastore.NewFileClient,
		codec:       encoder.OCFEncoder{},
	}
}
