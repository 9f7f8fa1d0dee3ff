package storage

import (
	"context"

	"github.com/rs/zerolog"

	"photofeed/internal/config"
)

// Sink stores named bytes and returns a URL the stored object can be
// retrieved from. The upload pipeline depends only on this interface.
type Sink interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// NewSink picks the blob backend once at composition time: the cloud sink
// when an endpoint and bucket are both configured, the local uploads
// directory otherwise.
func NewSink(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (Sink, error) {
	if cfg.Endpoint != "" && cfg.Bucket != "" {
		sink, err := NewObjectSink(cfg)
		if err != nil {
			return nil, err
		}
		if err := sink.EnsureBucket(ctx); err != nil {
			log.Warn().Err(err).Str("bucket", cfg.Bucket).Msg("ensure bucket failed")
		}
		log.Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("cloud blob sink selected")
		return sink, nil
	}

	sink, err := NewLocalSink(cfg.LocalDir)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", cfg.LocalDir).Msg("local blob sink selected")
	return sink, nil
}
