package audio

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// URLResolver maps a sound key to the location of its asset.
type URLResolver func(models.SoundKey) (string, bool)

// CatalogURL resolves keys through the built-in sound catalog.
func CatalogURL(key models.SoundKey) (string, bool) {
	asset, ok := models.LookupSound(key)
	if !ok {
		return "", false
	}
	return asset.URL, true
}

// AssetCache loads sound assets and keeps them decoded. Downloaded files are
// kept on disk so later runs work offline.
type AssetCache struct {
	client  *resty.Client
	dir     string
	resolve URLResolver
	log     zerolog.Logger

	mu  sync.Mutex
	pcm map[models.SoundKey][]byte
}

// AssetCacheOptions configures an AssetCache
type AssetCacheOptions struct {
	Dir     string
	Timeout time.Duration
	Retries int
	Resolve URLResolver // defaults to CatalogURL
}

// NewAssetCache creates an AssetCache
func NewAssetCache(opts AssetCacheOptions, log zerolog.Logger) *AssetCache {
	if opts.Resolve == nil {
		opts.Resolve = CatalogURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	return &AssetCache{
		client:  client,
		dir:     opts.Dir,
		resolve: opts.Resolve,
		log:     log.With().Str("component", "assets").Logger(),
		pcm:     make(map[models.SoundKey][]byte),
	}
}

// Load returns the decoded PCM for key, fetching and caching it as needed.
func (ac *AssetCache) Load(ctx context.Context, key models.SoundKey) ([]byte, error) {
	ac.mu.Lock()
	pcm, ok := ac.pcm[key]
	ac.mu.Unlock()
	if ok {
		return pcm, nil
	}

	location, ok := ac.resolve(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownSound, key)
	}

	data, err := ac.readDisk(key, location)
	if err != nil {
		data, err = ac.fetch(ctx, key, location)
		if err != nil {
			return nil, err
		}
	}

	pcm, err = Decode(data)
	if err != nil {
		ac.removeDisk(key, location)
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	ac.mu.Lock()
	ac.pcm[key] = pcm
	ac.mu.Unlock()
	return pcm, nil
}

func (ac *AssetCache) fetch(ctx context.Context, key models.SoundKey, location string) ([]byte, error) {
	start := time.Now()
	resp, err := ac.client.R().
		SetContext(ctx).
		Get(location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %d", key, resp.StatusCode())
	}
	data := resp.Body()
	ac.log.Debug().
		Str("sound", string(key)).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("Sound asset downloaded")

	if err := ac.writeDisk(key, location, data); err != nil {
		ac.log.Warn().Err(err).Str("sound", string(key)).Msg("Failed to cache sound asset")
	}
	return data, nil
}

func (ac *AssetCache) cachePath(key models.SoundKey, location string) string {
	ext := ".mp3"
	if u, err := url.Parse(location); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return filepath.Join(ac.dir, string(key)+ext)
}

func (ac *AssetCache) readDisk(key models.SoundKey, location string) ([]byte, error) {
	if ac.dir == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(ac.cachePath(key, location))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty cache file")
	}
	return data, nil
}

func (ac *AssetCache) writeDisk(key models.SoundKey, location string, data []byte) error {
	if ac.dir == "" {
		return nil
	}
	if err := os.MkdirAll(ac.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(ac.cachePath(key, location), data, 0o644)
}

func (ac *AssetCache) removeDisk(key models.SoundKey, location string) {
	if ac.dir == "" {
		return
	}
	_ = os.Remove(ac.cachePath(key, location))
}
