package tts

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Cache は合成済みのチャンク音声を保存する永続キャッシュです。
// 途中で失敗したビルドを再実行した際に、合成済みのチャンクをエンジンに再送しないために使います。
type Cache struct {
	path string
	db   *bolt.DB
}

// OpenCache は path のキャッシュファイルを開きます (存在しない場合は作成します)。
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &ErrCache{Path: path, WrappedErr: fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, &ErrCache{Path: path, WrappedErr: err}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(cacheBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, &ErrCache{Path: path, WrappedErr: err}
	}

	return &Cache{path: path, db: db}, nil
}

// Get はキーに対応する音声を返します。見つからない場合は false を返します。
func (c *Cache) Get(key []byte) ([]byte, bool, error) {
	var value []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(cacheBucket)).Get(key); v != nil {
			// トランザクション外で使うためコピーする
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, &ErrCache{Path: c.path, WrappedErr: err}
	}
	return value, value != nil, nil
}

// Put はキーに音声を保存します。
func (c *Cache) Put(key, value []byte) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cacheBucket)).Put(key, value)
	})
	if err != nil {
		return &ErrCache{Path: c.path, WrappedErr: err}
	}
	return nil
}

// Close はキャッシュファイルを閉じます。
func (c *Cache) Close() error {
	return c.db.Close()
}

// CacheKey は合成結果を一意に決めるリクエストの内容からキャッシュキーを計算します。
func CacheKey(req Request) []byte {
	sum := sha256.Sum256([]byte(strings.Join([]string{req.Voice, req.Rate, req.Volume, req.Text}, cacheKeySeparator)))
	return sum[:]
}

// ----------------------------------------------------------------------
// キャッシュ付き Synthesizer
// ----------------------------------------------------------------------

// CachedSynthesizer はキャッシュにヒットした場合にバックエンドの呼び出しを省略する Synthesizer です。
// 合成に失敗したリクエストはキャッシュされません。
type CachedSynthesizer struct {
	next  Synthesizer
	cache *Cache
}

// NewCachedSynthesizer は next をキャッシュで包んだ Synthesizer を返します。
func NewCachedSynthesizer(next Synthesizer, cache *Cache) *CachedSynthesizer {
	return &CachedSynthesizer{next: next, cache: cache}
}

// Synthesize はキャッシュを参照し、なければ next で合成して保存します。
func (s *CachedSynthesizer) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	key := CacheKey(req)

	if wav, ok, err := s.cache.Get(key); err != nil {
		return nil, err
	} else if ok {
		slog.DebugContext(ctx, "合成キャッシュにヒットしました。", "chars", len([]rune(req.Text)))
		return wav, nil
	}

	wav, err := s.next.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(key, wav); err != nil {
		return nil, err
	}
	return wav, nil
}
