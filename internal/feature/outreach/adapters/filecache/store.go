// Package filecache は企業ごとの中間成果物をJSONファイルとして保存するストアを提供します。
package filecache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/usecase"
)

const (
	// DefaultDir はキャッシュディレクトリの既定値です。
	DefaultDir = "cache"

	lockRetryDelay = 50 * time.Millisecond
	lockFileName   = ".cache.lock"
)

// kinds は Purge で削除する成果物の種類です。
var kinds = []string{usecase.KindCompany, usecase.KindContacts, usecase.KindPartnership, usecase.KindCulture}

// Store はディレクトリ配下に {kind}_{company}.json を読み書きします。
// 書き込みはロックファイルで直列化し（サーバーとCLIが同じディレクトリを使うため）、
// 一時ファイルからのリネームで置き換えます。後勝ちです。
type Store struct {
	dir  string
	mu   sync.Mutex // flock はプロセス内の同時ロックを区別しない
	lock *flock.Flock
}

// StoreがArtifactStoreを実装していることをコンパイル時に検証します。
var _ usecase.ArtifactStore = (*Store)(nil)

// NewStore はディレクトリを作成してStoreを返します。
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &Store{dir: dir, lock: flock.New(filepath.Join(dir, lockFileName))}, nil
}

// FileName は成果物のファイル名を返します。企業名は usecase.ArtifactKey で正規化します。
func FileName(kind, company string) string {
	return kind + "_" + usecase.ArtifactKey(company) + ".json"
}

func (s *Store) path(kind, company string) string {
	return filepath.Join(s.dir, FileName(kind, company))
}

// Load は成果物を読み込みます。存在しない場合は domain.ErrArtifactNotFound を返します。
func (s *Store) Load(_ context.Context, kind, company string) ([]byte, error) {
	data, err := os.ReadFile(s.path(kind, company))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s artifact for %q: %w", kind, company, err)
	}
	return data, nil
}

// Save は成果物を書き込みます。既存ファイルは上書きされます。
func (s *Store) Save(ctx context.Context, kind, company string, data []byte) error {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	dst := s.path(kind, company)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s artifact for %q: %w", kind, company, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}

// Purge は企業に関するすべての成果物を削除します。
func (s *Store) Purge(ctx context.Context, company string) error {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	var errs []error
	for _, kind := range kinds {
		if err := os.Remove(s.path(kind, company)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) acquire(ctx context.Context) (func(), error) {
	s.mu.Lock()
	ok, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("lock cache dir: %w", err)
	}
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("lock cache dir: %w", ctx.Err())
	}
	return func() {
		_ = s.lock.Unlock()
		s.mu.Unlock()
	}, nil
}
