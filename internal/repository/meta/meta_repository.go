package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain"
	"github.com/crashstats-service/internal/domain/repository"
)

type metaRepository struct {
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	mtime  time.Time
	cached *domain.DataMeta
}

// NewMetaRepository reads the ETL-written meta.json. The parsed value is
// cached against the file's mtime, so serving traffic only re-reads after a
// dataset refresh.
func NewMetaRepository(path string, logger *zap.Logger) repository.MetaRepository {
	return &metaRepository{
		path:   path,
		logger: logger,
	}
}

func (r *metaRepository) GetMeta(ctx context.Context) (*domain.DataMeta, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return nil, fmt.Errorf("stat meta file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && info.ModTime().Equal(r.mtime) {
		return r.cached, nil
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read meta file: %w", err)
	}

	var meta domain.DataMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse meta file: %w", err)
	}

	r.logger.Debug("Data metadata reloaded",
		zap.String("path", r.path),
		zap.String("data_version", meta.DataVersion),
	)

	r.mtime = info.ModTime()
	r.cached = &meta
	return &meta, nil
}
