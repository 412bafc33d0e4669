package database

import (
	"fmt"
	"log"
	"sync"
	"time"

	"timberyard-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Source tags where a read was served from.
type Source int

const (
	SourceNone Source = iota // neither store could answer
	SourceCache
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceCache:
		return "cache"
	default:
		return "none"
	}
}

// Gateway is the persistence layer: a remote Postgres store with a local
// sqlite cache underneath it. Reads prefer the remote and fall back to the
// cache; writes land on the cache first and go to the remote best-effort.
// One Gateway is constructed at startup and passed to everything that
// persists (no package-level DB handle).
type Gateway struct {
	mu       sync.Mutex
	dsn      string
	remote   *gorm.DB // nil while the remote store is unreachable
	lastDial time.Time
	redial   time.Duration

	cache *gorm.DB // always present
}

// Open builds the gateway. The cache must open; the remote is optional.
// An unreachable remote at startup just means cache-only operation until
// a later call manages to redial.
func Open(dsn, cachePath string) (*Gateway, error) {
	cache, err := gorm.Open(sqlite.Open(cachePath), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := autoMigrate(cache); err != nil {
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	g := &Gateway{dsn: dsn, cache: cache, redial: 30 * time.Second}
	if dsn == "" {
		log.Println("DATABASE_DSN not set, running on local cache only")
		return g, nil
	}
	if g.remoteDB() == nil {
		log.Println("remote store unreachable at startup, serving from local cache")
	}
	return g, nil
}

// CacheDB exposes the local cache handle for collaborators that must stay
// available offline (idempotency guard, tests).
func (g *Gateway) CacheDB() *gorm.DB {
	return g.cache
}

// RemoteConnected reports whether a remote handle is currently held. It
// does not dial; an unreachable remote shows as disconnected until the
// next operation redials.
func (g *Gateway) RemoteConnected() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remote != nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ProductItem{},
		&models.Sale{},
		&models.Purchase{},
		&models.Client{},
		&models.Employee{},
		&models.User{},
		&models.AuditLog{},
		&models.IdempotencyKey{},
	)
}

// remoteDB returns the remote handle, redialing on an interval after a
// failure so reads and writes resume transparently once the store is back.
func (g *Gateway) remoteDB() *gorm.DB {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.remote != nil {
		return g.remote
	}
	if g.dsn == "" {
		return nil
	}
	if !g.lastDial.IsZero() && time.Since(g.lastDial) < g.redial {
		return nil
	}
	g.lastDial = time.Now()

	db, err := gorm.Open(postgres.Open(g.dsn), gormConfig())
	if err != nil {
		log.Printf("remote store dial failed: %v", err)
		return nil
	}
	if err := autoMigrate(db); err != nil {
		log.Printf("remote store migration failed: %v", err)
		return nil
	}
	g.remote = db
	log.Println("remote store connected")
	return g.remote
}

// dropRemote forgets a handle whose queries started failing; the next
// operation redials.
func (g *Gateway) dropRemote() {
	g.mu.Lock()
	g.remote = nil
	g.mu.Unlock()
}

// writeBoth applies op to the cache, then best-effort to the remote store.
// Remote failures are logged and never surfaced to the caller; the domain
// layer treats persistence as fire-and-forget.
func (g *Gateway) writeBoth(entity string, op func(db *gorm.DB) error) {
	if err := op(g.cache); err != nil {
		log.Printf("cache %s write failed: %v", entity, err)
	}
	if db := g.remoteDB(); db != nil {
		if err := op(db); err != nil {
			log.Printf("remote %s write failed, will retry connection: %v", entity, err)
			g.dropRemote()
		}
	}
}
