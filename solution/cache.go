package solution

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/willibrandon/slingshot/observability"
)

// DefaultCacheSize is the number of parsed documents kept per document kind.
const DefaultCacheSize = 256

// cacheKey identifies one version of a file on disk.
type cacheKey struct {
	path    string
	size    int64
	modTime int64
}

// Cache keeps parsed project and container documents so a file reachable from
// several containers, or from several solutions in one process, is decoded once.
// A nil *Cache is valid and disables caching.
type Cache struct {
	projects   *lru.Cache[cacheKey, *vsProjectDocument]
	containers *lru.Cache[cacheKey, *etpDocument]
}

// NewCache creates a cache holding up to size documents of each kind.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	projects, err := lru.New[cacheKey, *vsProjectDocument](size)
	if err != nil {
		return nil, fmt.Errorf("create project cache: %w", err)
	}
	containers, err := lru.New[cacheKey, *etpDocument](size)
	if err != nil {
		return nil, fmt.Errorf("create container cache: %w", err)
	}
	return &Cache{projects: projects, containers: containers}, nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.projects.Len() + c.containers.Len()
}

// Purge drops every cached document.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.projects.Purge()
	c.containers.Purge()
}

func statKey(path string) (cacheKey, error) {
	info, err := os.Stat(path)
	if err != nil {
		return cacheKey{}, err
	}
	return cacheKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()}, nil
}

// load is the read-through path shared by both document kinds.
func load[T any](cache *lru.Cache[cacheKey, *T], path string) (*T, error) {
	key, err := statKey(path)
	if err != nil {
		return nil, err
	}
	if doc, ok := cache.Get(key); ok {
		observability.DocumentCacheTotal.WithLabelValues("hit").Inc()
		return doc, nil
	}
	observability.DocumentCacheTotal.WithLabelValues("miss").Inc()

	doc, err := decodeFile[T](path)
	if err != nil {
		return nil, err
	}
	cache.Add(key, doc)
	return doc, nil
}

func decodeFile[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := new(T)
	if err := decodeXML(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Cache) project(path string) (*vsProjectDocument, error) {
	if c == nil {
		return decodeFile[vsProjectDocument](path)
	}
	return load(c.projects, path)
}

func (c *Cache) container(path string) (*etpDocument, error) {
	if c == nil {
		return decodeFile[etpDocument](path)
	}
	return load(c.containers, path)
}
