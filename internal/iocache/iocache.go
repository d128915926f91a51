// Package iocache caches loaded datasets in a SQL backend.
package iocache

import (
	"sync"

	"github.com/huangsam/motionlens/internal/contract"
)

// CacheStoreManager manages the dataset CacheStore instance.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	dataset      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetDatasetStore returns the dataset CacheStore.
func (mgr *CacheStoreManager) GetDatasetStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.dataset
}
