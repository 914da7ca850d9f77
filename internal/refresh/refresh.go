// Package refresh drops the cached corpus when the store may have changed.
//
// A local store is watched with fsnotify; a remote store, which offers no
// change notifications, is invalidated on a fixed interval.
package refresh

// Invalidator discards cached state. *corpus.Cache satisfies it.
type Invalidator interface {
	Invalidate()
}

// Hook runs after each invalidation.
type Hook func()
