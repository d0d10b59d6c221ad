//go:build cache

package main

import "pdp11sim/cache"

func newCache() *cache.Cache {
	return cache.New()
}
