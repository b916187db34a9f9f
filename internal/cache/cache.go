// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache implements the bounded per-title entry cache.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the default maximum number of cached titles.
const DefaultSize = 1000

// Cache memoizes resolved entries per title so that repeated lookups skip
// the seek and decompress work. It is bounded with least-recently-used
// eviction and is safe for concurrent use.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

// New returns a Cache holding at most size titles. A size of zero or less
// uses DefaultSize.
func New[V any](size int) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	l, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	return &Cache[V]{
		lru: l,
	}, nil
}

// Get returns the cached value for title.
func (c *Cache[V]) Get(title string) (V, bool) {
	return c.lru.Get(title)
}

// Add stores the value for title, evicting the least recently used title
// if the cache is full.
func (c *Cache[V]) Add(title string, v V) {
	c.lru.Add(title, v)
}

// Len returns the number of cached titles.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
