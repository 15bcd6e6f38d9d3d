/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package tagindex maintains the bidirectional mapping between cache keys
// and their optional tag: tag to set-of-keys forward, key to tag reverse.
// A key belongs to at most one tag; re-tagging a key replaces the prior
// membership atomically.
package tagindex

// MatchAll is the pattern shorthand that matches every key without
// engaging the regex engine.
const MatchAll = "*"

// TagIndex is a thread-safe bidirectional key/tag mapping. Readers run
// concurrently; writers are exclusive. Key lists returned by readers are
// snapshots independent of later mutations.
type TagIndex interface {
	// AddOrUpdate binds key to tag, dropping any prior binding of key. A
	// tag whose key set becomes empty is removed from the index.
	AddOrUpdate(key, tag string)

	// Remove drops key from the index. Unknown keys are ignored.
	Remove(key string)

	// Tag returns the tag key belongs to, or false if the key is untagged.
	Tag(key string) (string, bool)

	// Tags returns a snapshot of every tag currently holding at least one key.
	Tags() []string

	// GetTaggedKeys returns the keys bound to tag whose name matches
	// pattern, case-insensitively. A nil result means the tag is unknown
	// or the pattern does not compile as a regex; an empty non-nil result
	// means the tag exists but no key matched. Pattern MatchAll
	// short-circuits and returns every key of the tag.
	GetTaggedKeys(tag, pattern string) []string

	// Clear empties the whole index.
	Clear()
}

// New returns an empty TagIndex.
func New() TagIndex {
	return &idx{
		fwd: make(map[string]map[string]struct{}),
		rev: make(map[string]string),
	}
}
