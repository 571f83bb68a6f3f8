package workspace

import (
	"fmt"
	"strings"
)

// TagRule restricts the tags a window may live on. The zero value allows
// every tag.
type TagRule struct {
	tags []uint32
}

// AllTags returns a rule that allows any tag.
func AllTags() TagRule {
	return TagRule{}
}

// OnlyTags returns a rule that confines a window to tags. Order matters: a
// request for a tag outside the set resolves to the first one. An empty set is
// the same as AllTags.
func OnlyTags(tags ...uint32) TagRule {
	if len(tags) == 0 {
		return TagRule{}
	}
	seen := make(map[uint32]struct{}, len(tags))
	out := make([]uint32, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return TagRule{tags: out}
}

func (r TagRule) IsAll() bool {
	return len(r.tags) == 0
}

// Tags returns the allowed tags in configured order, or nil for AllTags.
func (r TagRule) Tags() []uint32 {
	return append([]uint32(nil), r.tags...)
}

func (r TagRule) Allows(tag uint32) bool {
	if r.IsAll() {
		return true
	}
	for _, t := range r.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Resolve returns the tag a window governed by r ends up on when requested is
// asked for.
func (r TagRule) Resolve(requested uint32) uint32 {
	if r.Allows(requested) {
		return requested
	}
	return r.tags[0]
}

func (r TagRule) String() string {
	if r.IsAll() {
		return "all"
	}
	parts := make([]string, len(r.tags))
	for i, t := range r.tags {
		parts[i] = fmt.Sprint(t)
	}
	return "only[" + strings.Join(parts, ",") + "]"
}
