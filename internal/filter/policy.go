// Package filter decides which directory entries take part in a scan.
package filter

import (
	"strings"

	"github.com/temirov/projmap/internal/types"
)

// Policy applies the skip-lists and the type suffix allow-list of a FilterSpec.
type Policy struct {
	skipFolders    map[string]struct{}
	skipFiles      map[string]struct{}
	typeConfigured bool
	typeSuffixes   []string
}

// NewPolicy prepares the lookups for spec. Type suffixes are trimmed and
// lower-cased once; blank suffixes are dropped but still count as a configured
// type list.
func NewPolicy(spec types.FilterSpec) Policy {
	policy := Policy{
		skipFolders:    toSet(spec.SkipFolders),
		skipFiles:      toSet(spec.SkipFiles),
		typeConfigured: len(spec.NecessaryTypes) > 0,
	}
	for _, rawSuffix := range spec.NecessaryTypes {
		suffix := strings.ToLower(strings.TrimSpace(rawSuffix))
		if suffix == "" {
			continue
		}
		policy.typeSuffixes = append(policy.typeSuffixes, suffix)
	}
	return policy
}

// ShouldSkip reports whether an entry is excluded by exact name. Directories
// are matched against the folder skip-list and files against the file skip-list.
func (policy Policy) ShouldSkip(entryName string, isDirectory bool) bool {
	if isDirectory {
		_, skipped := policy.skipFolders[entryName]
		return skipped
	}
	_, skipped := policy.skipFiles[entryName]
	return skipped
}

// MatchesType reports whether fileName ends with one of the configured suffixes,
// ignoring case. This is a plain suffix test rather than an extension test:
// "pom.xml" matches "child-pom.xml". Without a configured type list every name matches.
func (policy Policy) MatchesType(fileName string) bool {
	if !policy.typeConfigured {
		return true
	}
	lowerName := strings.ToLower(fileName)
	for _, suffix := range policy.typeSuffixes {
		if strings.HasSuffix(lowerName, suffix) {
			return true
		}
	}
	return false
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
