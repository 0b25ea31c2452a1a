package domaintrie

import (
	"sort"
	"strings"
)

const (
	// prefixLabel marks a suffix pattern stored with a leading dot (only
	// subdomains match, not the bare domain).
	prefixLabel = '\r'
	// rootLabel marks a suffix pattern stored without a leading dot (both
	// the bare domain and its subdomains match).
	rootLabel = '\n'
)

// Matcher answers domain-suffix and exact-domain membership queries against
// a succinct trie built once from a domain list.
type Matcher struct {
	set *set
}

// NewMatcher builds a Matcher from a list of exact-match domains and a list
// of suffix-match domains. A suffix entry beginning with "." matches only
// subdomains; any other suffix entry matches both the bare domain and its
// subdomains.
func NewMatcher(domains []string, domainSuffix []string) *Matcher {
	if len(domains) == 0 && len(domainSuffix) == 0 {
		return &Matcher{set: newSet(nil)}
	}

	domainList := make([]string, 0, len(domains)+len(domainSuffix))
	seen := make(map[string]bool, len(domains)+len(domainSuffix))

	for _, d := range domainSuffix {
		d = strings.ToLower(d)
		if seen[d] {
			continue
		}
		seen[d] = true

		if strings.HasPrefix(d, ".") {
			domainList = append(domainList, reverseDomain(string(prefixLabel)+d))
		} else {
			domainList = append(domainList, reverseDomain(string(rootLabel)+d))
		}
	}

	for _, d := range domains {
		d = strings.ToLower(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		domainList = append(domainList, reverseDomain(d))
	}

	sort.Strings(domainList)
	return &Matcher{set: newSet(domainList)}
}

// Match reports whether domain satisfies any rule the Matcher was built
// from: an exact match, a suffix-list bare-domain match, or a subdomain of
// a suffix-list entry.
func (m *Matcher) Match(domain string) bool {
	if m.set == nil || m.set.empty() {
		return false
	}
	domain = strings.ToLower(domain)
	return m.has(reverseDomain(domain))
}

func (m *Matcher) has(key string) bool {
	if m.set.empty() {
		return false
	}

	var nodeID, bmIdx int

	for i := 0; i < len(key); i++ {
		currentChar := key[i]

		for {
			if m.set.bounds.get(bmIdx) {
				return false
			}

			labelIdx := bmIdx - nodeID
			if labelIdx < 0 || labelIdx >= len(m.set.labels) {
				return false
			}
			nextLabel := m.set.labels[labelIdx]

			if nextLabel == prefixLabel {
				return true
			}
			if nextLabel == rootLabel {
				nextNodeID := m.set.bounds.zerosBefore(bmIdx + 1)
				if currentChar == '.' && m.set.leaves.get(nextNodeID) {
					return true
				}
			}
			if nextLabel == currentChar {
				break
			}
			bmIdx++
		}

		nodeID = m.set.bounds.zerosBefore(bmIdx + 1)
		if nodeID <= 0 {
			return false
		}
		pos, ok := m.set.bounds.selectOne(nodeID - 1)
		if !ok {
			return false
		}
		bmIdx = pos + 1
	}

	if m.set.leaves.get(nodeID) {
		return true
	}

	for {
		if m.set.bounds.get(bmIdx) {
			return false
		}
		labelIdx := bmIdx - nodeID
		if labelIdx < 0 || labelIdx >= len(m.set.labels) {
			return false
		}
		nextLabel := m.set.labels[labelIdx]
		if nextLabel == prefixLabel || nextLabel == rootLabel {
			return true
		}
		bmIdx++
	}
}
