package domaintrie

import "testing"

func TestMatcherBasicMatching(t *testing.T) {
	tests := []struct {
		name         string
		domains      []string
		domainSuffix []string
		testDomain   string
		shouldMatch  bool
	}{
		{
			name:        "exact match",
			domains:     []string{"google.com"},
			testDomain:  "google.com",
			shouldMatch: true,
		},
		{
			name:        "exact no match",
			domains:     []string{"google.com"},
			testDomain:  "mail.google.com",
			shouldMatch: false,
		},
		{
			name:         "suffix match - subdomain",
			domainSuffix: []string{"google.com"},
			testDomain:   "mail.google.com",
			shouldMatch:  true,
		},
		{
			name:         "suffix match - exact",
			domainSuffix: []string{"google.com"},
			testDomain:   "google.com",
			shouldMatch:  true,
		},
		{
			name:         "suffix with dot - subdomain only",
			domainSuffix: []string{".google.com"},
			testDomain:   "mail.google.com",
			shouldMatch:  true,
		},
		{
			name:         "suffix with dot - not exact",
			domainSuffix: []string{".google.com"},
			testDomain:   "google.com",
			shouldMatch:  false,
		},
		{
			name:         "no match",
			domains:      []string{"google.com"},
			domainSuffix: []string{"baidu.com"},
			testDomain:   "bing.com",
			shouldMatch:  false,
		},
		{
			name:        "case insensitive",
			domains:     []string{"Google.COM"},
			testDomain:  "google.com",
			shouldMatch: true,
		},
		{
			name:         "multiple levels subdomain",
			domainSuffix: []string{"google.com"},
			testDomain:   "a.b.c.google.com",
			shouldMatch:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(tt.domains, tt.domainSuffix)
			if got := m.Match(tt.testDomain); got != tt.shouldMatch {
				t.Errorf("Match(%q) = %v, want %v", tt.testDomain, got, tt.shouldMatch)
			}
		})
	}
}

func TestMatcherEmptyInput(t *testing.T) {
	m := NewMatcher(nil, nil)
	if m.Match("google.com") {
		t.Error("empty matcher should not match anything")
	}
}

func TestMatcherLargeDomainList(t *testing.T) {
	suffixes := []string{"examplea.com", "exampleb.com", "examplec.com"}
	m := NewMatcher(nil, suffixes)

	if !m.Match("examplea.com") {
		t.Error("should match exact domain")
	}
	if !m.Match("sub.examplea.com") {
		t.Error("should match subdomain of first suffix")
	}
	if m.Match("notinlist.com") {
		t.Error("should not match domain not in list")
	}
}

func TestMatcherSpecialCharacters(t *testing.T) {
	m := NewMatcher(nil, []string{"example-test.com", "example_test.com"})

	tests := []struct {
		domain      string
		shouldMatch bool
	}{
		{"example-test.com", true},
		{"sub.example-test.com", true},
		{"example_test.com", true},
		{"sub.example_test.com", true},
		{"example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := m.Match(tt.domain); got != tt.shouldMatch {
				t.Errorf("Match(%q) = %v, want %v", tt.domain, got, tt.shouldMatch)
			}
		})
	}
}

func BenchmarkMatcherMatchHitFirst(b *testing.B) {
	suffixes := make([]string, 1000)
	for i := range suffixes {
		suffixes[i] = "example" + string(rune('a'+i%26)) + ".com"
	}
	m := NewMatcher(nil, suffixes)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Match("sub.examplea.com")
	}
}

func BenchmarkMatcherMatchMiss(b *testing.B) {
	suffixes := make([]string, 1000)
	for i := range suffixes {
		suffixes[i] = "example" + string(rune('a'+i%26)) + ".com"
	}
	m := NewMatcher(nil, suffixes)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Match("notfound.com")
	}
}

func BenchmarkMatcherConstruction(b *testing.B) {
	suffixes := make([]string, 1000)
	for i := range suffixes {
		suffixes[i] = "example" + string(rune('a'+i%26)) + ".com"
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NewMatcher(nil, suffixes)
	}
}
