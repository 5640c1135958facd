package compiler

import (
	radix "github.com/armon/go-radix"
)

// popularSuffixes enumerates popular top-level and second-level domain
// suffixes. The WebKit format has no wildcard domain constraint, so the
// "match any top-level domain" marker is expanded into this list. Static
// reference data; read-only after init.
var popularSuffixes = []string{
	"com", "org", "net", "edu", "gov", "mil", "int", "info", "biz", "io",
	"co", "me", "tv", "cc", "ws", "to", "fm", "am", "gg", "pw",
	"us", "uk", "co.uk", "org.uk", "me.uk", "ie", "de", "fr", "it", "es",
	"pt", "nl", "be", "lu", "ch", "at", "se", "no", "dk", "fi",
	"is", "pl", "cz", "sk", "hu", "ro", "bg", "gr", "hr", "si",
	"rs", "lt", "lv", "ee", "ru", "su", "ua", "by", "kz", "tr",
	"il", "co.il", "ae", "sa", "in", "co.in", "cn", "com.cn", "hk", "com.hk",
	"tw", "com.tw", "jp", "co.jp", "ne.jp", "kr", "co.kr", "sg", "com.sg", "my",
	"com.my", "th", "co.th", "vn", "com.vn", "id", "co.id", "ph", "com.ph", "au",
	"com.au", "net.au", "nz", "co.nz", "za", "co.za", "br", "com.br", "ar", "com.ar",
	"mx", "com.mx", "cl", "com.co", "pe", "ve", "ca", "eu", "asia", "app",
	"dev", "xyz", "online", "site", "top", "club", "shop", "store", "blog", "news",
	"live", "life", "world", "today", "tech", "space", "website", "fun", "icu", "vip",
	"work", "link", "click", "pro", "mobi", "name", "travel", "museum", "aero", "coop",
	"jobs", "cat", "tel", "post",
}

// suffixIndex holds the suffix table in a radix tree. Membership lookups are
// O(k) and a full walk visits keys in sorted order, which keeps the wildcard
// expansion deterministic across runs.
var suffixIndex = buildSuffixIndex()

func buildSuffixIndex() *radix.Tree {
	t := radix.New()
	for _, s := range popularSuffixes {
		t.Insert(s, struct{}{})
	}
	return t
}

// ExpandAnyDomainWildcard returns the enumerated suffix list the any-TLD
// wildcard stands for, in sorted order. The result is a fresh slice.
func ExpandAnyDomainWildcard() []string {
	expanded := make([]string, 0, suffixIndex.Len())
	suffixIndex.Walk(func(s string, _ interface{}) bool {
		expanded = append(expanded, s)
		return false
	})
	return expanded
}

// IsPopularSuffix reports whether s is one of the enumerated suffixes
func IsPopularSuffix(s string) bool {
	_, ok := suffixIndex.Get(s)
	return ok
}
