// Package naming converts model-declared PascalCase identifiers into the
// snake_case names exposed on generated clients.
package naming

import (
	"regexp"
	"strings"
	"sync"
)

var (
	// "AccessKey" -> "Access_Key" boundaries inside a word.
	firstCapRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	// "Waiter1" -> "Waiter_1": digit runs after a lowercase letter.
	numberRe = regexp.MustCompile(`([a-z])([0-9]+)`)
	// "DescribeDB" -> "Describe_DB": trailing uppercase after lower/digit.
	endCapRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)

	cacheMu sync.RWMutex
	cache   = map[string]string{}
)

// ToSnake converts a PascalCase operation or waiter name to snake_case:
// "TestOperation" becomes "test_operation", "Waiter1" becomes "waiter_1",
// "DescribeDBInstances" becomes "describe_db_instances". The conversion is
// deterministic and results are cached.
func ToSnake(name string) string {
	cacheMu.RLock()
	s, ok := cache[name]
	cacheMu.RUnlock()
	if ok {
		return s
	}

	s = firstCapRe.ReplaceAllString(name, "${1}_${2}")
	s = numberRe.ReplaceAllString(s, "${1}_${2}")
	s = endCapRe.ReplaceAllString(s, "${1}_${2}")
	s = strings.ToLower(s)

	cacheMu.Lock()
	cache[name] = s
	cacheMu.Unlock()
	return s
}
