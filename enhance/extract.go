package enhance

import (
	"regexp"
	"strings"
)

var addressRe = regexp.MustCompile("0x[0-9a-fA-F]{40}([^0-9a-fA-F]|$)")

// scanForAddresses returns every 40-hex-digit address embedded in str. The
// trailing boundary in the pattern keeps 64-hex transaction hashes from
// matching as an address plus garbage.
func scanForAddresses(str string) []string {
	result := addressRe.FindAllString(str, -1)
	if result == nil {
		return []string{}
	}
	for i := 0; i < len(result); i++ {
		result[i] = result[i][0:42]
	}
	return result
}

// ExtractAddresses walks an arbitrary decoded-JSON tree and collects every
// address found in its string values, deduplicated by lowercase form. Order
// is not significant.
func ExtractAddresses(payload interface{}) []string {
	seen := map[string]bool{}
	result := []string{}
	var walk func(node interface{})
	walk = func(node interface{}) {
		switch v := node.(type) {
		case string:
			for _, addr := range scanForAddresses(v) {
				lower := strings.ToLower(addr)
				if !seen[lower] {
					seen[lower] = true
					result = append(result, lower)
				}
			}
		case map[string]interface{}:
			for _, child := range v {
				walk(child)
			}
		case []interface{}:
			for _, child := range v {
				walk(child)
			}
		}
	}
	walk(payload)
	return result
}
