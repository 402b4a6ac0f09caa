package types

import "strings"

// NormalizeName trims leading and trailing whitespace from a dish name.
// Dish equality is exact string match on the normalized form.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateName returns the normalized name, or ErrInvalidName when nothing
// is left after trimming.
func ValidateName(name string) (string, error) {
	n := NormalizeName(name)
	if n == "" {
		return "", ErrInvalidName
	}
	return n, nil
}

// Dedupe normalizes names, drops empty ones, and keeps only the first
// occurrence of each name. Order is preserved. The second return value
// reports how many entries were dropped.
func Dedupe(names []string) ([]string, int) {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	dropped := 0
	for _, raw := range names {
		n := NormalizeName(raw)
		if n == "" {
			dropped++
			continue
		}
		if _, ok := seen[n]; ok {
			dropped++
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, dropped
}

// DefaultMenu is seeded into an empty store when seeding is enabled.
var DefaultMenu = []string{
	"宫保鸡丁", "麻婆豆腐", "水煮鱼", "回锅肉",
	"鱼香肉丝", "糖醋里脊", "清炒时蔬", "酸辣汤",
	"红烧肉", "京酱肉丝",
}
