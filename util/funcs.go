package util

func Map[A, B any](slice []A, f func(A) B) []B {
	mapped := make([]B, 0, len(slice))
	for _, v := range slice {
		mapped = append(mapped, f(v))
	}
	return mapped
}

// Named is anything declared by name, like a sort
type Named interface {
	Name() string
}

func Names[A Named](slice []A) []string {
	return Map(slice, func(a A) string { return a.Name() })
}
