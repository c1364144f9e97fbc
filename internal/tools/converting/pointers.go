package converting

// ValueOr returns fallback when x is nil.
func ValueOr[T any](x *T, fallback T) T {
	if x == nil {
		return fallback
	}

	return *x
}

func PointerToValue[T any](v T) *T {
	return &v
}
