package utils

func MapSlice[T any, R any](input []T, fn func(T) R) []R {
	if input == nil {
		return nil
	}

	result := make([]R, len(input))
	for i, v := range input {
		result[i] = fn(v)
	}
	return result
}

func FilterSlice[T any](input []T, fn func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if fn(v) {
			result = append(result, v)
		}
	}
	return result
}

func EmptyIfNil[T any](input []T) []T {
	if input == nil {
		return make([]T, 0)
	}
	return input
}
