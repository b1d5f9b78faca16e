// Package collections has small generic slice helpers.
package collections

// Apply applies the applicator function to each item in the input slice.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}

	return result
}

// ApplyErr is Apply for applicators that can fail. It stops at the first
// error and returns it together with the index of the failing item.
func ApplyErr[T, V any](items []T, applicator func(int, T) (V, error)) ([]V, int, error) {
	result := make([]V, 0, len(items))
	for i, item := range items {
		v, err := applicator(i, item)
		if err != nil {
			return nil, i, err
		}
		result = append(result, v)
	}

	return result, -1, nil
}
