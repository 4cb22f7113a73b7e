package merge

// Value deep-copies v when it is a JSON-style map or slice and returns it
// unchanged otherwise.
func Value(v any) any {
	return cloneValue(v)
}
