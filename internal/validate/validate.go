package validate

// Present reports whether every value is non-empty. Required fields must pass it
// before any store access.
func Present(vals ...string) bool {
	for _, v := range vals {
		if v == "" {
			return false
		}
	}
	return true
}

// ID validates a path identifier: the store assigns ids from 1 upwards.
func ID(id int64) (int64, bool) {
	return id, id > 0
}
