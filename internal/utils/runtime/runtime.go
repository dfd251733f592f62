package runtime

// Must panics if err is non-nil. Used for startup-time wiring that cannot
// meaningfully continue on failure (e.g. env binding).
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
