package meta

// IsOptionsCheck reports whether c was installed from PropertyOptions.Check.
// Exported for use in meta_test package.
func IsOptionsCheck(c Check) bool { return c.fromOptions }
