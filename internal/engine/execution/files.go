package execution

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ReadFile returns the contents of path, reading it at most once per context.
// A read failure is fatal, both on the first read and on every later request
// for the same path.
func (c *Context) ReadFile(ctx context.Context, path string) string {
	content, hit, err := c.contents.Do(path, func() (string, error) {
		_, span := c.startSpan(ctx, "read file")
		defer span.End()
		span.SetAttribute("kiln.path", path)

		c.VerbosePrint("reading file: " + path)
		content, err := c.files.ReadFile(path)
		if err != nil {
			span.RecordError(err)
		}
		return content, err
	})
	if hit {
		c.VerbosePrint("(cached) reading file: " + path)
	}
	if err != nil {
		c.Fatal(fmt.Sprintf("failed to read %s: %v", path, err))
		return ""
	}
	return content
}

// PathExists reports whether path exists, checking it at most once per context.
func (c *Context) PathExists(path string) bool {
	exists, _, _ := c.exists.Do(path, func() (bool, error) {
		return c.files.Exists(path), nil
	})
	return exists
}

// ContentHash returns the xxhash64 digest of the memoized contents of path as
// 16 lowercase hex digits.
func (c *Context) ContentHash(ctx context.Context, path string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(c.ReadFile(ctx, path)))
}
