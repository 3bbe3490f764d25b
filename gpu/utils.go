package gpu

import "fmt"

// The C side of the binding expects NUL terminated strings. Extension and
// layer names coming from Go configuration have to be escaped before they
// cross the boundary.

func safeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

func safeStrings(sgs []string) []string {
	safe := []string{}
	for _, s := range sgs {
		safe = append(safe, fmt.Sprintf("%s\x00", s))
	}
	return safe
}
