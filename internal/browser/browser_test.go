package browser

import (
	"strings"
	"testing"
)

func TestOpenRejectsNonHTTPSchemes(t *testing.T) {
	for _, raw := range []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"ftp://example.com/x",
	} {
		err := Open(raw)
		if err == nil {
			t.Errorf("expected %q to be rejected", raw)
			continue
		}
		if !strings.Contains(err.Error(), "scheme") {
			t.Errorf("expected scheme error for %q, got: %v", raw, err)
		}
	}
}

func TestOpenRejectsUnparsableURL(t *testing.T) {
	if err := Open("http://exa mple.com"); err == nil {
		t.Error("expected error for unparsable URL")
	}
}
