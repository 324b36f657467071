package storage

import (
	"net/url"
	"testing"
	"time"
)

func TestUploadObjectKey(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	got := UploadObjectKey(now, "req-1", "clip.WEBM")
	if got != "uploads/2024/03/09/req-1.webm" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRewriteHost(t *testing.T) {
	u, _ := url.Parse("http://minio:9000/bucket/uploads/a.webm?X-Amz-Signature=abc")

	if got := rewriteHost(u, ""); got != u.String() {
		t.Fatalf("expected unchanged url, got %q", got)
	}

	got := rewriteHost(u, "https://files.example.com")
	if got != "https://files.example.com/bucket/uploads/a.webm?X-Amz-Signature=abc" {
		t.Fatalf("unexpected rewritten url %q", got)
	}
}
