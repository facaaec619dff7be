package services

import "testing"

func TestDeliveryURL(t *testing.T) {
	us := NewUploadService("demo", "key", "secret")
	got := us.deliveryURL("abc123", "mp4", 1920, 1080)
	want := "https://res.cloudinary.com/demo/video/upload/c_fill,h_1080,w_1920/abc123.mp4"
	if got != want {
		t.Errorf("deliveryURL = %q, want %q", got, want)
	}
}

func TestSign(t *testing.T) {
	us := NewUploadService("demo", "key", "abcd")
	// sha1("timestamp=1315060510abcd")
	got := us.sign("1315060510")
	if len(got) != 40 {
		t.Fatalf("signature should be 40 hex chars, got %d", len(got))
	}
	if got != us.sign("1315060510") {
		t.Error("signature must be deterministic")
	}
	if got == us.sign("1315060511") {
		t.Error("signature must depend on the timestamp")
	}
}
