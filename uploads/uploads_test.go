package uploads

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// smallest valid lossy webp, 1x1 pixel
var webp1x1 = []byte{
	0x52, 0x49, 0x46, 0x46, 0x24, 0x00, 0x00, 0x00,
	0x57, 0x45, 0x42, 0x50, 0x56, 0x50, 0x38, 0x20,
	0x18, 0x00, 0x00, 0x00, 0x30, 0x01, 0x00, 0x9D,
	0x01, 0x2A, 0x01, 0x00, 0x01, 0x00, 0x02, 0x00,
	0x34, 0x25, 0xA4, 0x00, 0x03, 0x70, 0x00, 0xFE,
	0xFB, 0xFD, 0x50, 0x00,
}

func TestWebPDecodes(t *testing.T) {
	img, err := imaging.Decode(bytes.NewReader(webp1x1))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("expected 1x1 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestWebPStoredAsJPEG(t *testing.T) {
	img, err := imaging.Decode(bytes.NewReader(webp1x1))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}

	out := filepath.Join(t.TempDir(), "out"+storageExt(".webp"))
	if err := imaging.Save(img, out); err != nil {
		t.Fatalf("save decoded webp: %v", err)
	}
}

func TestStorageExt(t *testing.T) {
	cases := map[string]string{
		".webp": ".jpg",
		".jpg":  ".jpg",
		".jpeg": ".jpeg",
		".png":  ".png",
		".gif":  ".gif",
	}
	for in, want := range cases {
		if got := storageExt(in); got != want {
			t.Errorf("storageExt(%q) = %q, want %q", in, got, want)
		}
	}
}
