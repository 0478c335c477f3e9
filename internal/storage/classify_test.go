package storage

import "testing"

func TestExtOf(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"photo.PNG", "png"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"trailingdot.", ""},
		{"dir/file.JPeG", "jpeg"},
	}
	for _, c := range cases {
		if got := ExtOf(c.name); got != c.want {
			t.Errorf("ExtOf(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		ext        string
		wantMime   string
		wantMethod string
		wantField  string
	}{
		{"png", "image/png", MethodPhoto, "photo"},
		{"JPG", "image/jpeg", MethodPhoto, "photo"},
		{".gif", "image/gif", MethodPhoto, "photo"},
		{"mp4", "video/mp4", MethodVideo, "video"},
		{"mp3", "audio/mpeg", MethodAudio, "audio"},
		{"pdf", "application/pdf", MethodDocument, "document"},
		{"txt", "text/plain; charset=utf-8", MethodDocument, "document"},
		{"xyz", "application/octet-stream", MethodDocument, "document"},
		{"", "application/octet-stream", MethodDocument, "document"},
	}
	for _, c := range cases {
		got := Classify(c.ext)
		if got.MimeType != c.wantMime {
			t.Errorf("Classify(%q).MimeType = %q, want %q", c.ext, got.MimeType, c.wantMime)
		}
		if got.Method != c.wantMethod {
			t.Errorf("Classify(%q).Method = %q, want %q", c.ext, got.Method, c.wantMethod)
		}
		if got.Field != c.wantField {
			t.Errorf("Classify(%q).Field = %q, want %q", c.ext, got.Field, c.wantField)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	got := Classify("definitely-unknown")
	if got.MimeType == "" || got.Method == "" || got.Field == "" {
		t.Fatalf("Classify must always return a complete classification, got %+v", got)
	}
}
