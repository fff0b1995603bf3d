package chat

import "testing"

func TestPairKeyIsOrderIndependent(t *testing.T) {
	k1 := PairKey("wendy", "arif")
	k2 := PairKey("arif", "wendy")
	if k1 != k2 {
		t.Fatalf("expected identical keys, got %q and %q", k1, k2)
	}
	if k1 != "arif:wendy" {
		t.Fatalf("expected sorted key arif:wendy, got %q", k1)
	}
}

func strPtr(s string) *string { return &s }

func TestNewContentRejectsEmpty(t *testing.T) {
	if _, err := NewContent(nil, nil); err != ErrEmptyMessage {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	// Whitespace-only body counts as absent.
	if _, err := NewContent(strPtr("   \n\t "), nil); err != ErrEmptyMessage {
		t.Fatalf("expected ErrEmptyMessage for whitespace body, got %v", err)
	}
}

func TestNewContentRejectsBothBodyAndFile(t *testing.T) {
	file := &FileRef{Path: "/uploads/a.png", Name: "a.png"}
	if _, err := NewContent(strPtr("hi"), file); err != ErrAmbiguousContent {
		t.Fatalf("expected ErrAmbiguousContent, got %v", err)
	}
}

func TestNewContentRejectsIncompleteFileRef(t *testing.T) {
	if _, err := NewContent(nil, &FileRef{Name: "a.png"}); err != ErrIncompleteFileRef {
		t.Fatalf("expected ErrIncompleteFileRef for missing path, got %v", err)
	}
	if _, err := NewContent(nil, &FileRef{Path: "/uploads/a.png"}); err != ErrIncompleteFileRef {
		t.Fatalf("expected ErrIncompleteFileRef for missing name, got %v", err)
	}
}

func TestNewContentTrimsBody(t *testing.T) {
	content, err := NewContent(strPtr("  hello  "), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Body == nil || *content.Body != "hello" {
		t.Fatalf("expected trimmed body %q, got %v", "hello", content.Body)
	}
	if content.Kind() != KindText {
		t.Fatalf("expected kind %q, got %q", KindText, content.Kind())
	}
}

func TestNewContentFileOnly(t *testing.T) {
	file := &FileRef{Path: "/uploads/report.pdf", Name: "report.pdf", Size: 1024, MimeType: "application/pdf"}
	content, err := NewContent(nil, file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Kind() != KindFile {
		t.Fatalf("expected kind %q, got %q", KindFile, content.Kind())
	}
}

func TestMessagePreview(t *testing.T) {
	text := Message{Body: strPtr("see you at 5")}
	if got := text.Preview(); got != "see you at 5" {
		t.Fatalf("expected body preview, got %q", got)
	}
	file := Message{File: &FileRef{Path: "/uploads/x.zip", Name: "x.zip"}}
	if got := file.Preview(); got != "x.zip" {
		t.Fatalf("expected file-name preview, got %q", got)
	}
}
