package handlers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeDeleteUploadIgnoresHostedURLs(t *testing.T) {
	if err := safeDeleteUpload("https://res.cloudinary.com/demo/image/upload/v1/shirt.jpg"); err != nil {
		t.Fatalf("hosted URL should be a no-op, got %v", err)
	}
	if err := safeDeleteUpload("http://example.com/img.png"); err != nil {
		t.Fatalf("hosted URL should be a no-op, got %v", err)
	}
	if err := safeDeleteUpload(""); err != nil {
		t.Fatalf("empty ref should be a no-op, got %v", err)
	}
}

func TestSafeDeleteUploadRefusesNonUploadPaths(t *testing.T) {
	if err := safeDeleteUpload("/etc/passwd"); err == nil {
		t.Fatal("expected refusal for path outside uploads tree")
	}
	if err := safeDeleteUpload("uploads/../secrets.txt"); err == nil {
		t.Fatal("expected refusal for traversal out of uploads tree")
	}
}

func TestSafeDeleteUploadRemovesLocalFile(t *testing.T) {
	root := t.TempDir()
	prev := publicRootDir
	SetUploadRoot(root)
	defer SetUploadRoot(prev)

	dir := filepath.Join(root, "uploads", "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "img.jpg")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := safeDeleteUpload("/public/uploads/products/img.jpg"); err != nil {
		t.Fatalf("safeDeleteUpload: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}

	// Missing files are treated as already deleted.
	if err := safeDeleteUpload("uploads/products/img.jpg"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}
