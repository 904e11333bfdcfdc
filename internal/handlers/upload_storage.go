package handlers

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var publicRootDir = "./public"

// SetUploadRoot points local image storage at the configured public dir.
func SetUploadRoot(dir string) {
	if trimmed := strings.TrimSpace(dir); trimmed != "" {
		publicRootDir = trimmed
	}
}

func uploadRoot() string {
	return publicRootDir
}

// safeDeleteUpload removes a locally stored image. Hosted URLs and anything
// outside the uploads tree are left alone.
func safeDeleteUpload(imageRef string) error {
	trimmed := strings.TrimSpace(imageRef)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return nil
	}

	trimmed = strings.TrimPrefix(trimmed, "/public")
	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")

	if !strings.HasPrefix(cleanRel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", imageRef)
	}

	cleanBase := filepath.Clean(publicRootDir)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(cleanRel))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget != cleanBase && !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside public root: %s", imageRef)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}
