package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxImageSize = 5 << 20

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// UploadImage accepts a multipart image and returns its hosted URL. With a
// Cloudinary URL configured the file goes there; otherwise it lands under the
// local public dir and is served from /public.
func UploadImage(cloudinaryURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/upload"
		defer handlePanic(c, route)

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file is required")
			return
		}

		if err := validateImageFile(file); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if cloudinaryURL != "" {
			url, err := uploadToCloudinary(c.Request.Context(), cloudinaryURL, file)
			if err != nil {
				log.Println("[UPLOAD] [ERROR] cloudinary upload failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "upload failed")
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": url})
			return
		}

		relPath, err := saveImage(file)
		if err != nil {
			log.Println("[UPLOAD] [ERROR] local save failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": "/public/" + relPath})
	}
}

func validateImageFile(file *multipart.FileHeader) error {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return fmt.Errorf("image file too large (max 5MB)")
	}
	return nil
}

func uploadToCloudinary(ctx context.Context, cloudinaryURL string, file *multipart.FileHeader) (string, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return "", err
	}

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := cld.Upload.Upload(uploadCtx, in, uploader.UploadParams{
		Folder: "products",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

func saveImage(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	filename := primitive.NewObjectID().Hex() + extension

	dir := filepath.Join(uploadRoot(), "uploads", "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", "products", filename)), nil
}
