package uploads

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"souq/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	_ "golang.org/x/image/webp" // register webp decoder
)

const uploadDir = "static/uploads"
const thumbWidth = 320

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// storageExt maps an upload extension to the stored format. WebP can
// be decoded but not re-encoded, so it is stored as JPEG.
func storageExt(ext string) string {
	if ext == ".webp" {
		return ".jpg"
	}
	return ext
}

// UploadImage stores a product/supplier/driver image and returns
// {url, publicId}. A fixed-width thumbnail is written next to the
// original for list views.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}
	ext := strings.ToLower(filepath.Ext(utils.SanitizeFilename(header.Filename)))
	if !allowedExtensions[ext] {
		http.Error(w, "Unsupported file extension", http.StatusBadRequest)
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "Could not decode image", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		log.Println("UploadImage mkdir error:", err)
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	publicID := utils.GetUUID()
	outExt := storageExt(ext)
	fullPath := filepath.Join(uploadDir, publicID+outExt)
	if err := imaging.Save(img, fullPath); err != nil {
		log.Println("UploadImage save error:", err)
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(uploadDir, publicID+"_thumb"+outExt)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Println("UploadImage thumbnail error:", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"url":      fmt.Sprintf("/static/uploads/%s%s", publicID, outExt),
		"thumbUrl": fmt.Sprintf("/static/uploads/%s_thumb%s", publicID, outExt),
		"publicId": publicID,
	})
}
