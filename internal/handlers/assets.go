package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"poddock/internal/db"
	"poddock/internal/models"
)

const maxUploadBytes = 500 << 20 // hard cap on a single upload

var allowedContentTypes = map[string]map[string]string{
	db.AssetTypeAudio: {
		"audio/mpeg": ".mp3",
		"audio/mp4":  ".m4a",
		"audio/wav":  ".wav",
	},
	db.AssetTypeImage: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	},
}

type createUploadRequest struct {
	Type        string `json:"type"`
	ContentType string `json:"content_type"`
	ByteSize    int64  `json:"byte_size"`
}

// CreateUpload opens a two-phase upload: the asset row is written first, the
// bytes come in a separate PUT, and CompleteUpload verifies they landed.
func (h *Handlers) CreateUpload(w http.ResponseWriter, r *http.Request) {
	var req createUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errValidation("Invalid request body"))
		return
	}

	extensions, ok := allowedContentTypes[req.Type]
	if !ok {
		writeError(w, errValidation("Invalid request",
			ErrorDetail{Field: "type", Reason: "must be audio or image"}))
		return
	}
	ext, ok := extensions[req.ContentType]
	if !ok {
		writeError(w, NewAppError(http.StatusBadRequest, "invalid_content_type",
			fmt.Sprintf("Content type %q is not allowed for %s uploads", req.ContentType, req.Type)))
		return
	}
	if req.ByteSize <= 0 || req.ByteSize > maxUploadBytes {
		writeError(w, errValidation("Invalid request",
			ErrorDetail{Field: "byte_size", Reason: fmt.Sprintf("must be between 1 and %d", maxUploadBytes)}))
		return
	}

	assetID := uuid.NewString()
	key := fmt.Sprintf("%s/%s%s", req.Type, assetID, ext)

	asset, err := db.CreateAsset(&models.Asset{
		ID:              assetID,
		Type:            req.Type,
		StorageProvider: "s3",
		StorageBucket:   h.store.Bucket(),
		StorageKey:      key,
		PublicURL:       h.store.PublicURL(key),
		ContentType:     req.ContentType,
		ByteSize:        req.ByteSize,
		CreatedAt:       h.now().UTC(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"asset_id":   asset.ID,
		"upload_url": fmt.Sprintf("%s/api/assets/%s/upload", h.baseURL, asset.ID),
		"public_url": asset.PublicURL,
	})
}

// UploadAsset receives the raw bytes for a pending asset and streams them to
// the object store. The Content-Type must match what the upload was opened
// with.
func (h *Handlers) UploadAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := db.GetAssetByID(mux.Vars(r)["assetId"])
	if err != nil {
		writeError(w, errNotFound("Asset not found"))
		return
	}

	if ct := r.Header.Get("Content-Type"); ct != "" && ct != asset.ContentType {
		writeError(w, errValidation("Invalid request",
			ErrorDetail{Field: "content_type", Reason: "does not match the declared upload"}))
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := h.store.Put(r.Context(), asset.StorageKey, body, asset.ContentType); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteUpload confirms the bytes exist in the store before the asset can
// be referenced. An asset whose object never arrived is rejected here.
func (h *Handlers) CompleteUpload(w http.ResponseWriter, r *http.Request) {
	asset, err := db.GetAssetByID(mux.Vars(r)["assetId"])
	if err != nil {
		writeError(w, errNotFound("Asset not found"))
		return
	}

	var req struct {
		Checksum *string `json:"checksum"`
	}
	if r.Body != nil {
		// Body is optional; a decode failure on an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	exists, err := h.store.Exists(r.Context(), asset.StorageKey)
	if err != nil {
		writeError(w, err)
		return
	}
	if !exists {
		writeError(w, NewAppError(http.StatusBadRequest, "upload_not_found",
			"No uploaded object found for this asset"))
		return
	}

	if req.Checksum != nil && *req.Checksum != "" {
		if err := db.SetAssetChecksum(asset.ID, *req.Checksum); err != nil {
			writeError(w, err)
			return
		}
		asset.Checksum = req.Checksum
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":           asset.ID,
		"type":         asset.Type,
		"public_url":   asset.PublicURL,
		"content_type": asset.ContentType,
		"byte_size":    asset.ByteSize,
		"checksum":     asset.Checksum,
		"created_at":   asset.CreatedAt,
	})
}

// DeleteAsset removes the stored object and then the row. Episodes that
// referenced the asset keep rendering; the feed drops them once the join
// comes back empty.
func (h *Handlers) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := db.GetAssetByID(mux.Vars(r)["assetId"])
	if err != nil {
		writeError(w, errNotFound("Asset not found"))
		return
	}

	if err := h.store.Delete(r.Context(), asset.StorageKey); err != nil {
		writeError(w, err)
		return
	}
	if err := db.DeleteAsset(asset.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
