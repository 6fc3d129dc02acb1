package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/OpsDesk-io/opsdesk/internal/auth"
	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/storage"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

// maxUploadSize caps a single document upload at 50 MiB.
const maxUploadSize = 50 << 20

// clientFromURL resolves the {clientID} segment to an existing client id.
// Every document route runs through this so documents of a deleted client
// are unreachable even if storage cleanup lagged.
func (api *Api) clientFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	clientID, err := urlID(r, "clientID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return 0, false
	}
	if _, err := api.Store.GetClient(r.Context(), clientID); err != nil {
		respondStoreError(w, err)
		return 0, false
	}
	return clientID, true
}

func (api *Api) ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	clientID, ok := api.clientFromURL(w, r)
	if !ok {
		return
	}

	documents, err := api.Store.ListDocuments(r.Context(), clientID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, documents)
}

// UploadDocumentHandler accepts a multipart form with a "file" field and
// files it into the client's folder.
func (api *Api) UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	clientID, ok := api.clientFromURL(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, http.StatusBadRequest, "file name is required")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.DocumentKey(clientID, header.Filename)
	size, err := api.Storage.Save(r.Context(), key, file, contentType)
	if err != nil {
		log.Printf("failed to store upload for client %d: %v", clientID, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	doc := &models.Document{
		ClientID:    clientID,
		FileName:    header.Filename,
		StorageKey:  key,
		Size:        size,
		ContentType: contentType,
		UploadedBy:  identity.UserID,
	}
	if err := api.Store.CreateDocument(r.Context(), doc); err != nil {
		// The bytes are already on disk; remove them so a failed insert does
		// not leak an orphaned object.
		if cleanupErr := api.Storage.Delete(r.Context(), key); cleanupErr != nil {
			log.Printf("failed to clean up orphaned object %s: %v", key, cleanupErr)
		}
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

func (api *Api) DownloadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	clientID, ok := api.clientFromURL(w, r)
	if !ok {
		return
	}

	id, err := urlID(r, "docID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := api.Store.GetDocument(r.Context(), id, clientID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	object, err := api.Storage.Open(r.Context(), doc.StorageKey)
	if err != nil {
		log.Printf("failed to open stored object %s: %v", doc.StorageKey, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer object.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	if doc.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", doc.Size))
	}
	if _, err := io.Copy(w, object); err != nil {
		log.Printf("failed to stream document %d: %v", doc.ID, err)
	}
}

// DeleteDocumentHandler removes the stored object first, then the row. A
// missing object is tolerated so a half-deleted document can be retried.
func (api *Api) DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	clientID, ok := api.clientFromURL(w, r)
	if !ok {
		return
	}

	id, err := urlID(r, "docID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := api.Store.GetDocument(r.Context(), id, clientID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if err := api.Storage.Delete(r.Context(), doc.StorageKey); err != nil {
		log.Printf("failed to delete stored object %s: %v", doc.StorageKey, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := api.Store.DeleteDocument(r.Context(), id, clientID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			respondStoreError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
