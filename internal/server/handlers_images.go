package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
)

type avatarGenerateRequest struct {
	Gender     string `json:"gender"`
	Age        string `json:"age"`
	Appearance string `json:"appearance"`
}

func (s *Server) handleGenerateBotImage(w http.ResponseWriter, r *http.Request) {
	if s.images == nil || s.host == nil {
		writeFailure(w, http.StatusServiceUnavailable, "image generation is not configured")
		return
	}

	var req avatarGenerateRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	spec := AvatarRequest{
		Gender:     valueOr(req.Gender, "person"),
		Age:        valueOr(req.Age, "20"),
		Appearance: valueOr(req.Appearance, "average"),
	}

	image, err := s.images.Generate(r.Context(), spec)
	if err != nil {
		if errors.Is(err, ErrImageFiltered) {
			writeFailure(w, http.StatusBadRequest, "Image generation was filtered for safety. Try a different prompt.")
			return
		}
		log.Printf("avatar generation failed err=%v", err)
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	url, err := s.host.Upload(r.Context(), bytes.NewReader(image), avatarFolder, "bot_"+randomDigits(10))
	if err != nil {
		log.Printf("avatar upload failed err=%v", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to upload image.")
		return
	}

	log.Printf("avatar generated image_url=%s", url)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"image_url": url,
	})
}

func (s *Server) handleUploadBotImage(w http.ResponseWriter, r *http.Request) {
	if s.host == nil {
		writeFailure(w, http.StatusServiceUnavailable, "image hosting is not configured")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeFailure(w, http.StatusBadRequest, "No selected file")
		return
	}

	url, err := s.host.Upload(r.Context(), file, avatarFolder, "bot_"+randomDigits(10))
	if err != nil {
		log.Printf("avatar upload failed filename=%s err=%v", header.Filename, err)
		writeFailure(w, http.StatusInternalServerError, "Failed to upload image.")
		return
	}

	log.Printf("avatar uploaded filename=%s image_url=%s", header.Filename, url)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"image_url": url,
	})
}
