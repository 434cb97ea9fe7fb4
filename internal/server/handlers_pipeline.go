package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nguyentantai21042004/voice-bridge/internal/assets"
	"github.com/nguyentantai21042004/voice-bridge/internal/history"
	"github.com/nguyentantai21042004/voice-bridge/internal/pipeline"
)

type translateRequest struct {
	VideoURL       string `json:"video_url"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	RunID            string `json:"run_id"`
	DetectedLanguage string `json:"detected_language"`
	TranslatedText   string `json:"translated_text"`
	DownloadURL      string `json:"download_url"`
}

type summarizeRequest struct {
	VideoURL      string `json:"video_url"`
	SentenceCount int    `json:"sentence_count"`
}

type summarizeResponse struct {
	RunID       string `json:"run_id"`
	Summary     string `json:"summary"`
	DownloadURL string `json:"download_url"`
}

type historyResponse struct {
	Records []history.Record `json:"records"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoURL == "" || req.TargetLanguage == "" {
		writeError(w, http.StatusBadRequest, "video_url and target_language are required")
		return
	}

	res, err := s.orch.Translate(r.Context(), pipeline.TranslateRequest{
		Username:       usernameFrom(r.Context()),
		SourceURL:      req.VideoURL,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		s.writeStageError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		RunID:            res.RunID,
		DetectedLanguage: res.DetectedLanguage,
		TranslatedText:   res.TranslatedText,
		DownloadURL:      "/api/assets/" + res.AssetID,
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoURL == "" {
		writeError(w, http.StatusBadRequest, "video_url is required")
		return
	}

	res, err := s.orch.Summarize(r.Context(), pipeline.SummarizeRequest{
		Username:      usernameFrom(r.Context()),
		SourceURL:     req.VideoURL,
		SentenceCount: req.SentenceCount,
	})
	if err != nil {
		s.writeStageError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		RunID:       res.RunID,
		Summary:     res.Summary,
		DownloadURL: "/api/assets/" + res.AssetID,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.history.Load(r.Context(), usernameFrom(r.Context()))
	if err != nil {
		s.logger.Error(r.Context(), "History load failed: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{Records: records})
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	dl, err := s.registry.Open(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			writeError(w, http.StatusNotFound, "asset not found or already downloaded")
			return
		}
		s.logger.Error(r.Context(), "Asset open failed: %v", err)
		writeError(w, http.StatusInternalServerError, "could not open asset")
		return
	}
	defer dl.Close()

	w.Header().Set("Content-Type", dl.Asset.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Asset.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", dl.Asset.Size))

	if _, err := io.Copy(w, dl.Reader); err != nil {
		s.logger.Warn(r.Context(), "Asset download interrupted: %v", err)
	}
}

// writeStageError maps an aborted run to its inline diagnostic. Stage
// failures are expected outcomes, not server errors.
func (s *Server) writeStageError(w http.ResponseWriter, r *http.Request, err error) {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: stageErr.Message(),
			Stage: stageErr.Stage,
			Kind:  string(stageErr.Kind),
		})
		return
	}

	s.logger.Error(r.Context(), "Pipeline run failed: %v", err)
	writeError(w, http.StatusInternalServerError, "the workflow did not complete")
}
