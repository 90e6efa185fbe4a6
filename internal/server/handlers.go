package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/erabu/internal/dataset"
	"github.com/hyperjump/erabu/internal/export"
	"github.com/hyperjump/erabu/internal/models"
)

func (s *Server) handleUploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing multipart field \"file\"")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	ds, err := dataset.Load(header.Filename, content)
	if err != nil {
		var unsupported *dataset.UnsupportedFileTypeError
		if errors.As(err, &unsupported) {
			s.respondError(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		// MissingColumnError and parse failures reject the upload whole.
		s.logger.Warn("dataset rejected", zap.String("name", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	s.SetDataset(ds, id)
	s.respondJSON(w, http.StatusCreated, s.datasetSummary())
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	loaded := s.dataset != nil
	s.mu.RUnlock()
	if !loaded {
		s.respondError(w, http.StatusNotFound, "no dataset loaded")
		return
	}
	s.respondJSON(w, http.StatusOK, s.datasetSummary())
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ds := s.dataset
	s.mu.RUnlock()
	if ds == nil {
		s.respondError(w, http.StatusNotFound, "no dataset loaded")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"niches":    append([]string{models.FilterAll}, ds.Niches()...),
		"locations": append([]string{models.FilterAll}, ds.Locations()...),
		"max_top_k": s.cfg.Match.MaxTopK,
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var query models.MatchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if query.TopK <= 0 {
		query.TopK = s.cfg.Match.DefaultTopK
	}
	if query.TopK > s.cfg.Match.MaxTopK {
		query.TopK = s.cfg.Match.MaxTopK
	}

	s.mu.RLock()
	ds := s.dataset
	s.mu.RUnlock()
	if ds == nil {
		s.respondError(w, http.StatusConflict, "no dataset loaded; upload one first")
		return
	}

	s.logger.Debug("match request",
		zap.String("brief", query.Brief),
		zap.String("niche", query.Niche),
		zap.String("location", query.Location),
		zap.Int("top_k", query.TopK))

	response, err := s.engine.Match(r.Context(), ds, &query)
	if err != nil {
		if errors.Is(err, models.ErrEmptyBrief) {
			s.respondError(w, http.StatusBadRequest, "please enter a campaign brief")
			return
		}
		s.logger.Error("match failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	s.lastDisplayed = response
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.FormatCSV
	switch r.URL.Query().Get("format") {
	case "", "csv":
	case "xlsx":
		format = export.FormatXLSX
	default:
		s.respondError(w, http.StatusBadRequest, "unsupported export format; use csv or xlsx")
		return
	}

	s.mu.RLock()
	ds := s.dataset
	displayed := s.lastDisplayed
	s.mu.RUnlock()
	if ds == nil {
		s.respondError(w, http.StatusConflict, "no dataset loaded")
		return
	}
	if displayed == nil {
		s.respondError(w, http.StatusConflict, "no results computed yet; run a match first")
		return
	}

	if format == export.FormatXLSX {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="top_creators.xlsx"`)
	} else {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="top_creators.csv"`)
	}
	if err := export.Write(w, ds, displayed.Results, format); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]interface{}{
		"dataset_loaded": s.dataset != nil,
		"scores_cached":  s.engine.HasScores(),
		"config": map[string]interface{}{
			"embedding_dimensions": s.cfg.Embedding.Dimensions,
			"default_top_k":        s.cfg.Match.DefaultTopK,
			"max_top_k":            s.cfg.Match.MaxTopK,
		},
	}
	if s.dataset != nil {
		resp["dataset_id"] = s.datasetID
		resp["dataset_name"] = s.dataset.Name
		resp["profiles"] = len(s.dataset.Profiles)
		resp["fingerprint"] = s.dataset.Fingerprint
		resp["niche_count"] = len(s.dataset.Niches())
		resp["location_count"] = len(s.dataset.Locations())
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// datasetSummary assumes the dataset is loaded; callers check first.
func (s *Server) datasetSummary() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"dataset_id": s.datasetID,
		"name":       s.dataset.Name,
		"profiles":   len(s.dataset.Profiles),
		"niches":     s.dataset.Niches(),
		"locations":  s.dataset.Locations(),
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
