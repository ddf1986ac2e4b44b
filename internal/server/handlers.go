package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/matching"
	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/schemas"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScore scores a structured resume document.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	doc, err := readJSON(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rec, err := resume.FromDocument(doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.deps.Scorer.ScoreResume(rec)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Debug("resume scored", logger.ScanFields(result.ScanID, result.ResumeID, "", string(result.Verdict), result.Overall)...)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleScoreText scores raw resume text.
func (s *Server) handleScoreText(w http.ResponseWriter, r *http.Request) {
	doc, err := readJSON(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := schemas.Validate(schemas.ScoreTextRequest, doc); err != nil {
		s.fail(w, r, resume.FromValidation(err))
		return
	}

	body := doc.(map[string]any)
	text, _ := body["text"].(string)
	fileName, _ := body["fileName"].(string)

	result := s.deps.Scorer.ScoreResumeText(text, fileName)

	s.logger.Debug("resume text scored", logger.ScanFields(result.ScanID, "", "", string(result.Verdict), result.Overall)...)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleMatch matches a structured resume against a job description.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	doc, err := readJSON(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := schemas.Validate(schemas.MatchRequest, doc); err != nil {
		s.fail(w, r, resume.FromValidation(err))
		return
	}

	body := doc.(map[string]any)

	rec, err := resume.FromDocument(body["resume"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	job := matching.Job{}
	job.Text, _ = body["jobDescription"].(string)
	job.Title, _ = body["jobTitle"].(string)
	job.Company, _ = body["company"].(string)

	result, err := s.deps.Matcher.MatchResumeToJob(rec, job)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if s.deps.Rewriter != nil {
		ai.EnhanceSummaries(r.Context(), s.deps.Rewriter, s.logger, rec, job, result)
	}

	s.logger.Debug("resume matched", logger.ScanFields(result.ScanID, result.ResumeID, result.JobID, string(result.Verdict), result.MatchScore)...)
	s.jsonResponse(w, http.StatusOK, result)
}

// readJSON decodes a size-limited JSON body into generic values for schema validation.
func readJSON(w http.ResponseWriter, r *http.Request) (any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var doc any
	if err := dec.Decode(&doc); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, resume.Invalid("", "malformed JSON body: %v", err)
	}

	if dec.More() {
		return nil, resume.Invalid("", "request body must contain a single JSON document")
	}

	return doc, nil
}

