// Package handlers provides HTTP handlers for the msaflow API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/aria-lang/msaflow-go/internal/alignment"
	"github.com/aria-lang/msaflow-go/internal/phylip"
	"github.com/aria-lang/msaflow-go/internal/stats"
	"github.com/aria-lang/msaflow-go/internal/substitution"
)

// API serves the alignment endpoints. Matrices maps lower case names to the
// substitution matrices clients may select.
type API struct {
	Matrices map[string]*substitution.Matrix
}

// NewAPI creates an API serving BLOSUM62 and any extra matrices.
func NewAPI(extra ...*substitution.Matrix) *API {
	api := &API{Matrices: map[string]*substitution.Matrix{"blosum62": substitution.BLOSUM62()}}
	for _, m := range extra {
		api.Matrices[strings.ToLower(m.Name())] = m
	}
	return api
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

// PHYLIPRequest carries PHYLIP text.
type PHYLIPRequest struct {
	PHYLIP string `json:"phylip"`
}

// AlignmentResponse describes one alignment.
type AlignmentResponse struct {
	Rows        int                   `json:"rows"`
	Columns     int                   `json:"columns"`
	IDs         []string              `json:"ids"`
	Gapped      []string              `json:"gapped"`
	Coordinates alignment.Coordinates `json:"coordinates"`
	Stats       *stats.RowStats       `json:"stats"`
}

func describe(a *alignment.Alignment) (AlignmentResponse, error) {
	rs, err := stats.SummarizeRows(a)
	if err != nil {
		return AlignmentResponse{}, err
	}
	ids := make([]string, a.Len())
	for i := range ids {
		ids[i] = a.Sequence(i).ID()
	}
	return AlignmentResponse{
		Rows:        a.Len(),
		Columns:     a.Columns(),
		IDs:         ids,
		Gapped:      a.Rows(),
		Coordinates: a.Coordinates(),
		Stats:       rs,
	}, nil
}

// readPHYLIP decodes the request body and parses every alignment in it.
func readPHYLIP(w http.ResponseWriter, r *http.Request) ([]*alignment.Alignment, bool) {
	var req PHYLIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return nil, false
	}

	alignments, err := phylip.ReadAll(strings.NewReader(req.PHYLIP))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	if len(alignments) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no alignment in request"))
		return nil, false
	}
	return alignments, true
}

// ParseHandler handles PHYLIP parse requests.
func (api *API) ParseHandler(w http.ResponseWriter, r *http.Request) {
	alignments, ok := readPHYLIP(w, r)
	if !ok {
		return
	}

	out := make([]AlignmentResponse, len(alignments))
	for i, a := range alignments {
		d, err := describe(a)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		out[i] = d
	}
	writeJSON(w, out)
}

// CountsResponse carries the counts of one alignment together with the
// derived totals.
type CountsResponse struct {
	*stats.AlignmentCounts
	Gaps       int     `json:"gaps"`
	LeftGaps   int     `json:"left_gaps"`
	Internal   int     `json:"internal_gaps"`
	RightGaps  int     `json:"right_gaps"`
	Insertions int     `json:"insertions"`
	Deletions  int     `json:"deletions"`
	Identity   float64 `json:"identity"`
	Similarity float64 `json:"similarity"`
	Summary    string  `json:"summary"`
}

// scorer resolves the matrix or match/mismatch query parameters.
func (api *API) scorer(r *http.Request) (stats.Scorer, error) {
	q := r.URL.Query()
	if name := q.Get("matrix"); name != "" {
		m, ok := api.Matrices[strings.ToLower(name)]
		if !ok {
			return nil, errors.New("unknown matrix " + strconv.Quote(name))
		}
		return m, nil
	}
	if q.Get("match") == "" {
		return nil, nil
	}
	match, err := strconv.Atoi(q.Get("match"))
	if err != nil {
		return nil, errors.New("match must be an integer")
	}
	mismatch := -1
	if v := q.Get("mismatch"); v != "" {
		if mismatch, err = strconv.Atoi(v); err != nil {
			return nil, errors.New("mismatch must be an integer")
		}
	}
	u, err := substitution.NewUniform(match, mismatch)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CountsHandler handles alignment counts requests.
func (api *API) CountsHandler(w http.ResponseWriter, r *http.Request) {
	scorer, err := api.scorer(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	alignments, ok := readPHYLIP(w, r)
	if !ok {
		return
	}

	out := make([]CountsResponse, len(alignments))
	for i, a := range alignments {
		c, err := stats.Count(a, scorer)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		out[i] = CountsResponse{
			AlignmentCounts: c,
			Gaps:            c.Gaps(),
			LeftGaps:        c.LeftGaps(),
			Internal:        c.InternalGaps(),
			RightGaps:       c.RightGaps(),
			Insertions:      c.Insertions(),
			Deletions:       c.Deletions(),
			Identity:        c.Identity(),
			Similarity:      c.Similarity(),
			Summary:         c.Summary(),
		}
	}
	writeJSON(w, out)
}

// FormatRequest carries gapped rows to render.
type FormatRequest struct {
	IDs  []string `json:"ids"`
	Rows []string `json:"rows"`
}

// FormatResponse carries the rendered alignment.
type FormatResponse struct {
	PHYLIP string `json:"phylip"`
	Pretty string `json:"pretty"`
}

// FormatHandler renders gapped rows as PHYLIP.
func (api *API) FormatHandler(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	a, err := alignment.FromGapped(req.IDs, req.Rows)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	text, err := phylip.Format(a)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, FormatResponse{
		PHYLIP: text,
		Pretty: a.String(),
	})
}

// ScoreResponse represents a single substitution score.
type ScoreResponse struct {
	Matrix string  `json:"matrix"`
	A      string  `json:"a"`
	B      string  `json:"b"`
	Score  float64 `json:"score"`
}

// ScoreHandler looks up one substitution score.
func (api *API) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	m, ok := api.Matrices[strings.ToLower(name)]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown matrix "+strconv.Quote(name)))
		return
	}

	a, b := chi.URLParam(r, "a"), chi.URLParam(r, "b")
	if len(a) != 1 || len(b) != 1 {
		writeError(w, http.StatusBadRequest, errors.New("residues must be single letters"))
		return
	}
	score, ok := m.Lookup(a[0], b[0])
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("residue not in matrix alphabet"))
		return
	}

	writeJSON(w, ScoreResponse{Matrix: m.Name(), A: a, B: b, Score: score})
}

// Routes mounts the API on r.
func (api *API) Routes(r chi.Router) {
	r.Route("/alignment", func(r chi.Router) {
		r.Post("/parse", api.ParseHandler)
		r.Post("/counts", api.CountsHandler)
		r.Post("/format", api.FormatHandler)
	})
	r.Get("/matrix/{name}/score/{a}/{b}", api.ScoreHandler)
}
