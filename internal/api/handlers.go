package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mmrzaf/sfseed/internal/app"
	"github.com/mmrzaf/sfseed/internal/domain"
	"github.com/mmrzaf/sfseed/internal/infra/repos/runs"
	"github.com/mmrzaf/sfseed/internal/output"
	"github.com/mmrzaf/sfseed/internal/profile"
	"github.com/mmrzaf/sfseed/internal/registry"
	"github.com/mmrzaf/sfseed/internal/schema"
	"github.com/mmrzaf/sfseed/internal/validation"
)

type Handler struct {
	profileRepo *profile.FileRepository
	runRepo     runs.Repository
	genRegistry *registry.GeneratorRegistry
}

func NewHandler(profileRepo *profile.FileRepository, runRepo runs.Repository, genRegistry *registry.GeneratorRegistry) *Handler {
	return &Handler{
		profileRepo: profileRepo,
		runRepo:     runRepo,
		genRegistry: genRegistry,
	}
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.profileRepo.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := h.profileRepo.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, p)
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	list, err := h.runRepo.List(limit, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := h.runRepo.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, run)
}

// GenerateRequest carries everything needed to synthesize rows without any
// org access: the describe payload comes with the request.
type GenerateRequest struct {
	Object    string          `json:"object,omitempty"`
	ProfileID string          `json:"profile_id,omitempty"`
	Profile   *domain.Profile `json:"profile,omitempty"`
	Describe  json.RawMessage `json:"describe"`
	Seed      *int64          `json:"seed,omitempty"`
}

// Generate streams a CSV body built from the posted describe metadata.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.Describe) == 0 {
		http.Error(w, "describe metadata is required", http.StatusBadRequest)
		return
	}

	prof := req.Profile
	if prof == nil && req.ProfileID != "" {
		p, err := h.profileRepo.Get(req.ProfileID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		prof = p
	}
	if prof == nil {
		http.Error(w, "profile or profile_id is required", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateProfile(prof); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var meta domain.DescribeMetadata
	if err := json.Unmarshal(req.Describe, &meta); err != nil {
		http.Error(w, "invalid describe metadata", http.StatusBadRequest)
		return
	}
	rules := schema.DefaultRules()
	rules.Extend(prof.PersonOnlyFields, prof.BusinessOnly)
	sc, err := schema.Parse(&meta, rules)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Seed != nil {
		prof.Seed = req.Seed
	}
	seed := app.ResolveSeed(prof)

	object := req.Object
	if object == "" {
		object = sc.ObjectName
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", object+".csv"))
	w.Header().Set("X-Generation-Seed", strconv.FormatInt(seed, 10))

	sink, err := output.NewCSVSink(w, output.LineEndingLF)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := app.Generate(sc, prof, seed, h.genRegistry, sink); err != nil {
		// Headers are already sent once rows started streaming; best effort.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = sink.Close()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSONStrict(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
