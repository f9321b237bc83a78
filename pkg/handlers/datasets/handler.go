package datasets

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/de-tools/trade-radar/pkg/adapters"
	"github.com/de-tools/trade-radar/pkg/loader"
	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/de-tools/trade-radar/pkg/services/config"
	"github.com/de-tools/trade-radar/pkg/services/dataset"
	"github.com/de-tools/trade-radar/pkg/services/period"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultMaxUploadBytes = 64 << 20

type Handler struct {
	datasets       dataset.Manager
	defaults       config.AnalysisConfig
	maxUploadBytes int64
}

func NewHandler(datasets dataset.Manager, defaults config.AnalysisConfig, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		datasets:       datasets,
		defaults:       defaults,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	datasets, err := h.datasets.List(ctx)
	if err != nil {
		writeError(w, r, err, "failed to list datasets")
		return
	}

	response := make([]api.Dataset, 0, len(datasets))
	for _, ds := range datasets {
		response = append(response, adapters.MapDatasetDomainToApi(ds))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dataset")

	ds, err := h.datasets.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "failed to get dataset")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDatasetDomainToApi(*ds))
}

func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dataset")

	if err := h.datasets.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "failed to delete dataset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadDataset accepts a multipart form with a "file" part (CSV or XLSX) and an
// optional "name" field.
func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, r, badRequest("invalid multipart upload: "+err.Error()), "failed to parse upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, badRequest("missing file part"), "failed to read upload")
		return
	}
	defer file.Close()

	format, err := loader.FormatFromName(header.Filename)
	if err != nil {
		writeError(w, r, err, "unsupported upload")
		return
	}

	records, err := loader.Read(ctx, file, format)
	if err != nil {
		writeError(w, r, badRequest(err.Error()), "failed to parse upload")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	ds, err := h.datasets.Import(ctx, name, header.Filename, records)
	if err != nil {
		writeError(w, r, err, "failed to import dataset")
		return
	}

	logger.Info().
		Str("dataset", ds.ID).
		Int64("size", header.Size).
		Msg("dataset uploaded")
	writeJSON(w, r, http.StatusCreated, adapters.MapDatasetDomainToApi(*ds))
}

func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dataset")

	options, err := h.datasets.Options(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "failed to list filter options")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapFilterOptionsDomainToApi(options))
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dataset")

	var body api.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, badRequest("invalid JSON body: "+err.Error()), "failed to decode analysis request")
		return
	}

	req, err := adapters.MapAnalysisRequestApiToDomain(h.defaults.Apply(body))
	if err != nil {
		writeError(w, r, err, "invalid analysis request")
		return
	}

	report, err := h.datasets.Analyze(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err, "analysis failed")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(id, report))
}

func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapPoliciesDomainToApi(period.Policies()))
}

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, domain.ErrInvalidPeriodSelection),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidRecord),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDatasetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFor(err)
	event := zerolog.Ctx(r.Context()).Warn()
	if status == http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg(msg)

	writeJSON(w, r, status, api.Error{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
