// Package presets keeps named analysis configurations in an INI file, one section per preset:
//
//	[stopped-importers]
//	policy = year
//	direction = importer
//	hs_codes = 0801, 0802
package presets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/de-tools/trade-radar/pkg/models/api"
	"gopkg.in/ini.v1"
)

var ErrPresetNotFound = errors.New("preset not found")

type Registry interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (api.AnalysisRequest, error)
	Save(ctx context.Context, name string, req api.AnalysisRequest) error
}

type iniRegistry struct {
	path string
	cfg  *ini.File
}

// NewRegistry loads path; a missing file yields an empty registry that Save creates.
func NewRegistry(path string) (Registry, error) {
	cfg := ini.Empty()
	if _, err := os.Stat(path); err == nil {
		cfg, err = ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load presets: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &iniRegistry{path: path, cfg: cfg}, nil
}

func (r *iniRegistry) List(_ context.Context) ([]string, error) {
	var names []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			names = append(names, section.Name())
		}
	}
	return names, nil
}

func (r *iniRegistry) Get(_ context.Context, name string) (api.AnalysisRequest, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return api.AnalysisRequest{}, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}

	value := func(key string) string {
		if !section.HasKey(key) {
			return ""
		}
		return section.Key(key).String()
	}
	number := func(key string) int {
		if !section.HasKey(key) {
			return 0
		}
		return section.Key(key).MustInt(0)
	}

	return api.AnalysisRequest{
		ReferenceDate: value("reference_date"),
		ReferenceMode: value("reference_mode"),
		Period: api.PeriodSelection{
			Policy:  value("policy"),
			N:       number("n"),
			Current: list(value("current")),
			Past:    list(value("past")),
		},
		Filter: api.Filter{
			HSCodes:         list(value("hs_codes")),
			Categories:      list(value("categories")),
			OriginCountries: list(value("origin_countries")),
		},
		Direction:     value("direction"),
		TopN:          number("top_n"),
		DecliningOnly: section.HasKey("declining_only") && section.Key("declining_only").MustBool(false),
	}, nil
}

func (r *iniRegistry) Save(_ context.Context, name string, req api.AnalysisRequest) error {
	if strings.TrimSpace(name) == "" || name == ini.DefaultSection {
		return fmt.Errorf("invalid preset name %q", name)
	}

	r.cfg.DeleteSection(name)
	section, err := r.cfg.NewSection(name)
	if err != nil {
		return err
	}

	set := func(key, value string) {
		if value != "" {
			section.Key(key).SetValue(value)
		}
	}
	set("policy", req.Period.Policy)
	if req.Period.N > 0 {
		set("n", fmt.Sprint(req.Period.N))
	}
	set("current", strings.Join(req.Period.Current, ","))
	set("past", strings.Join(req.Period.Past, ","))
	set("reference_date", req.ReferenceDate)
	set("reference_mode", req.ReferenceMode)
	set("direction", req.Direction)
	set("hs_codes", strings.Join(req.Filter.HSCodes, ","))
	set("categories", strings.Join(req.Filter.Categories, ","))
	set("origin_countries", strings.Join(req.Filter.OriginCountries, ","))
	if req.TopN > 0 {
		set("top_n", fmt.Sprint(req.TopN))
	}
	if req.DecliningOnly {
		set("declining_only", "true")
	}

	if err := r.cfg.SaveTo(r.path); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}
	return nil
}

func list(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
