package registry

import (
	"encoding/json"
	"strings"

	"go.trai.ch/cpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// packageDTO is the wire representation of a package descriptor.
type packageDTO struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Dependencies []string     `json:"dependencies"`
	SourceURL    string       `json:"source_url"`
	Checksum     string       `json:"checksum"`
	BuildType    buildTypeDTO `json:"build_type"`
}

// buildTypeDTO decodes the build_type field. The registry serializes it
// either as a bare string ("CMake", "HeaderOnly") or as an object carrying
// the custom script payload: {"Custom": "<script>"} in the legacy form,
// {"kind": "custom", "script": "<script>"} in the current one.
type buildTypeDTO struct {
	Kind   string
	Script string
}

func (b *buildTypeDTO) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Kind = s
		return nil
	}

	var current struct {
		Kind   string `json:"kind"`
		Script string `json:"script"`
	}
	if err := json.Unmarshal(data, &current); err == nil && current.Kind != "" {
		b.Kind = current.Kind
		b.Script = current.Script
		return nil
	}

	var legacy map[string]string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	if script, ok := legacy["Custom"]; ok {
		b.Kind = "Custom"
		b.Script = script
		return nil
	}

	return zerr.With(domain.ErrUnknownBuildType, "payload", string(data))
}

// toDomain converts the wire descriptor into the immutable domain descriptor.
func (p *packageDTO) toDomain() (*domain.Package, error) {
	if p.Name == "" {
		return nil, zerr.With(domain.ErrInvalidDescriptor, "field", "name")
	}
	if p.SourceURL == "" {
		return nil, zerr.With(zerr.With(domain.ErrInvalidDescriptor, "field", "source_url"), "package", p.Name)
	}

	build, err := p.BuildType.toDomain()
	if err != nil {
		return nil, zerr.With(err, "package", p.Name)
	}

	return &domain.Package{
		Name:         p.Name,
		Version:      p.Version,
		Dependencies: p.Dependencies,
		SourceURL:    p.SourceURL,
		Checksum:     strings.ToLower(p.Checksum),
		Build:        build,
	}, nil
}

func (b buildTypeDTO) toDomain() (domain.BuildType, error) {
	switch strings.ToLower(b.Kind) {
	case "cmake":
		return domain.BuildType{Kind: domain.BuildCMake}, nil
	case "headeronly", "header-only":
		return domain.BuildType{Kind: domain.BuildHeaderOnly}, nil
	case "custom":
		return domain.BuildType{Kind: domain.BuildCustom, Script: b.Script}, nil
	}
	return domain.BuildType{}, zerr.With(domain.ErrUnknownBuildType, "build_type", b.Kind)
}
