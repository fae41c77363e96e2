// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package atlas

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var embeddedCatalog []byte

// Source supplies the catalog content once at startup.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Load reads the full catalog content.
	Load(ctx context.Context) (Snapshot, error)
}

// Load reads src, logs every referential gap and returns the indexed catalog.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Catalog, error) {
	start := time.Now()

	snap, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("atlas: load %s catalog: %w", src.Name(), err)
	}

	for _, gap := range snap.Gaps() {
		logger.Warn("catalog_reference_gap",
			slog.String("kind", string(gap.Kind)),
			slog.String("from", gap.From),
			slog.String("to", gap.To),
		)
	}

	catalog, err := NewCatalog(snap)
	if err != nil {
		return nil, fmt.Errorf("atlas: build %s catalog: %w", src.Name(), err)
	}

	stats := catalog.Stats()
	logger.Info("catalog_loaded",
		slog.String("source", src.Name()),
		slog.Int("locations", stats.Locations),
		slog.Int("waters", stats.Waters),
		slog.Int("creatures", stats.Creatures),
		slog.String("fingerprint", catalog.Fingerprint()),
		slog.Duration("took", time.Since(start)),
	)

	return catalog, nil
}

// # YAML Sources

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Load(_ context.Context) (Snapshot, error) {
	return DecodeYAML(bytes.NewReader(embeddedCatalog))
}

// FileSource reads a YAML catalog from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file" }

func (s FileSource) Load(_ context.Context) (Snapshot, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return Snapshot{}, err
	}
	defer file.Close()

	return DecodeYAML(file)
}

// DecodeYAML parses a catalog document. Unknown keys are rejected.
func DecodeYAML(r io.Reader) (Snapshot, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var snap Snapshot
	if err := decoder.Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return Snapshot{}, errors.New("empty catalog document")
		}
		return Snapshot{}, fmt.Errorf("decode catalog yaml: %w", err)
	}
	return snap, nil
}

// EncodeYAML writes snap in the format read by [DecodeYAML].
func EncodeYAML(w io.Writer, snap Snapshot) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("encode catalog yaml: %w", err)
	}
	return encoder.Close()
}

// Embedded returns the catalog compiled into the binary. It panics if the
// embedded document is invalid, which is a build defect.
func Embedded() *Catalog {
	snap, err := EmbeddedSource{}.Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("atlas: embedded catalog: %v", err))
	}
	return MustCatalog(snap)
}
