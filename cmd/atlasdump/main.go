// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command atlasdump validates a catalog and exports it as a SQLite bundle
// (served with CATALOG_SOURCE=sqlite) and/or a YAML document.
//
// Usage:
//
//	atlasdump -sqlite data/atlas.db
//	atlasdump -in my-atlas.yaml -sqlite atlas.db -yaml normalized.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/platform/constants"
)

func main() {
	var inPath string
	var sqlitePath string
	var yamlPath string

	flag.StringVar(&inPath, "in", "", "YAML catalog to read (defaults to the embedded catalog)")
	flag.StringVar(&sqlitePath, "sqlite", "", "output path for the SQLite bundle")
	flag.StringVar(&yamlPath, "yaml", "", "output path for the YAML document")
	flag.Parse()

	if strings.TrimSpace(sqlitePath) == "" && strings.TrimSpace(yamlPath) == "" {
		die("at least one of --sqlite or --yaml is required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With(slog.String("app", constants.AppName))

	var source atlas.Source = atlas.EmbeddedSource{}
	if strings.TrimSpace(inPath) != "" {
		source = atlas.FileSource{Path: inPath}
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.CatalogLoadTimeout)
	defer cancel()

	catalog, err := atlas.Load(ctx, source, logger)
	if err != nil {
		die(fmt.Sprintf("load catalog: %v", err))
	}
	snap := catalog.Snapshot()

	if sqlitePath != "" {
		if err := writeSQLite(ctx, sqlitePath, snap); err != nil {
			die(fmt.Sprintf("write sqlite bundle: %v", err))
		}
		fmt.Printf("wrote %s\n", sqlitePath)
	}

	if yamlPath != "" {
		if err := writeYAML(yamlPath, snap); err != nil {
			die(fmt.Sprintf("write yaml: %v", err))
		}
		fmt.Printf("wrote %s\n", yamlPath)
	}

	stats := catalog.Stats()
	fmt.Printf("catalog=%s locations=%d waters=%d creatures=%d\n",
		catalog.Fingerprint(), stats.Locations, stats.Waters, stats.Creatures)
}

func writeSQLite(ctx context.Context, path string, snap atlas.Snapshot) error {
	db, err := atlas.OpenSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	return atlas.WriteSQLite(ctx, db, snap)
}

func writeYAML(path string, snap atlas.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := atlas.EncodeYAML(file, snap); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
