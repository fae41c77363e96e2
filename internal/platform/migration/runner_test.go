// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shanhai/internal/platform/migration"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://atlas:pw@db:5432/atlas", "pgx5://atlas:pw@db:5432/atlas"},
		{"postgresql://atlas@db/atlas?sslmode=disable", "pgx5://atlas@db/atlas?sslmode=disable"},
		{"pgx5://atlas@db/atlas", "pgx5://atlas@db/atlas"},
		{"host=db user=atlas", "host=db user=atlas"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.in))
		})
	}
}
