// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/artmarket/internal/platform/migration"
)

func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/artmarket", "pgx5://u:p@db:5432/artmarket"},
		{"postgresql://u:p@db/artmarket?sslmode=disable", "pgx5://u:p@db/artmarket?sslmode=disable"},
		{"pgx5://db/artmarket", "pgx5://db/artmarket"},
		{"host=db dbname=artmarket", "host=db dbname=artmarket"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.Pgx5DSN(tt.in))
		})
	}
}
