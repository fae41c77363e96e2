// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shanhai/internal/platform/apperr"
	"github.com/taibuivan/shanhai/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	assert.Equal(t, dberr.ErrNotFound, dberr.Wrap(pgx.ErrNoRows, "load_location"))
	assert.Equal(t, dberr.ErrNotFound, dberr.Wrap(sql.ErrNoRows, "load_location"))

	cause := errors.New("connection reset")
	err := dberr.Wrap(cause, "load_waters")
	assert.True(t, apperr.HasCode(err, "INTERNAL_ERROR"))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, apperr.As(err).Cause.Error(), "load_waters")
}
