// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shanhai/pkg/uuidv7"
)

func TestNew(t *testing.T) {
	first, second := uuidv7.New(), uuidv7.New()

	assert.True(t, uuidv7.Valid(first))
	assert.NotEqual(t, first, second)
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"v4", "5f1b7c3e-9a4d-4b8e-8f2a-1c3d5e7f9a0b", false},
		{"garbage", "not-a-uuid", false},
		{"empty", "", false},
		{"v7", "01890a5d-ac96-774b-bcce-b302099a8057", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uuidv7.Valid(tt.input))
		})
	}
}
