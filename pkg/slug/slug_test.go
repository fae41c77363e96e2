// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shanhai/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jade Lake", "jade-lake"},
		{"  Kunlun   Mountain ", "kunlun-mountain"},
		{"Wényú_Fish!", "wenyu-fish"},
		{"JADE--LAKE", "jade-lake"},
		{"瑶池", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"kunlun", "river"}, slug.Words("Kunlun River"))
	assert.Nil(t, slug.Words("昆仑"))
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("jade-lake"))
	assert.True(t, slug.Valid("shenyu"))
	assert.False(t, slug.Valid("Jade Lake"))
	assert.False(t, slug.Valid("-jade"))
	assert.False(t, slug.Valid(""))
}
