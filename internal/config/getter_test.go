// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{src: "utcsh.yaml", want: false},
		{src: "/etc/utcsh.hcl", want: false},
		{src: "../cfg/utcsh.yml", want: false},
		{src: "https://example.com/utcsh.yaml", want: true},
		{src: "git::https://github.com/org/repo.git//utcsh.yaml?ref=v1", want: true},
		{src: "s3::https://s3.amazonaws.com/bucket/utcsh.yaml", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.src))
		})
	}
}

func TestSplitFileNameFromGetterURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantURL  string
		wantFile string
	}{
		{
			name:     "git with ref",
			url:      "git::https://github.com/org/repo.git//utcsh.yaml?ref=v1.0.0",
			wantURL:  "git::https://github.com/org/repo.git?ref=v1.0.0",
			wantFile: "utcsh.yaml",
		},
		{
			name:     "nested file",
			url:      "git::https://github.com/org/repo.git//configs/utcsh.hcl",
			wantURL:  "git::https://github.com/org/repo.git//configs",
			wantFile: "utcsh.hcl",
		},
		{
			name: "no subdirectory",
			url:  "https://example.com/utcsh.yaml",
		},
		{
			name: "trailing separator",
			url:  "git::https://github.com/org/repo.git//",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotFile := splitFileNameFromGetterURL(tt.url)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantFile, gotFile)
		})
	}
}

func TestFileNameFromURL(t *testing.T) {
	assert.Equal(t, "utcsh.yaml", fileNameFromURL("https://example.com/a/utcsh.yaml?x=1"))
	assert.Equal(t, "utcsh.hcl", fileNameFromURL("http::http://example.com/utcsh.hcl"))
	assert.Empty(t, fileNameFromURL("https://example.com/"))
	assert.Empty(t, fileNameFromURL("https://example.com"))
}

func TestGetURL_Errors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty url", url: ""},
		{name: "no file name", url: "https://example.com/"},
		{name: "unreachable repository", url: "git::http://notexist//file.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, name, err := getURL(context.Background(), tt.url)
			require.ErrorIs(t, err, ErrGetConfigFile)
			assert.Nil(t, data)
			assert.Empty(t, name)
		})
	}
}
