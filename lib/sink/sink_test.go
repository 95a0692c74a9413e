// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var sample = []byte(strings.Repeat(`{"name":"widget","description":"","tags":["a","b"]}`, 64))

func TestCompressRoundtrip(t *testing.T) {
	t.Parallel()

	for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		compression := compression
		t.Run(compression.String(), func(t *testing.T) {
			t.Parallel()

			encoded, err := Compress(sample, compression)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if compression != CompressionNone && len(encoded) >= len(sample) {
				t.Errorf("repetitive input did not shrink: %d >= %d bytes", len(encoded), len(sample))
			}

			decoded, err := Decompress(encoded, compression)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(decoded, sample) {
				t.Error("roundtrip changed the data")
			}
		})
	}
}

func TestCompressFrameMagic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		compression Compression
		magic       []byte
	}{
		{CompressionZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
		{CompressionLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	}
	for _, test := range tests {
		encoded, err := Compress(sample, test.compression)
		if err != nil {
			t.Fatalf("Compress(%s): %v", test.compression, err)
		}
		if !bytes.HasPrefix(encoded, test.magic) {
			t.Errorf("%s output starts %x, want frame magic %x", test.compression, encoded[:4], test.magic)
		}
	}
}

func TestDecompressCorrupt(t *testing.T) {
	t.Parallel()

	for _, compression := range []Compression{CompressionZstd, CompressionLZ4} {
		if _, err := Decompress([]byte("definitely not compressed"), compression); err == nil {
			t.Errorf("Decompress(%s) accepted garbage", compression)
		}
	}
}

func TestParseCompression(t *testing.T) {
	t.Parallel()

	tests := map[string]Compression{
		"":     CompressionNone,
		"none": CompressionNone,
		"zstd": CompressionZstd,
		"lz4":  CompressionLZ4,
	}
	for name, want := range tests {
		got, err := ParseCompression(name)
		if err != nil {
			t.Fatalf("ParseCompression(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseCompression(%q) = %s, want %s", name, got, want)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) succeeded")
	}
}

func TestCompressionFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path  string
		want  Compression
		inner string
	}{
		{"values.yaml", CompressionNone, "values.yaml"},
		{"values.yaml.zst", CompressionZstd, "values.yaml"},
		{"dir/product.json.lz4", CompressionLZ4, "dir/product.json"},
	}
	for _, test := range tests {
		got, inner := CompressionFromPath(test.path)
		if got != test.want || inner != test.inner {
			t.Errorf("CompressionFromPath(%q) = %s, %q; want %s, %q", test.path, got, inner, test.want, test.inner)
		}
	}
}

func TestSink_Stream(t *testing.T) {
	t.Parallel()

	var stream bytes.Buffer
	output := New(Stdout, CompressionNone, &stream)
	if output.Describe() != "stdout" {
		t.Errorf("Describe = %q", output.Describe())
	}
	if err := output.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if stream.String() != "hello\n" {
		t.Errorf("stream = %q", stream.String())
	}
}

func TestSink_FileAndReadFile(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	path := filepath.Join(directory, "product.json.zst")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	output := New(path, CompressionZstd, nil)
	if err := output.Write(sample); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, inner, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(data, sample) {
		t.Error("ReadFile did not return the written data")
	}
	if inner != filepath.Join(directory, "product.json") {
		t.Errorf("inner path = %q", inner)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the output file", len(entries))
	}

	if _, _, err := ReadFile(filepath.Join(directory, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("ReadFile(missing) error = %v, want not-exist", err)
	}
}
