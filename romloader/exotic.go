package romloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// extractFromXZ decompresses a single-file .xz stream, or searches a
// .tar.xz stream for the first .sms member.
func extractFromXZ(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open xz stream: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".tar.xz") {
		return extractFromTar(xr)
	}

	data, err := limitedRead(xr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress xz: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".xz")
	return data, name, nil
}

// extractFromLZ4 decompresses a single-file .lz4 stream, or searches a
// .tar.lz4 stream for the first .sms member.
func extractFromLZ4(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	lr := lz4.NewReader(f)

	if strings.HasSuffix(strings.ToLower(path), ".tar.lz4") {
		return extractFromTar(lr)
	}

	data, err := limitedRead(lr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress lz4: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".lz4")
	return data, name, nil
}

// extractFromBrotli decompresses a single-file .br stream. Brotli has no
// container format of its own, so unlike gzip/xz/lz4 there is no tar.br
// case to search.
func extractFromBrotli(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	br := brotli.NewReader(f)
	data, err := limitedRead(br)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress brotli: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".br")
	return data, name, nil
}
