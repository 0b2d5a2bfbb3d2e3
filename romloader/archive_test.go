package romloader

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

// createTestTarGzFile creates a temporary .tar.gz archive containing a
// single .sms entry.
func createTestTarGzFile(t *testing.T, smsData []byte, smsName string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.tar.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create tar.gz file: %v", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	if err := tw.WriteHeader(&tar.Header{
		Name: smsName,
		Mode: 0644,
		Size: int64(len(smsData)),
	}); err != nil {
		t.Fatalf("failed to write tar header: %v", err)
	}
	if _, err := tw.Write(smsData); err != nil {
		t.Fatalf("failed to write tar data: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return path
}

func TestLoader_TarGzLoad(t *testing.T) {
	testData := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	path := createTestTarGzFile(t, testData, "roms/game.sms")

	data, name, err := LoadROM(path)
	if err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("data mismatch: expected %v, got %v", testData, data)
	}
	if name != "game.sms" {
		t.Errorf("name mismatch: expected game.sms, got %s", name)
	}
}

func TestLoader_TarGzNoSMSFile(t *testing.T) {
	path := createTestTarGzFile(t, []byte("hello"), "readme.txt")

	_, _, err := LoadROM(path)
	if err != ErrNoSMSFile {
		t.Errorf("expected ErrNoSMSFile, got %v", err)
	}
}

func TestLoader_FormatDetectionXZAndLZ4(t *testing.T) {
	testCases := []struct {
		header   []byte
		expected formatType
	}{
		{[]byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, formatXZ},
		{[]byte{0x04, 0x22, 0x4D, 0x18}, formatLZ4},
	}
	for _, tc := range testCases {
		if got := detectFormat(tc.header, "file.dat"); got != tc.expected {
			t.Errorf("detectFormat(%v): expected %d, got %d", tc.header, tc.expected, got)
		}
	}
}

func TestLoader_FormatDetectionBrotliByExtension(t *testing.T) {
	if got := detectFormat([]byte{}, "game.br"); got != formatBrotli {
		t.Errorf("expected formatBrotli for .br extension, got %d", got)
	}
}
