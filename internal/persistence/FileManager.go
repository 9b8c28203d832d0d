package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"tarotstats/internal/persistence/interfaces"

	json "github.com/goccy/go-json"
)

// ErrNoData is returned by LoadJSON when the file does not exist.
var ErrNoData = errors.New("no persisted data")

// FileManager writes JSON documents through a compressor with an atomic
// tmp-file + rename.
type FileManager struct {
	compressor interfaces.CompressorInterface
}

func NewFileManager(compressor interfaces.CompressorInterface) *FileManager {
	return &FileManager{compressor: compressor}
}

func (f *FileManager) SaveJSON(fileName string, v any) error {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	return writeAtomic(fileName, data)
}

// LoadJSON decodes fileName into v. A missing file yields ErrNoData.
func (f *FileManager) LoadJSON(fileName string, v any) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoData
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(decompressed, v)
}

func writeAtomic(fileName string, data []byte) error {
	if dir := filepath.Dir(fileName); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
