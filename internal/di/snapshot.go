package di

import "tarotstats/internal/persistence"

// provideSnapshotFiles gives the scheduler a zstd-backed file manager.
func provideSnapshotFiles() (*persistence.FileManager, error) {
	compressor, err := persistence.NewZstdCompressor()
	if err != nil {
		return nil, err
	}
	return persistence.NewFileManager(compressor), nil
}
