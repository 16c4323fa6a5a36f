package drs

import (
	"fmt"
	"io/fs"
	"os"
)

// OpenGameData opens a game data directory or a DRS archive. The returned
// function closes the archive file.
func OpenGameData(filename string) (fs.FS, func() error, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("Cannot open file or directory %s (%v)", filename, err)
	}
	fileStat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("Cannot stat file %s (%v)", filename, err)
	}
	if fileStat.IsDir() {
		file.Close()
		return os.DirFS(filename), func() error { return nil }, nil
	}
	fsys, err := NewDrsFS(file)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("Cannot open drs archive %s (%v)", filename, err)
	}
	return fsys, file.Close, nil
}
