// Package drs reads DRS resource archives.
package drs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	headerSize    = 64
	tableInfoSize = 12
	entrySize     = 12
)

type header struct {
	Copyright       [40]byte
	Version         [4]byte
	FileType        [12]byte
	TableCount      int32
	FirstFileOffset int32
}

type tableInfo struct {
	Extension [4]byte // reversed, space padded
	Offset    int32
	FileCount int32
}

type entry struct {
	ID     int32
	Offset int32
	Size   int32
}

// DrsFile describes a single file stored in an archive.
type DrsFile struct {
	Name   string
	ID     int
	Offset int64
	Size   int64
}

// DrsFS is a read-only flat file system over a DRS archive. Files are
// named <id>.<extension>, e.g. 15001.slp.
type DrsFS struct {
	reader  io.ReaderAt
	version string
	files   map[string]*DrsFile
	names   []string
}

var _ fs.FS = (*DrsFS)(nil)

func NewDrsFS(reader io.ReaderAt) (*DrsFS, error) {
	var h header
	if err := binary.Read(io.NewSectionReader(reader, 0, headerSize), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("cannot read drs header (%w)", err)
	}
	if h.TableCount < 0 || h.TableCount > 255 {
		return nil, fmt.Errorf("invalid number of drs tables %d", h.TableCount)
	}
	d := &DrsFS{
		reader:  reader,
		version: string(bytes.TrimRight(h.Version[:], "\x00 ")),
		files:   make(map[string]*DrsFile)}
	tables := make([]tableInfo, h.TableCount)
	tablesReader := io.NewSectionReader(reader, headerSize, int64(h.TableCount)*tableInfoSize)
	if err := binary.Read(tablesReader, binary.LittleEndian, tables); err != nil {
		return nil, fmt.Errorf("cannot read drs table infos (%w)", err)
	}
	for _, table := range tables {
		extension := tableExtension(table.Extension)
		if table.FileCount < 0 {
			return nil, fmt.Errorf("invalid file count %d of %s table", table.FileCount, extension)
		}
		entries := make([]entry, table.FileCount)
		entriesReader := io.NewSectionReader(reader, int64(table.Offset), int64(table.FileCount)*entrySize)
		if err := binary.Read(entriesReader, binary.LittleEndian, entries); err != nil {
			return nil, fmt.Errorf("cannot read %s table (%w)", extension, err)
		}
		for _, e := range entries {
			if e.Offset < h.FirstFileOffset || e.Size < 0 {
				return nil, fmt.Errorf("invalid location of file %d.%s", e.ID, extension)
			}
			name := strconv.Itoa(int(e.ID)) + "." + extension
			if _, ok := d.files[name]; ok {
				return nil, fmt.Errorf("duplicate file %s", name)
			}
			d.files[name] = &DrsFile{
				Name:   name,
				ID:     int(e.ID),
				Offset: int64(e.Offset),
				Size:   int64(e.Size)}
			d.names = append(d.names, name)
		}
	}
	sort.Strings(d.names)
	return d, nil
}

func tableExtension(reversed [4]byte) string {
	var ext [4]byte
	for i, b := range reversed {
		ext[3-i] = b
	}
	return strings.Trim(string(ext[:]), " \x00")
}

func (d *DrsFS) Version() string {
	return d.version
}

// Files lists the archive's files sorted by name.
func (d *DrsFS) Files() []DrsFile {
	files := make([]DrsFile, 0, len(d.names))
	for _, name := range d.names {
		files = append(files, *d.files[name])
	}
	return files
}

func (d *DrsFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return &rootDir{fsys: d}, nil
	}
	f, ok := d.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &openFile{
		SectionReader: io.NewSectionReader(d.reader, f.Offset, f.Size),
		info:          fileInfo{f}}, nil
}

type fileInfo struct {
	f *DrsFile
}

func (i fileInfo) Name() string       { return i.f.Name }
func (i fileInfo) Size() int64        { return i.f.Size }
func (i fileInfo) Mode() fs.FileMode  { return 0444 }
func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return false }
func (i fileInfo) Sys() interface{}   { return nil }

func (i fileInfo) Type() fs.FileMode          { return 0 }
func (i fileInfo) Info() (fs.FileInfo, error) { return i, nil }

type openFile struct {
	*io.SectionReader
	info fileInfo
}

func (f *openFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *openFile) Close() error               { return nil }

type rootDir struct {
	fsys   *DrsFS
	offset int
}

func (r *rootDir) Name() string               { return "." }
func (r *rootDir) Size() int64                { return 0 }
func (r *rootDir) Mode() fs.FileMode          { return fs.ModeDir | 0555 }
func (r *rootDir) ModTime() time.Time         { return time.Time{} }
func (r *rootDir) IsDir() bool                { return true }
func (r *rootDir) Sys() interface{}           { return nil }
func (r *rootDir) Stat() (fs.FileInfo, error) { return r, nil }
func (r *rootDir) Close() error               { return nil }
func (r *rootDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: ".", Err: fs.ErrInvalid}
}

func (r *rootDir) ReadDir(n int) ([]fs.DirEntry, error) {
	names := r.fsys.names[r.offset:]
	if n > 0 && len(names) == 0 {
		return nil, io.EOF
	}
	if n > 0 && n < len(names) {
		names = names[:n]
	}
	entries := make([]fs.DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, fileInfo{r.fsys.files[name]})
	}
	r.offset += len(names)
	return entries, nil
}
