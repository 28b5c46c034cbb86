package word2vec

import (
	"bytes"
	"os"
	"syscall"
)

// MappedFile is a read-only memory-mapped file, ported from the
// teacher's MappedFile in hashed.go: a thin wrapper pairing the open
// *os.File with its syscall.Mmap'd byte slice so a large binary vector
// file can be read without read syscalls.
type MappedFile struct {
	file *os.File
	data []byte
}

// OpenMappedFile mmaps path read-only.
func OpenMappedFile(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, int(stat.Size()), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MappedFile{file: f, data: data}, nil
}

// Bytes returns the mapped region.
func (m *MappedFile) Bytes() []byte { return m.data }

// Close unmaps the region and closes the underlying file.
func (m *MappedFile) Close() error {
	err1 := syscall.Munmap(m.data)
	err2 := m.file.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// LoadBinaryMapped parses the legacy binary vector format out of an
// mmap'd file instead of issuing read syscalls. Parsing still goes
// through LoadBinary, so every word and row is decoded into newly
// allocated heap slices; the returned LoadedVectors does not reference
// the mapped bytes.
func LoadBinaryMapped(path string) (*LoadedVectors, *MappedFile, error) {
	m, err := OpenMappedFile(path)
	if err != nil {
		return nil, nil, err
	}
	lv, err := LoadBinary(bytes.NewReader(m.Bytes()))
	if err != nil {
		m.Close()
		return nil, nil, err
	}
	return lv, m, nil
}
