package main

import (
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/zephyrtronium/calcexpr"
)

// loadState restores a calculator from a compressed session file.
func loadState(name string, c *calcexpr.Calculator) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer zr.Close()
	return c.Restore(zr)
}

// saveState writes a calculator to a compressed session file. The file is
// replaced only once the whole session is written.
func saveState(name string, c *calcexpr.Calculator) error {
	f, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	if err := c.Save(zw); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), name)
}
