package unitfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode writes b to w.
func Encode(w io.Writer, b *Bundle) error {
	wire, err := encodeBundle(b)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(wire)
}

// Decode reads one bundle from r.
func Decode(r io.Reader) (*Bundle, error) {
	var wire wireBundle
	if err := msgpack.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("unitfile: %w", err)
	}
	return decodeBundle(&wire)
}

// Marshal is Encode into a fresh buffer.
func Marshal(b *Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal is Decode over data.
func Unmarshal(data []byte) (*Bundle, error) {
	return Decode(bytes.NewReader(data))
}

// Read loads the bundle stored at path.
func Read(path string) (b *Bundle, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	b, err = Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Write stores b at path through a temporary file in the same directory,
// so readers never see a partial unit.
func Write(path string, b *Bundle) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".unit-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmp)
	}()

	if err := Encode(f, b); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, path)
}

// OutputPath names the erased counterpart of a unit file:
// dir/name.mp becomes outDir/name.erased.mp. An empty outDir keeps the
// input directory.
func OutputPath(input, outDir string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)] + ".erased" + ext
	if ext == "" {
		name = base + ".erased.mp"
	}
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, name)
}
