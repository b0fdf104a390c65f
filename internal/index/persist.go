package index

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fundedfolk/supportbot/internal/domain"
)

// On-disk artifact names. The two files are always written and read as a
// pair; a lone survivor is never trusted.
const (
	VectorsFile   = "vectors.bin"
	DocumentsFile = "documents.json"
)

// vectors.bin layout: 8-byte magic, uint32 dimension, uint32 count,
// then count*dimension little-endian float32 values.
const (
	fileMagic  = "SBVEC001"
	headerSize = len(fileMagic) + 8
)

func writeVectors(path string, dim int, vectors [][]float32) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "vectors-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp vectors file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(fileMagic); err != nil {
		tmp.Close()
		return fmt.Errorf("write magic: %w", err)
	}
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], uint32(dim))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(vectors)))
	if _, err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}

	buf := make([]byte, 4)
	for _, vec := range vectors {
		for _, f := range vec {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
			if _, err := w.Write(buf); err != nil {
				tmp.Close()
				return fmt.Errorf("write vector data: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush vectors: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp vectors file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func readVectors(path string) (int, [][]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) < headerSize {
		return 0, nil, fmt.Errorf("%s: truncated header (%d bytes)", path, len(data))
	}
	if string(data[:len(fileMagic)]) != fileMagic {
		return 0, nil, fmt.Errorf("%s: bad magic %q", path, data[:len(fileMagic)])
	}

	dim := int(binary.LittleEndian.Uint32(data[len(fileMagic):]))
	count := int(binary.LittleEndian.Uint32(data[len(fileMagic)+4:]))
	if dim <= 0 {
		return 0, nil, fmt.Errorf("%s: invalid dimension %d", path, dim)
	}

	payload := data[headerSize:]
	want := count * dim * 4
	if len(payload) != want {
		return 0, nil, fmt.Errorf("%s: payload size %d, expected %d for %d vectors of dim %d",
			path, len(payload), want, count, dim)
	}

	vectors := make([][]float32, count)
	for i := 0; i < count; i++ {
		vec := make([]float32, dim)
		base := i * dim * 4
		for j := 0; j < dim; j++ {
			bits := binary.LittleEndian.Uint32(payload[base+j*4:])
			vec[j] = math.Float32frombits(bits)
		}
		vectors[i] = vec
	}
	return dim, vectors, nil
}

func writeDocuments(path string, docs []domain.Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "documents-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp documents file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write documents: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp documents file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func readDocuments(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return docs, nil
}
