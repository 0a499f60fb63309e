package bruteforce

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

// snapshot is the serialized form of an index. Vectors are stored as
// little-endian float32 blobs; JSON encodes them as base64.
type snapshot struct {
	Model      string          `json:"model"`
	Dimensions int             `json:"dimensions"`
	Records    []domain.Record `json:"records"`
	Vectors    [][]byte        `json:"vectors"`
}

// Snapshot serializes the index contents for persistence.
func (idx *Index) Snapshot() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	snap := snapshot{
		Records: idx.records,
		Vectors: make([][]byte, len(idx.vectors)),
	}
	if idx.embedder != nil {
		snap.Model = idx.embedder.ModelName()
		snap.Dimensions = idx.embedder.Dimensions()
	}
	for i, vec := range idx.vectors {
		snap.Vectors[i] = float32SliceToBytes(vec)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Restore loads a previously serialized index. Stored vectors are used
// as-is; the embedder is re-fitted on the records' normalized text so
// corpus-fitted embedders can embed future queries. For pre-trained
// embedders the refit is a no-op.
func (idx *Index) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if len(snap.Records) != len(snap.Vectors) {
		return fmt.Errorf("corrupt snapshot: %d records, %d vectors",
			len(snap.Records), len(snap.Vectors))
	}

	vectors := make([][]float32, len(snap.Vectors))
	for i, blob := range snap.Vectors {
		vectors[i] = bytesToFloat32Slice(blob)
	}

	if idx.embedder != nil && len(snap.Records) > 0 {
		corpus := make([]string, len(snap.Records))
		for i := range snap.Records {
			corpus[i] = snap.Records[i].Normalized
		}
		if err := idx.embedder.Fit(corpus); err != nil {
			return fmt.Errorf("refit embedder: %w", err)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.records = snap.Records
	idx.vectors = vectors
	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
