package nostril

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
)

const statsMagic = "nostrilstats!"

// header: magic, payload size (uint32), payload checksum (uint64).
const statsHeaderLen = len(statsMagic) + 4 + 8

// MarshalBinary encodes the table. N-grams are written in sorted order so
// that equal tables always encode to equal bytes.
func (s *Stats) MarshalBinary() (data []byte, err error) {
	var enc = make([]byte, 8)
	var buf bytes.Buffer

	binary.LittleEndian.PutUint32(enc, uint32(s.vocabulary))
	buf.Write(enc[:4])

	binary.LittleEndian.PutUint64(enc, math.Float64bits(s.defaultWeight))
	buf.Write(enc)

	normLens := make([]int, 0, len(s.norms))
	for l := range s.norms {
		normLens = append(normLens, l)
	}
	sort.Ints(normLens)
	binary.LittleEndian.PutUint32(enc, uint32(len(normLens)))
	buf.Write(enc[:4])
	for _, l := range normLens {
		binary.LittleEndian.PutUint32(enc, uint32(l))
		buf.Write(enc[:4])
		binary.LittleEndian.PutUint64(enc, math.Float64bits(s.norms[l]))
		buf.Write(enc)
	}

	keys := make([]string, 0, len(s.weights))
	for g := range s.weights {
		if len(g) > math.MaxUint8 {
			return nil, fmt.Errorf("nostril: n-gram %q too long to encode", g)
		}
		keys = append(keys, g)
	}
	sort.Strings(keys)

	binary.LittleEndian.PutUint32(enc, uint32(len(keys)))
	buf.Write(enc[:4])
	for _, g := range keys {
		buf.WriteByte(uint8(len(g)))
		buf.WriteString(g)
		binary.LittleEndian.PutUint64(enc, math.Float64bits(s.weights[g]))
		buf.Write(enc)
	}

	payload := buf.Bytes()

	var outer bytes.Buffer
	outer.Grow(statsHeaderLen + len(payload))
	outer.WriteString(statsMagic)
	binary.LittleEndian.PutUint32(enc, uint32(len(payload)))
	outer.Write(enc[:4])
	binary.LittleEndian.PutUint64(enc, xxhash.Sum64(payload))
	outer.Write(enc)
	outer.Write(payload)

	return outer.Bytes(), nil
}

// UnmarshalBinary replaces s with the decoded table. It is meant for
// freshly declared values; a Stats already shared with detectors must not
// be overwritten.
func (s *Stats) UnmarshalBinary(data []byte) (err error) {
	if !bytes.HasPrefix(data, []byte(statsMagic)) {
		return &ModelLoadError{Underlying: fmt.Errorf("data does not start with %q", statsMagic)}
	}
	if len(data) < statsHeaderLen {
		return &ModelLoadError{Underlying: fmt.Errorf("truncated header")}
	}

	pos := len(statsMagic)
	sz := int(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4
	sum := binary.LittleEndian.Uint64(data[pos:])
	pos += 8

	payload := data[pos:]
	if len(payload) != sz {
		return &ModelLoadError{Underlying: fmt.Errorf("payload size mismatch: header says %d, have %d", sz, len(payload))}
	}
	if xxhash.Sum64(payload) != sum {
		return &ModelLoadError{Underlying: fmt.Errorf("checksum mismatch")}
	}

	rd := payloadReader{data: payload}
	vocab := int(rd.u32())
	defaultWeight := math.Float64frombits(rd.u64())

	nnorms := int(rd.u32())
	if rd.err == nil && nnorms > len(payload) {
		return &ModelLoadError{Underlying: fmt.Errorf("norm count %d exceeds payload", nnorms)}
	}
	norms := make(map[int]float64, nnorms)
	for i := 0; i < nnorms && rd.err == nil; i++ {
		l := int(rd.u32())
		norms[l] = math.Float64frombits(rd.u64())
	}

	ngrams := int(rd.u32())
	if rd.err == nil && ngrams > len(payload) {
		return &ModelLoadError{Underlying: fmt.Errorf("n-gram count %d exceeds payload", ngrams)}
	}
	weights := make(map[string]float64, ngrams)
	for i := 0; i < ngrams && rd.err == nil; i++ {
		g := rd.str(int(rd.u8()))
		weights[g] = math.Float64frombits(rd.u64())
	}
	if rd.err != nil {
		return &ModelLoadError{Underlying: rd.err}
	}
	if rd.pos != len(payload) {
		return &ModelLoadError{Underlying: fmt.Errorf("%d trailing bytes", len(payload)-rd.pos)}
	}

	loaded, err := NewStats(weights,
		StatsDefaultWeight(defaultWeight),
		StatsVocabulary(vocab),
		StatsNorms(norms))
	if err != nil {
		return &ModelLoadError{Underlying: err}
	}
	*s = *loaded
	return nil
}

// WriteTo writes the encoded table to w.
func (s *Stats) WriteTo(w io.Writer) (n int64, err error) {
	bts, err := s.MarshalBinary()
	if err != nil {
		return 0, err
	}
	c, err := w.Write(bts)
	return int64(c), err
}

// ReadStats decodes a table from rdr.
func ReadStats(rdr io.Reader) (*Stats, error) {
	bts, err := io.ReadAll(rdr)
	if err != nil {
		return nil, &ModelLoadError{Underlying: err}
	}
	var s Stats
	if err := s.UnmarshalBinary(bts); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadStats reads a table written by SaveStats. Every failure, including a
// missing file, is reported as a *ModelLoadError naming path.
func LoadStats(path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newModelLoadError(path, err)
	}
	defer f.Close()

	s, err := ReadStats(bufio.NewReader(f))
	if err != nil {
		return nil, newModelLoadError(path, err)
	}
	return s, nil
}

func SaveStats(path string, s *Stats) error {
	bts, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, bts, 0644)
}

type payloadReader struct {
	data []byte
	pos  int
	err  error
}

func (r *payloadReader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.pos+n > len(r.data) {
		r.err = fmt.Errorf("unexpected end of data at offset %d", r.pos)
		return false
	}
	return true
}

func (r *payloadReader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *payloadReader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *payloadReader) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v
}

func (r *payloadReader) str(n int) string {
	if !r.need(n) {
		return ""
	}
	v := string(r.data[r.pos : r.pos+n])
	r.pos += n
	return v
}
