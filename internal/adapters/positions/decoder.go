package positions

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"vehicle-proximity-service/internal/domain"
)

const readBufferSize = 64 << 10

// Decoder streams VehicleRecords out of an io.Reader.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	br     *bufio.Reader
	offset int64
	count  int

	// Holds registrations longer than the read buffer; grows by append.
	scratch []byte
	buf     [8]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{br: bufio.NewReaderSize(r, readBufferSize)}
}

// Decode reads the next record.
// It returns io.EOF only when the stream ends exactly on a record boundary;
// a stream ending anywhere else yields a *domain.MalformedRecordError.
// Other read errors from the underlying reader are returned wrapped, never
// as a malformed record.
func (d *Decoder) Decode() (domain.VehicleRecord, error) {
	var rec domain.VehicleRecord
	start := d.offset

	b, err := d.fixed(4)
	if err == io.EOF {
		return rec, io.EOF
	}
	if err != nil {
		return rec, d.malformed(start, "id", err)
	}
	rec.ID = int32(binary.LittleEndian.Uint32(b))

	if rec.Registration, err = d.registration(); err != nil {
		return rec, d.malformed(start, "registration", err)
	}

	if b, err = d.fixed(4); err != nil {
		return rec, d.malformed(start, "latitude", err)
	}
	rec.Lat = math.Float32frombits(binary.LittleEndian.Uint32(b))

	if b, err = d.fixed(4); err != nil {
		return rec, d.malformed(start, "longitude", err)
	}
	rec.Lon = math.Float32frombits(binary.LittleEndian.Uint32(b))

	if b, err = d.fixed(8); err != nil {
		return rec, d.malformed(start, "recordedAt", err)
	}
	rec.RecordedSec = binary.LittleEndian.Uint64(b)

	d.count++
	return rec, nil
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 { return d.offset }

// Count returns the number of records decoded so far.
func (d *Decoder) Count() int { return d.count }

func (d *Decoder) fixed(n int) ([]byte, error) {
	b := d.buf[:n]
	m, err := io.ReadFull(d.br, b)
	d.offset += int64(m)
	return b, err
}

// registration reads up to and including the NUL terminator.
// The common case converts straight out of the bufio buffer; only strings
// spanning more than one buffer fill go through scratch.
func (d *Decoder) registration() (string, error) {
	d.scratch = d.scratch[:0]
	for {
		chunk, err := d.br.ReadSlice(0)
		d.offset += int64(len(chunk))

		switch {
		case err == nil:
			chunk = chunk[:len(chunk)-1]
			if len(d.scratch) == 0 {
				return string(chunk), nil
			}
			d.scratch = append(d.scratch, chunk...)
			return string(d.scratch), nil
		case errors.Is(err, bufio.ErrBufferFull):
			d.scratch = append(d.scratch, chunk...)
		default:
			return "", err
		}
	}
}

func (d *Decoder) malformed(start int64, field string, err error) error {
	if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("read position stream at byte offset %d: %w", d.offset, err)
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &domain.MalformedRecordError{
		Record: d.count,
		Offset: start,
		Field:  field,
		Err:    err,
	}
}
