package positions

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
	"vehicle-proximity-service/internal/domain"
)

// Encoder writes VehicleRecords in the binary position format.
type Encoder struct {
	w   io.Writer
	buf []byte
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, buf: make([]byte, 0, 64)}
}

func (e *Encoder) Encode(rec domain.VehicleRecord) error {
	b, err := AppendRecord(e.buf[:0], rec)
	if err != nil {
		return err
	}
	e.buf = b

	if _, err := e.w.Write(b); err != nil {
		return fmt.Errorf("encode record id=%d: %w", rec.ID, err)
	}
	return nil
}

// AppendRecord appends the wire form of rec to dst.
// Registrations containing a NUL byte cannot be represented and are rejected.
func AppendRecord(dst []byte, rec domain.VehicleRecord) ([]byte, error) {
	if strings.IndexByte(rec.Registration, 0) >= 0 {
		return dst, fmt.Errorf("encode record id=%d: registration contains a NUL byte", rec.ID)
	}

	dst = binary.LittleEndian.AppendUint32(dst, uint32(rec.ID))
	dst = append(dst, rec.Registration...)
	dst = append(dst, 0)
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(rec.Lat))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(rec.Lon))
	dst = binary.LittleEndian.AppendUint64(dst, rec.RecordedSec)
	return dst, nil
}
