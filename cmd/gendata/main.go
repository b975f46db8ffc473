package main

import (
	"bufio"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"time"
	"vehicle-proximity-service/internal/adapters/positions"
	"vehicle-proximity-service/internal/adapters/source"
	"vehicle-proximity-service/internal/config"
	"vehicle-proximity-service/internal/domain"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

const regAlphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

// main writes a synthetic position stream. Records are spread over the same
// area as the default reference points. The output is compressed when the
// path ends in .gz, .zst or .lz4.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	out := config.Get("GENDATA_OUT", "data/VehiclePositions.dat")
	count, err := strconv.Atoi(config.Get("GENDATA_COUNT", "2000000"))
	if err != nil || count < 0 {
		log.Fatalf("GENDATA_COUNT must be a non-negative integer")
	}
	seed, err := strconv.ParseUint(config.Get("GENDATA_SEED", "1"), 10, 64)
	if err != nil {
		log.Fatalf("GENDATA_SEED must be an unsigned integer")
	}

	start := time.Now()
	n, err := generate(out, count, seed)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s records (%s) to %s in %dms",
		humanize.Comma(int64(count)), humanize.Bytes(uint64(n)), out, time.Since(start).Milliseconds())
}

type countingWriter struct {
	w *os.File
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func generate(path string, count int, seed uint64) (_ int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("generate: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("generate: %w", cerr)
		}
	}()

	cw := &countingWriter{w: f}
	zw, err := source.Compress(path, cw)
	if err != nil {
		return 0, fmt.Errorf("generate: %w", err)
	}
	bw := bufio.NewWriterSize(zw, 64*1024)
	enc := positions.NewEncoder(bw)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := uint64(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Unix())
	reg := make([]byte, 0, 10)

	for i := range count {
		reg = reg[:0]
		for range 6 + rng.IntN(5) {
			reg = append(reg, regAlphabet[rng.IntN(len(regAlphabet))])
		}

		rec := domain.VehicleRecord{
			ID:           int32(i + 1),
			Registration: string(reg),
			Lat:          float32(31 + rng.Float64()*6),
			Lon:          float32(-104 + rng.Float64()*10),
			RecordedSec:  base + rng.Uint64N(365*24*3600),
		}
		if err := enc.Encode(rec); err != nil {
			return 0, fmt.Errorf("generate: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("generate: flush: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("generate: close compressor: %w", err)
	}
	return cw.n, nil
}
