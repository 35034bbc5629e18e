package export

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Compressed runs an export function through a zstd stream, for large
// window tables kept or shipped as .csv.zst. The encoder is flushed and
// closed before returning, so a nil error means the output is complete.
func Compressed(w io.Writer, write func(io.Writer) error) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if err := write(enc); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush zstd stream: %w", err)
	}
	return nil
}
