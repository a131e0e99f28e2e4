package scene

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the world's tags, positions and scales in list order.
// Components are rounded to micrometers so layouts that differ only by
// floating point noise hash the same.
func Fingerprint(w *World) uint64 {
	d := xxhash.New()
	for _, e := range w.entities {
		fmt.Fprintf(d, "%s %d %d %d %d %d %d\n",
			e.Tag,
			micro(e.Position[0]), micro(e.Position[1]), micro(e.Position[2]),
			micro(e.Scale[0]), micro(e.Scale[1]), micro(e.Scale[2]),
		)
	}
	return d.Sum64()
}

func micro(v float64) int64 {
	return int64(math.Round(v * 1e6))
}

// FingerprintString formats a fingerprint the way it is shown to players.
func FingerprintString(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
