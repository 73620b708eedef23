package hmac

import (
	"strconv"
	"testing"

	"github.com/forcebit/hmac-streaming-rfc2104-go/pkg/primitive"
)

// Benchmark fixtures - allocated once per test run
var (
	benchKey        = []byte("benchmark-shared-secret-32-bytes")
	benchMsg256B    = make([]byte, 256)
	benchMsg4KB     = make([]byte, 4*1024)
	benchMsg1MB     = make([]byte, 1024*1024)
	benchChunkSizes = []int{64, 1024, 32 * 1024}
)

func init() {
	for i := range benchMsg1MB {
		benchMsg1MB[i] = byte(i)
	}
	copy(benchMsg256B, benchMsg1MB)
	copy(benchMsg4KB, benchMsg1MB)
}

func benchmarkOneShot(b *testing.B, algorithm string, message []byte) {
	s, err := NewWithKey(primitive.MustFactory(algorithm), benchKey)
	if err != nil {
		b.Fatalf("NewWithKey failed: %v", err)
	}
	defer s.Close()

	b.SetBytes(int64(len(message)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Reset() //nolint:errcheck
		s.Write(message)
		if _, err := s.Finalize(); err != nil {
			b.Fatalf("Finalize failed: %v", err)
		}
	}
}

func BenchmarkSession_SHA256_256B(b *testing.B) {
	benchmarkOneShot(b, primitive.AlgorithmSHA256, benchMsg256B)
}

func BenchmarkSession_SHA256_4KB(b *testing.B) {
	benchmarkOneShot(b, primitive.AlgorithmSHA256, benchMsg4KB)
}

func BenchmarkSession_SHA256_1MB(b *testing.B) {
	benchmarkOneShot(b, primitive.AlgorithmSHA256, benchMsg1MB)
}

func BenchmarkSession_SHA512_4KB(b *testing.B) {
	benchmarkOneShot(b, primitive.AlgorithmSHA512, benchMsg4KB)
}

func BenchmarkSession_BLAKE3_4KB(b *testing.B) {
	benchmarkOneShot(b, primitive.AlgorithmBLAKE3256, benchMsg4KB)
}

// BenchmarkSession_Streaming measures chunked absorption of 1 MiB.
func BenchmarkSession_Streaming(b *testing.B) {
	for _, chunk := range benchChunkSizes {
		b.Run(byteCountName(chunk), func(b *testing.B) {
			s, err := NewWithKey(primitive.MustFactory(primitive.AlgorithmSHA256), benchKey)
			if err != nil {
				b.Fatalf("NewWithKey failed: %v", err)
			}
			defer s.Close()

			b.SetBytes(int64(len(benchMsg1MB)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.Reset() //nolint:errcheck
				for off := 0; off < len(benchMsg1MB); off += chunk {
					end := off + chunk
					if end > len(benchMsg1MB) {
						end = len(benchMsg1MB)
					}
					s.Write(benchMsg1MB[off:end])
				}
				if _, err := s.Finalize(); err != nil {
					b.Fatalf("Finalize failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkSession_Rekey measures in-place rekeying without buffer
// reallocation.
func BenchmarkSession_Rekey(b *testing.B) {
	s, err := NewWithKey(primitive.MustFactory(primitive.AlgorithmSHA256), benchKey)
	if err != nil {
		b.Fatalf("NewWithKey failed: %v", err)
	}
	defer s.Close()

	keys := [][]byte{
		[]byte("short"),
		benchKey,
		benchMsg256B, // forces the long-key compression pass
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SetKey(keys[i%len(keys)]); err != nil {
			b.Fatalf("SetKey failed: %v", err)
		}
	}
}

func byteCountName(n int) string {
	if n >= 1024 {
		return strconv.Itoa(n/1024) + "KiB-chunks"
	}
	return strconv.Itoa(n) + "B-chunks"
}
