package codec

import (
	"testing"

	"github.com/hupe1980/normpack/normal"
	"github.com/hupe1980/normpack/testutil"
	"github.com/hupe1980/normpack/vec3"
)

type benchResult struct {
	Input  vec3.Vec3   `json:"input" msgpack:"input"`
	Word   normal.Word `json:"word" msgpack:"word"`
	Output vec3.Vec3   `json:"output" msgpack:"output"`
	Error  float32     `json:"error" msgpack:"error"`
	OK     bool        `json:"ok" msgpack:"ok"`
}

func benchPayload() []benchResult {
	normals := testutil.NewRNG(1).UnitNormals(256)
	out := make([]benchResult, len(normals))
	for i, n := range normals {
		w := normal.Pack(n)
		u := normal.Unpack(w)
		out[i] = benchResult{Input: n, Word: w, Output: u, Error: n.MaxAbsDiff(u), OK: n.ApproxEqual(u)}
	}
	return out
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func BenchmarkCodec_Marshal_Results(b *testing.B) {
	payload := benchPayload()

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, payload) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, payload) })
	b.Run("msgpack", func(b *testing.B) { benchmarkCodecMarshal(b, MsgPack{}, payload) })
}

func BenchmarkCodec_Unmarshal_Results(b *testing.B) {
	payload := benchPayload()

	for _, c := range []Codec{JSON{}, GoJSON{}, MsgPack{}} {
		data := MustMarshal(c, payload)
		b.Run(c.Name(), func(b *testing.B) {
			var sink []benchResult
			benchmarkCodecUnmarshal(b, c, data, &sink)
			_ = sink
		})
	}
}
