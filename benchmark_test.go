package pixelnode

import "testing"

// --- Buffer Benchmarks ---

func BenchmarkScrollGreen_640x480(b *testing.B) {
	buf, err := NewPixelBuffer(640, 480)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.ScrollGreen(DefaultGreenIncrement)
	}
}

func BenchmarkResize_640x480(b *testing.B) {
	buf, err := NewPixelBuffer(1, 1)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := buf.Resize(640, 480); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Tick / Hand-off Benchmarks ---

func BenchmarkDriverTick(b *testing.B) {
	// Growth disabled in practice so every tick sees the same size.
	d, err := NewAnimationDriver(Config{GrowEvery: 1 << 62}, nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.Tick()
	}
}

func BenchmarkExchange_PublishAcquire(b *testing.B) {
	buf, err := NewPixelBuffer(640, 480)
	if err != nil {
		b.Fatal(err)
	}
	var e FrameExchange
	// Warm up: fill all three slabs.
	for i := 0; i < 3; i++ {
		e.Publish(buf.Read())
		e.Acquire()
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Publish(buf.Read())
		e.Acquire()
	}
}
