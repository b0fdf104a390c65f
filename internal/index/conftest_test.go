package index

import "context"

// mockEmbedder implements Embedder with an injectable function.
type mockEmbedder struct {
	embedAllFn func(ctx context.Context, texts []string) ([][]float32, error)
	calls      int
}

func (m *mockEmbedder) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	return m.embedAllFn(ctx, texts)
}

// hashVectors returns a deterministic unit-ish vector per text so tests
// can embed without a provider.
func hashVectors(dim int) func(ctx context.Context, texts []string) ([][]float32, error) {
	return func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			vec := make([]float32, dim)
			for j, r := range text {
				vec[(j+int(r))%dim] += 1
			}
			out[i] = vec
		}
		return out, nil
	}
}
